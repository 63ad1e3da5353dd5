package g2p

import (
	"os"

	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack"
)

// WriteCompiled saves the lexicon in a compact binary form that loads much
// faster than the text format for large dictionaries.
func (l *Lexicon) WriteCompiled(path string) (err error) {
	var f *os.File
	f, err = os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create compiled lexicon file %q", path)
	}
	defer func() { _ = f.Close() }()

	enc := msgpack.NewEncoder(f)
	if err = enc.Encode(l.entries); err != nil {
		return errors.Wrapf(err, "failed to encode compiled lexicon to %q", path)
	}
	return nil
}

// ReadCompiled loads a lexicon written by WriteCompiled.
func ReadCompiled(path string) (lex *Lexicon, err error) {
	var f *os.File
	f, err = os.Open(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read compiled lexicon from %q", path)
		return
	}
	defer func() { _ = f.Close() }()

	dec := msgpack.NewDecoder(f)
	entries := make(map[string][]string)
	if err = dec.Decode(&entries); err != nil {
		err = errors.Wrapf(err, "failed to decode compiled lexicon from %q", path)
		return
	}
	lex = &Lexicon{entries: entries}
	return
}
