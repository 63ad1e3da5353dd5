// Package download fetches pronunciation dictionaries into a local cache
// directory so the g2p converter can run without any manual setup.
package download

import (
	"bufio"
	"io"
	"os"
	"path"
	"strings"

	"github.com/gomlx/gomlx/ml/data"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/gomlx/phonetok/g2p"
)

// CMUDictURL is the canonical location of the CMU pronouncing dictionary.
const CMUDictURL = "https://raw.githubusercontent.com/cmusphinx/cmudict/master/cmudict.dict"

const cmuDictFileName = "cmudict.dict"

// CMUDict downloads (if needed) the CMU pronouncing dictionary into cacheDir
// and parses it into a lexicon. Stress digits on the phonemes are kept,
// alternate pronunciations ("word(2)") are skipped.
func CMUDict(cacheDir string) (*g2p.Lexicon, error) {
	cacheDir = data.ReplaceTildeInDir(cacheDir)
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, errors.Wrapf(err, "failed to create cache directory %q", cacheDir)
	}
	dictPath := path.Join(cacheDir, cmuDictFileName)
	if err := data.DownloadIfMissing(CMUDictURL, dictPath, ""); err != nil {
		return nil, errors.Wrapf(err, "failed to download CMU dictionary to %q", dictPath)
	}

	f, err := os.Open(dictPath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %q", dictPath)
	}
	defer func() { _ = f.Close() }()

	lex, err := ParseCMUDict(f)
	if err != nil {
		return nil, errors.WithMessagef(err, "in %q", dictPath)
	}
	klog.Infof("loaded %d pronunciations from %s", lex.Len(), dictPath)
	return lex, nil
}

// ParseCMUDict parses the cmudict.dict format: "word PH PH PH ...", with
// "word(2)" marking alternate pronunciations and "#" starting a comment.
func ParseCMUDict(f io.Reader) (*g2p.Lexicon, error) {
	lex := g2p.NewLexicon()
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if i := strings.Index(line, "#"); i >= 0 {
			line = line[:i]
		}
		cols := strings.Fields(line)
		if len(cols) == 0 || strings.HasPrefix(cols[0], ";;;") {
			continue
		}
		if len(cols) < 2 {
			return nil, errors.Errorf("cmudict line %d: no pronunciation: %q", lineNum, line)
		}
		word := cols[0]
		if strings.HasSuffix(word, ")") {
			// Alternate pronunciation, e.g. "read(2)"; the first one wins.
			continue
		}
		lex.Add(word, cols[1:])
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading cmudict")
	}
	return lex, nil
}
