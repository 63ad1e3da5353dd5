package main

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/gomlx/phonetok/cleaner"
	"github.com/gomlx/phonetok/download"
	"github.com/gomlx/phonetok/fields"
	"github.com/gomlx/phonetok/g2p"
	"github.com/gomlx/phonetok/tokenizer"
	"github.com/gomlx/phonetok/vocab"
)

// BuildG2P assembles the grapheme-to-phoneme converter from flags, trying
// the compiled lexicon first, then the text lexicon, then the downloaded CMU
// dictionary. Returns nil when no source is configured. Panics on error.
func BuildG2P() g2p.Converter {
	var lex *g2p.Lexicon
	switch {
	case *flagCompiledLexicon != "":
		lex = must.M1(g2p.ReadCompiled(*flagCompiledLexicon))
	case *flagLexicon != "":
		lex = must.M1(g2p.LoadFile(*flagLexicon))
	case *flagDownloadCMUDict:
		lex = must.M1(download.CMUDict(*flagCacheDir))
	default:
		return nil
	}
	return g2p.NewLexiconConverter(lex)
}

// BuildTokenizer assembles the char+phone tokenizer from flags. Panics on
// error.
func BuildTokenizer() *tokenizer.CharPhoneTokenizer {
	cfg := tokenizer.Config{
		TokenType:                  *flagTokenType,
		SpaceSymbol:                *flagSpaceSymbol,
		JointSymbol:                *flagJointSymbol,
		RemoveNonLinguisticSymbols: *flagRemoveNonLinguisticSymbols,
		PrePhonemized:              *flagPrePhonemized,
		G2P:                        BuildG2P(),
	}
	if *flagCharNonLinguisticSymbols != "" {
		cfg.CharNonLinguisticSymbols = must.M1(tokenizer.ReadSymbols(*flagCharNonLinguisticSymbols))
	}
	if *flagPhoneNonLinguisticSymbols != "" {
		cfg.PhoneNonLinguisticSymbols = must.M1(tokenizer.ReadSymbols(*flagPhoneNonLinguisticSymbols))
	}
	// Symbols injected via --add_nonsplit_symbol are also kept whole during
	// tokenization, without their ":index" suffix.
	for _, spec := range flagAddNonSplitSymbol {
		injection := must.M1(vocab.ParseInjection(spec))
		cfg.NonSplitSymbols = append(cfg.NonSplitSymbols, injection.Symbol)
	}
	return must.M1(tokenizer.Build(cfg))
}

// BuildCleaner assembles the text cleaner from flags. Panics on error.
func BuildCleaner() *cleaner.Cleaner {
	return must.M1(cleaner.New(*flagCleaner))
}

func openInput() (io.ReadCloser, error) {
	if *flagInput == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(*flagInput)
	return f, errors.Wrapf(err, "failed to open input %q", *flagInput)
}

// outputs holds the phone and char destinations, which may alias the same
// writer in combined single-stream mode.
type outputs struct {
	phone, char *bufio.Writer
	closers     []io.Closer
}

// openOutputs interprets the --output flag: "-" is stdout for both streams,
// "phonePath,charPath" opens two files, and a single path receives both
// streams (char line first, phone line second, per input line).
func openOutputs(output string) (*outputs, error) {
	if output == "-" {
		w := bufio.NewWriter(os.Stdout)
		return &outputs{phone: w, char: w}, nil
	}
	create := func(path string) (*os.File, error) {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, errors.Wrapf(err, "failed to create output directory for %q", path)
		}
		f, err := os.Create(path)
		return f, errors.Wrapf(err, "failed to create output %q", path)
	}

	if phonePath, charPath, found := strings.Cut(output, ","); found {
		phoneFile, err := create(phonePath)
		if err != nil {
			return nil, err
		}
		charFile, err := create(charPath)
		if err != nil {
			_ = phoneFile.Close()
			return nil, err
		}
		return &outputs{
			phone:   bufio.NewWriter(phoneFile),
			char:    bufio.NewWriter(charFile),
			closers: []io.Closer{phoneFile, charFile},
		}, nil
	}

	f, err := create(output)
	if err != nil {
		return nil, err
	}
	w := bufio.NewWriter(f)
	return &outputs{phone: w, char: w, closers: []io.Closer{f}}, nil
}

func (o *outputs) flushAndClose() error {
	if err := o.char.Flush(); err != nil {
		return errors.Wrap(err, "flushing char output")
	}
	if err := o.phone.Flush(); err != nil {
		return errors.Wrap(err, "flushing phone output")
	}
	for _, c := range o.closers {
		if err := c.Close(); err != nil {
			return errors.Wrap(err, "closing output")
		}
	}
	return nil
}

// run is the batch pipeline: read lines, slice fields, clean, tokenize, and
// either stream tokens out per line or build the ranked vocabularies.
func run() error {
	tok := BuildTokenizer()
	clean := BuildCleaner()

	var fieldRange *fields.Range
	if *flagField != "" {
		r, err := fields.Parse(*flagField)
		if err != nil {
			return err
		}
		fieldRange = &r
	}

	in, err := openInput()
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()
	out, err := openOutputs(*flagOutput)
	if err != nil {
		return err
	}

	builder := vocab.NewBuilder()
	var lines int
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r\n")
		if fieldRange != nil {
			line = fields.SliceLine(line, *flagDelimiter, *fieldRange)
		}
		line = clean.Clean(line)

		pair, err := tok.TokenizePair(line)
		if err != nil {
			return err
		}
		lines++
		if *flagWriteVocabulary {
			builder.Add(pair)
			continue
		}
		if _, err := out.char.WriteString(strings.Join(pair.Char, " ") + "\n"); err != nil {
			return errors.Wrap(err, "writing char tokens")
		}
		if _, err := out.phone.WriteString(strings.Join(pair.Phone, " ") + "\n"); err != nil {
			return errors.Wrap(err, "writing phone tokens")
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "reading input")
	}

	if *flagWriteVocabulary {
		if err := writeVocabularies(builder, out); err != nil {
			return err
		}
	}
	klog.Infof("processed %s lines", humanize.Comma(int64(lines)))
	return out.flushAndClose()
}

func writeVocabularies(builder *vocab.Builder, out *outputs) error {
	injections, err := vocab.ParseInjections(append(flagAddSymbol, flagAddNonSplitSymbol...))
	if err != nil {
		return err
	}

	charEntries, err := builder.FinalizeChar(*flagCutoff, *flagCharVocabSize, injections)
	if err != nil {
		return err
	}
	phoneEntries, err := builder.FinalizePhone(*flagCutoff, *flagPhoneVocabSize, injections)
	if err != nil {
		return err
	}

	for _, entry := range charEntries {
		if _, err := out.char.WriteString(entry.Symbol + "\n"); err != nil {
			return errors.Wrap(err, "writing char vocabulary")
		}
	}
	for _, entry := range phoneEntries {
		if _, err := out.phone.WriteString(entry.Symbol + "\n"); err != nil {
			return errors.Wrap(err, "writing phone vocabulary")
		}
	}

	klog.Infof("char: %s tokens, vocabulary of %d entries, OOV rate = %g %%",
		humanize.Comma(int64(builder.CharTotal())), len(charEntries),
		builder.CharOOVRate(charEntries)*100)
	klog.Infof("phone: %s tokens, vocabulary of %d entries, OOV rate = %g %%",
		humanize.Comma(int64(builder.PhoneTotal())), len(phoneEntries),
		builder.PhoneOOVRate(phoneEntries)*100)
	return nil
}
