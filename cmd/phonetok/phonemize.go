package main

import (
	"bufio"
	"flag"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/gomlx/phonetok/fields"
)

var flagPhonesOnly = flag.Bool("phones_only", false,
	"With --phonemize, write only the phoneme sequence instead of joining it to the input line.")

// runPhonemize prepares a pre-phonemized corpus: for each input line it runs
// G2P over the selected columns and writes the original line joined with the
// phoneme sequence by the joint symbol (or just the phonemes under
// --phones_only).
func runPhonemize() error {
	converter := BuildG2P()
	if converter == nil {
		return errors.New("phonemize mode needs a G2P source: --lexicon, --compiled_lexicon or --download_cmudict")
	}

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

	var lines int
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r\n")
		text := line
		if fieldRange != nil {
			text = fields.SliceLine(line, *flagDelimiter, *fieldRange)
		}

		phones, err := converter.Phonemize(text)
		if err != nil {
			return errors.WithMessagef(err, "phonemizing line %q", line)
		}
		output := line + *flagJointSymbol + phones
		if *flagPhonesOnly {
			output = phones
		}
		if _, err := out.char.WriteString(output + "\n"); err != nil {
			return errors.Wrap(err, "writing phonemized line")
		}
		lines++
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "reading input")
	}
	klog.Infof("phonemized %s lines", humanize.Comma(int64(lines)))
	return out.flushAndClose()
}
