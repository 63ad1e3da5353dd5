package tokenizer

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/gomlx/phonetok/g2p"
)

// CharPhoneTokenizer produces parallel char and phoneme token streams from
// one transcript line. Build one with Build.
//
// In pre-phonemized mode the line carries both forms joined by the joint
// symbol ("hello@HH EH L OW"); otherwise the phoneme stream comes from the
// g2p converter.
type CharPhoneTokenizer struct {
	charTokenizer  *CharTokenizer
	phoneTokenizer *PhoneTokenizer
	jointSymbol    string
	prePhonemized  bool
	g2p            g2p.Converter
}

// TokenizePair converts one line into its TokenPair. Every line yields
// exactly one pair with both streams non-nil, empty for an empty line.
func (t *CharPhoneTokenizer) TokenizePair(line string) (TokenPair, error) {
	if line == "" {
		return TokenPair{Char: []string{}, Phone: []string{}}, nil
	}
	textPart, phonePart := line, line
	if t.prePhonemized {
		// Split on the first joint symbol only; the phone part may
		// legitimately contain the symbol again.
		before, after, found := strings.Cut(line, t.jointSymbol)
		if !found {
			return TokenPair{}, errors.Wrapf(ErrFormat,
				"no joint symbol %q in pre-phonemized line %q", t.jointSymbol, line)
		}
		textPart, phonePart = before, after
	} else {
		phonemized, err := t.g2p.Phonemize(line)
		if err != nil {
			return TokenPair{}, errors.WithMessagef(err, "phonemizing line %q", line)
		}
		phonePart = phonemized
	}

	charTokens, err := t.charTokenizer.Tokenize(textPart)
	if err != nil {
		return TokenPair{}, err
	}
	phoneTokens, err := t.phoneTokenizer.Tokenize(phonePart)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{Char: charTokens, Phone: phoneTokens}, nil
}

// CharTokenizer returns the character-stream tokenizer.
func (t *CharPhoneTokenizer) CharTokenizer() Tokenizer { return t.charTokenizer }

// PhoneTokenizer returns the phoneme-stream tokenizer.
func (t *CharPhoneTokenizer) PhoneTokenizer() Tokenizer { return t.phoneTokenizer }
