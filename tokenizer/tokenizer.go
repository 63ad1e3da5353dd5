// Package tokenizer splits transcript lines into parallel character and
// phoneme token streams for speech-recognition training data preparation.
package tokenizer

import (
	"bufio"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/gomlx/phonetok/g2p"
)

// ErrFormat reports a malformed input line, e.g. a line missing the joint
// symbol in pre-phonemized mode.
var ErrFormat = errors.New("tokenizer format error")

// Tokenizer turns one line of text into a token sequence.
type Tokenizer interface {
	Tokenize(line string) ([]string, error)
}

// TokenPair carries the two parallel token streams produced from one line.
type TokenPair struct {
	Char  []string
	Phone []string
}

// TokenTypeCharPhone is the only token type this toolkit builds.
const TokenTypeCharPhone = "char_phone"

// Config selects and parameterizes the tokenizer built by Build.
type Config struct {
	// TokenType must be TokenTypeCharPhone.
	TokenType string

	// SpaceSymbol replaces whitespace runs in the char stream. Default "<space>".
	SpaceSymbol string

	// JointSymbol separates the textual form from the phonemic form of a
	// pre-phonemized line. Default "@".
	JointSymbol string

	// CharNonLinguisticSymbols and PhoneNonLinguisticSymbols are literal
	// tokens (e.g. "<sp>") preserved intact in the respective stream.
	CharNonLinguisticSymbols  []string
	PhoneNonLinguisticSymbols []string

	// NonSplitSymbols are multi-character tokens always kept as one unit.
	NonSplitSymbols []string

	// RemoveNonLinguisticSymbols drops non-linguistic symbols from the
	// output instead of preserving them.
	RemoveNonLinguisticSymbols bool

	// PrePhonemized selects joint-symbol splitting; otherwise G2P is
	// consulted per line and must be non-nil.
	PrePhonemized bool
	G2P           g2p.Converter
}

// Build instantiates the tokenizer described by cfg.
func Build(cfg Config) (*CharPhoneTokenizer, error) {
	if cfg.TokenType != TokenTypeCharPhone {
		return nil, errors.Errorf("token type must be %q: %q", TokenTypeCharPhone, cfg.TokenType)
	}
	if cfg.SpaceSymbol == "" {
		cfg.SpaceSymbol = "<space>"
	}
	if cfg.JointSymbol == "" {
		cfg.JointSymbol = "@"
	}
	if !cfg.PrePhonemized && cfg.G2P == nil {
		return nil, errors.New("a g2p converter is required unless the input is pre-phonemized")
	}
	return &CharPhoneTokenizer{
		charTokenizer: newCharTokenizer(
			cfg.SpaceSymbol, cfg.CharNonLinguisticSymbols, cfg.NonSplitSymbols,
			cfg.RemoveNonLinguisticSymbols),
		phoneTokenizer: newPhoneTokenizer(
			cfg.PhoneNonLinguisticSymbols, cfg.RemoveNonLinguisticSymbols),
		jointSymbol:   cfg.JointSymbol,
		prePhonemized: cfg.PrePhonemized,
		g2p:           cfg.G2P,
	}, nil
}

// ReadSymbols reads a symbol list file, one symbol per line, skipping blanks.
func ReadSymbols(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open symbols file %q", path)
	}
	defer func() { _ = f.Close() }()

	var symbols []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if s := strings.TrimSpace(scanner.Text()); s != "" {
			symbols = append(symbols, s)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading symbols file %q", path)
	}
	return symbols, nil
}
