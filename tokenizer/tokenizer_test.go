package tokenizer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gomlx/phonetok/g2p"
)

func prePhonemized(t *testing.T, cfg Config) *CharPhoneTokenizer {
	cfg.TokenType = TokenTypeCharPhone
	cfg.PrePhonemized = true
	tok, err := Build(cfg)
	require.NoError(t, err)
	return tok
}

func TestBuildValidation(t *testing.T) {
	_, err := Build(Config{TokenType: "bpe"})
	require.ErrorContains(t, err, `token type must be "char_phone"`)

	_, err = Build(Config{TokenType: TokenTypeCharPhone})
	require.ErrorContains(t, err, "g2p converter is required")
}

func TestCharTokenizer(t *testing.T) {
	tok := newCharTokenizer("<space>", nil, nil, false)

	tokens, err := tok.Tokenize("hello")
	require.NoError(t, err)
	require.Equal(t, []string{"h", "e", "l", "l", "o"}, tokens)

	tokens, err = tok.Tokenize("ab  cd")
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "<space>", "c", "d"}, tokens)

	tokens, err = tok.Tokenize("")
	require.NoError(t, err)
	require.NotNil(t, tokens)
	require.Empty(t, tokens)

	// Multibyte characters stay whole.
	tokens, err = tok.Tokenize("東京")
	require.NoError(t, err)
	require.Equal(t, []string{"東", "京"}, tokens)
}

func TestCharTokenizerSymbols(t *testing.T) {
	tok := newCharTokenizer("<space>", []string{"<sp>", "<noise>"}, []string{"'s"}, false)

	tokens, err := tok.Tokenize("a<sp>b")
	require.NoError(t, err)
	require.Equal(t, []string{"a", "<sp>", "b"}, tokens)

	// Nonsplit symbols are kept as one unit.
	tokens, err = tok.Tokenize("it's")
	require.NoError(t, err)
	require.Equal(t, []string{"i", "t", "'s"}, tokens)

	// The remove flag suppresses non-linguistic symbols but keeps nonsplit ones.
	tok = newCharTokenizer("<space>", []string{"<sp>"}, []string{"'s"}, true)
	tokens, err = tok.Tokenize("a<sp>b's")
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "'s"}, tokens)
}

func TestPhoneTokenizer(t *testing.T) {
	tok := newPhoneTokenizer([]string{"<sp>"}, false)
	tokens, err := tok.Tokenize("HH EH  L OW")
	require.NoError(t, err)
	require.Equal(t, []string{"HH", "EH", "L", "OW"}, tokens)

	tokens, err = tok.Tokenize("")
	require.NoError(t, err)
	require.NotNil(t, tokens)
	require.Empty(t, tokens)

	tok = newPhoneTokenizer([]string{"<sp>"}, true)
	tokens, err = tok.Tokenize("HH <sp> OW")
	require.NoError(t, err)
	require.Equal(t, []string{"HH", "OW"}, tokens)
}

func TestTokenizePairPrePhonemized(t *testing.T) {
	tok := prePhonemized(t, Config{})

	pair, err := tok.TokenizePair("hello@HH EH L OW")
	require.NoError(t, err)
	require.Equal(t, []string{"h", "e", "l", "l", "o"}, pair.Char)
	require.Equal(t, []string{"HH", "EH", "L", "OW"}, pair.Phone)

	// Only the first joint symbol splits the line.
	pair, err = tok.TokenizePair("a@X @ Y")
	require.NoError(t, err)
	require.Equal(t, []string{"a"}, pair.Char)
	require.Equal(t, []string{"X", "@", "Y"}, pair.Phone)

	_, err = tok.TokenizePair("no joint symbol here")
	require.ErrorIs(t, err, ErrFormat)
	require.ErrorContains(t, err, `no joint symbol "@"`)
}

func TestTokenizePairCustomJointSymbol(t *testing.T) {
	tok := prePhonemized(t, Config{JointSymbol: "|"})
	pair, err := tok.TokenizePair("ab|P Q")
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, pair.Char)
	require.Equal(t, []string{"P", "Q"}, pair.Phone)
}

func TestTokenizePairEmptyLine(t *testing.T) {
	tok := prePhonemized(t, Config{})
	pair, err := tok.TokenizePair("")
	require.NoError(t, err)
	require.NotNil(t, pair.Char)
	require.NotNil(t, pair.Phone)
	require.Empty(t, pair.Char)
	require.Empty(t, pair.Phone)
}

func TestTokenizePairG2P(t *testing.T) {
	lex := g2p.NewLexicon()
	lex.Add("hi", []string{"HH", "AY"})
	lex.Add("there", []string{"DH", "EH", "R"})
	cfg := Config{
		TokenType: TokenTypeCharPhone,
		G2P:       g2p.NewLexiconConverter(lex),
	}
	tok, err := Build(cfg)
	require.NoError(t, err)

	pair, err := tok.TokenizePair("hi there")
	require.NoError(t, err)
	require.Equal(t, []string{"h", "i", "<space>", "t", "h", "e", "r", "e"}, pair.Char)
	require.Equal(t, []string{"HH", "AY", "DH", "EH", "R"}, pair.Phone)
}

func TestReadSymbols(t *testing.T) {
	path := filepath.Join(t.TempDir(), "symbols.txt")
	require.NoError(t, os.WriteFile(path, []byte("<sp>\n\n<noise>\n"), 0644))

	symbols, err := ReadSymbols(path)
	require.NoError(t, err)
	require.Equal(t, []string{"<sp>", "<noise>"}, symbols)

	_, err = ReadSymbols(filepath.Join(t.TempDir(), "absent"))
	require.ErrorContains(t, err, "failed to open symbols file")
}

func TestCharStreamOfPrePhonemizedLineWithSymbols(t *testing.T) {
	tok := prePhonemized(t, Config{
		CharNonLinguisticSymbols: []string{"<sp>"},
	})
	pair, err := tok.TokenizePair("a<sp> b@A SP B")
	require.NoError(t, err)
	require.Equal(t, []string{"a", "<sp>", "<space>", "b"}, pair.Char)
	require.Equal(t, strings.Fields("A SP B"), pair.Phone)
}
