package tokenizer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gomlx/phonetok/trie"
)

// CharTokenizer splits text into single characters, preserving configured
// symbols intact and replacing whitespace runs with a space symbol.
type CharTokenizer struct {
	spaceSymbol string
	symbols     *trie.Trie[symbolKind]
	remove      bool
}

type symbolKind int

const (
	nonLinguistic symbolKind = iota // removable under the remove flag
	nonSplit                        // always kept
)

func newCharTokenizer(spaceSymbol string, nonLinguisticSymbols, nonSplitSymbols []string, remove bool) *CharTokenizer {
	symbols := trie.New[symbolKind]()
	for _, s := range nonLinguisticSymbols {
		symbols.Put(s, nonLinguistic)
	}
	// Nonsplit symbols win when a symbol appears in both lists.
	for _, s := range nonSplitSymbols {
		symbols.Put(s, nonSplit)
	}
	return &CharTokenizer{
		spaceSymbol: spaceSymbol,
		symbols:     symbols,
		remove:      remove,
	}
}

// Tokenize implements Tokenizer. An empty line yields an empty (non-nil)
// token slice.
func (t *CharTokenizer) Tokenize(line string) ([]string, error) {
	tokens := []string{}
	for line != "" {
		if symbol, kind, ok := t.symbols.LongestPrefix(line); ok {
			if kind == nonSplit || !t.remove {
				tokens = append(tokens, symbol)
			}
			line = line[len(symbol):]
			continue
		}
		r, size := utf8.DecodeRuneInString(line)
		if unicode.IsSpace(r) {
			// A whitespace run collapses into one space-symbol token.
			tokens = append(tokens, t.spaceSymbol)
			line = strings.TrimLeftFunc(line, unicode.IsSpace)
			continue
		}
		tokens = append(tokens, line[:size])
		line = line[size:]
	}
	return tokens, nil
}
