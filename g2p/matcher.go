package g2p

import "github.com/gomlx/phonetok/trie"

// matcher indexes lexicon entries for longest-prefix lookup.
type matcher struct {
	index *trie.Trie[[]string]
}

func newMatcher(lex *Lexicon) *matcher {
	index := trie.New[[]string]()
	for word, phonemes := range lex.entries {
		index.Put(word, phonemes)
	}
	return &matcher{index: index}
}

func (m *matcher) longest(s string) (key string, phonemes []string, ok bool) {
	return m.index.LongestPrefix(s)
}
