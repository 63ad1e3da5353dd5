// Package g2p provides grapheme-to-phoneme conversion as an explicitly-owned
// resource handle: a pronunciation lexicon loaded once, a longest-match
// converter built lazily on first use, and memoization of repeated inputs.
package g2p

import (
	"bufio"
	"io"
	"os"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Converter turns written text into a space-separated phoneme sequence.
type Converter interface {
	Phonemize(text string) (string, error)
}

// Lexicon holds word-to-pronunciation mappings. Lookup keys are case-folded.
type Lexicon struct {
	entries map[string][]string
}

// NewLexicon creates an empty lexicon.
func NewLexicon() *Lexicon {
	return &Lexicon{entries: make(map[string][]string)}
}

// Add registers a pronunciation for word. The first pronunciation of a word
// wins; later duplicates are ignored.
func (l *Lexicon) Add(word string, phonemes []string) {
	word = strings.ToLower(word)
	if _, ok := l.entries[word]; ok {
		return
	}
	l.entries[word] = phonemes
}

// Lookup returns the pronunciation of word, if known.
func (l *Lexicon) Lookup(word string) ([]string, bool) {
	phonemes, ok := l.entries[strings.ToLower(word)]
	return phonemes, ok
}

// Len returns the number of distinct words.
func (l *Lexicon) Len() int { return len(l.entries) }

// Load reads a lexicon from a tab-separated stream.
//
// Format: "word<TAB>phoneme phoneme ..." with an optional reading column in
// between ("word<TAB>reading<TAB>phoneme ..."), which is skipped. Blank lines
// and lines starting with "#" are ignored.
func Load(r io.Reader) (*Lexicon, error) {
	l := NewLexicon()
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		cols := strings.Split(line, "\t")
		if len(cols) < 2 {
			return nil, errors.Errorf("lexicon line %d: want 'word<TAB>phonemes', got %q", lineNum, line)
		}
		phonemes := strings.Fields(cols[len(cols)-1])
		if len(phonemes) == 0 {
			return nil, errors.Errorf("lexicon line %d: empty pronunciation for %q", lineNum, cols[0])
		}
		l.Add(cols[0], phonemes)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading lexicon")
	}
	return l, nil
}

// LoadFile reads a lexicon from path.
func LoadFile(path string) (*Lexicon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open lexicon from %q", path)
	}
	defer func() { _ = f.Close() }()
	l, err := Load(f)
	if err != nil {
		return nil, errors.WithMessagef(err, "in lexicon file %q", path)
	}
	return l, nil
}

const cacheSize = 8192

// LexiconConverter implements Converter by greedy longest-match lookup over
// a Lexicon. The match index is built lazily on the first Phonemize call and
// whole-line results are memoized in an LRU cache.
type LexiconConverter struct {
	// UnknownSymbol is emitted once for every word the lexicon cannot cover.
	// Set it before the first Phonemize call.
	UnknownSymbol string

	lex       *Lexicon
	buildOnce sync.Once
	matcher   *matcher
	cache     *lru.Cache
}

// NewLexiconConverter creates a converter over lex. The lexicon must not be
// mutated afterward.
func NewLexiconConverter(lex *Lexicon) *LexiconConverter {
	cache, _ := lru.New(cacheSize)
	return &LexiconConverter{
		UnknownSymbol: "<unk>",
		lex:           lex,
		cache:         cache,
	}
}

// Phonemize converts text to a space-separated phoneme sequence.
//
// Each whitespace-separated word is looked up whole; a missing word is
// covered greedily by the longest lexicon entries prefixing its remainder.
// A word the lexicon cannot fully cover yields UnknownSymbol once.
func (c *LexiconConverter) Phonemize(text string) (string, error) {
	if cached, ok := c.cache.Get(text); ok {
		return cached.(string), nil
	}
	c.buildOnce.Do(c.build)

	var phonemes []string
	for _, word := range strings.Fields(text) {
		phonemes = append(phonemes, c.wordPhonemes(word)...)
	}
	result := strings.Join(phonemes, " ")
	c.cache.Add(text, result)
	return result, nil
}

func (c *LexiconConverter) wordPhonemes(word string) []string {
	if phonemes, ok := c.lex.Lookup(word); ok {
		return phonemes
	}
	// Cover the word with the longest entries available; bail out to the
	// unknown symbol when a position has no match at all.
	var phonemes []string
	rest := strings.ToLower(word)
	for rest != "" {
		key, entry, ok := c.matcher.longest(rest)
		if !ok {
			return []string{c.UnknownSymbol}
		}
		phonemes = append(phonemes, entry...)
		rest = rest[len(key):]
	}
	return phonemes
}

func (c *LexiconConverter) build() {
	c.matcher = newMatcher(c.lex)
	klog.V(1).Infof("g2p: built longest-match index over %d lexicon entries", c.lex.Len())
}
