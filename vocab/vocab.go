// Package vocab accumulates token frequencies over a corpus and produces
// ranked, size-capped vocabularies with positional symbol injection.
package vocab

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/slices"

	"github.com/gomlx/phonetok/tokenizer"
)

var (
	// ErrFormat reports a malformed "symbol:index" injection spec.
	ErrFormat = errors.New("injection format error")

	// ErrConfig reports a vocabulary size cap smaller than the number of
	// injected symbols.
	ErrConfig = errors.New("vocabulary size error")
)

// Entry is one line of a ranked vocabulary. Counted is false for injected
// symbols, whose Count is meaningless.
type Entry struct {
	Symbol  string
	Count   int
	Counted bool
}

// Injection places Symbol at Index in a ranked vocabulary. A negative index
// counts from the end, -1 meaning "append last".
type Injection struct {
	Symbol string
	Index  int
}

// ParseInjection parses a "symbol:index" spec, e.g. "<blank>:0" or "<unk>:-1".
func ParseInjection(spec string) (Injection, error) {
	parts := strings.Split(spec, ":")
	if len(parts) != 2 {
		return Injection{}, errors.Wrapf(ErrFormat, "e.g. '<blank>:0': %q", spec)
	}
	idx, err := strconv.Atoi(parts[1])
	if err != nil {
		return Injection{}, errors.Wrapf(ErrFormat, "e.g. '<blank>:0': %q", spec)
	}
	return Injection{Symbol: strings.TrimSpace(parts[0]), Index: idx}, nil
}

// ParseInjections parses a list of "symbol:index" specs in order.
func ParseInjections(specs []string) ([]Injection, error) {
	injections := make([]Injection, 0, len(specs))
	for _, spec := range specs {
		injection, err := ParseInjection(spec)
		if err != nil {
			return nil, err
		}
		injections = append(injections, injection)
	}
	return injections, nil
}

// counter tracks occurrence counts and the order each token was first seen,
// which breaks ties during ranking.
type counter struct {
	counts    map[string]int
	firstSeen map[string]int
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int), firstSeen: make(map[string]int)}
}

func (c *counter) add(token string) {
	if _, ok := c.counts[token]; !ok {
		c.firstSeen[token] = len(c.firstSeen)
	}
	c.counts[token]++
}

func (c *counter) total() int {
	var total int
	for _, n := range c.counts {
		total += n
	}
	return total
}

// rank produces the ordered vocabulary: count-descending (first-seen order on
// ties), strict cutoff filter, size cap, then sequential injection splicing.
func (c *counter) rank(cutoff, maxSize int, injections []Injection) ([]Entry, error) {
	entries := make([]Entry, 0, len(c.counts))
	for token, count := range c.counts {
		if count > cutoff {
			entries = append(entries, Entry{Symbol: token, Count: count, Counted: true})
		}
	}
	slices.SortFunc(entries, func(a, b Entry) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		return c.firstSeen[a.Symbol] - c.firstSeen[b.Symbol]
	})

	if maxSize > 0 {
		if maxSize < len(injections) {
			return nil, errors.Wrapf(ErrConfig,
				"size %d is too small for %d injected symbols", maxSize, len(injections))
		}
		entries = entries[:min(len(entries), maxSize-len(injections))]
	}

	// Later injections see the already-spliced list, so their final position
	// depends on the order of prior injections.
	for _, injection := range injections {
		idx := injection.Index
		if idx < 0 {
			idx = len(entries) + 1 + idx
		}
		idx = max(0, min(idx, len(entries)))
		entries = slices.Insert(entries, idx, Entry{Symbol: injection.Symbol})
	}
	return entries, nil
}

// oovRate is the fraction of total occurrences not covered by the counted
// entries of the final vocabulary. Injected entries cover nothing.
func (c *counter) oovRate(entries []Entry) float64 {
	total := c.total()
	if total == 0 {
		return 0
	}
	var inVocab int
	for _, entry := range entries {
		if entry.Counted {
			inVocab += entry.Count
		}
	}
	return float64(total-inVocab) / float64(total)
}

// Builder accumulates the char and phone frequency counters of one run.
// It is not safe for concurrent use.
type Builder struct {
	char  *counter
	phone *counter
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{char: newCounter(), phone: newCounter()}
}

// Add folds one line's token pair into both counters.
func (b *Builder) Add(pair tokenizer.TokenPair) {
	for _, token := range pair.Char {
		b.char.add(token)
	}
	for _, token := range pair.Phone {
		b.phone.add(token)
	}
}

// FinalizeChar produces the ranked char vocabulary.
func (b *Builder) FinalizeChar(cutoff, maxSize int, injections []Injection) ([]Entry, error) {
	entries, err := b.char.rank(cutoff, maxSize, injections)
	return entries, errors.WithMessage(err, "char vocabulary")
}

// FinalizePhone produces the ranked phone vocabulary.
func (b *Builder) FinalizePhone(cutoff, maxSize int, injections []Injection) ([]Entry, error) {
	entries, err := b.phone.rank(cutoff, maxSize, injections)
	return entries, errors.WithMessage(err, "phone vocabulary")
}

// CharOOVRate reports the out-of-vocabulary rate of the char stream against
// a finalized vocabulary, in [0, 1].
func (b *Builder) CharOOVRate(entries []Entry) float64 { return b.char.oovRate(entries) }

// PhoneOOVRate reports the out-of-vocabulary rate of the phone stream against
// a finalized vocabulary, in [0, 1].
func (b *Builder) PhoneOOVRate(entries []Entry) float64 { return b.phone.oovRate(entries) }

// CharTotal returns the total number of char token occurrences seen.
func (b *Builder) CharTotal() int { return b.char.total() }

// PhoneTotal returns the total number of phone token occurrences seen.
func (b *Builder) PhoneTotal() int { return b.phone.total() }
