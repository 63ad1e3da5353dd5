package vocab

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gomlx/phonetok/tokenizer"
)

func addTokens(b *Builder, char, phone []string) {
	b.Add(tokenizer.TokenPair{Char: char, Phone: phone})
}

func symbols(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Symbol
	}
	return out
}

func TestParseInjection(t *testing.T) {
	injection, err := ParseInjection("<blank>:0")
	require.NoError(t, err)
	require.Equal(t, Injection{Symbol: "<blank>", Index: 0}, injection)

	injection, err = ParseInjection("<unk>:-1")
	require.NoError(t, err)
	require.Equal(t, Injection{Symbol: "<unk>", Index: -1}, injection)

	for _, spec := range []string{"<blank>", "<blank>:x", "a:b:c", ""} {
		_, err = ParseInjection(spec)
		require.ErrorIsf(t, err, ErrFormat, "ParseInjection(%q)", spec)
		require.ErrorContains(t, err, "'<blank>:0'")
	}
}

func TestRankingOrder(t *testing.T) {
	b := NewBuilder()
	// a:3, b:2, c:1 on the char stream.
	addTokens(b, []string{"b", "a", "c", "a", "b", "a"}, nil)

	entries, err := b.FinalizeChar(0, 0, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c"}, symbols(entries))
	require.Equal(t, 3, entries[0].Count)
	require.True(t, entries[0].Counted)
}

func TestRankingTieBreak(t *testing.T) {
	b := NewBuilder()
	// x and y tie at 2; y was seen first and must rank first.
	addTokens(b, []string{"y", "x", "x", "y"}, nil)
	entries, err := b.FinalizeChar(0, 0, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"y", "x"}, symbols(entries))
}

func TestRankingDeterministic(t *testing.T) {
	build := func() []string {
		b := NewBuilder()
		addTokens(b, []string{"p", "q", "r", "p", "q", "r", "s"}, nil)
		entries, err := b.FinalizeChar(0, 0, nil)
		require.NoError(t, err)
		return symbols(entries)
	}
	first := build()
	for range 10 {
		require.Equal(t, first, build())
	}
}

func TestCutoffBoundary(t *testing.T) {
	b := NewBuilder()
	// a:3, b:2, c:1.
	addTokens(b, []string{"a", "a", "a", "b", "b", "c"}, nil)

	// A count exactly equal to the cutoff is dropped.
	entries, err := b.FinalizeChar(2, 0, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"a"}, symbols(entries))

	entries, err = b.FinalizeChar(1, 0, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, symbols(entries))
}

func TestSizeCap(t *testing.T) {
	b := NewBuilder()
	addTokens(b, []string{"a", "a", "a", "b", "b", "c"}, nil)
	injections, err := ParseInjections([]string{"<blank>:0", "<unk>:-1"})
	require.NoError(t, err)

	entries, err := b.FinalizeChar(0, 3, injections)
	require.NoError(t, err)
	require.Equal(t, []string{"<blank>", "a", "<unk>"}, symbols(entries))

	// A cap equal to the injection count leaves zero counted entries.
	entries, err = b.FinalizeChar(0, 2, injections)
	require.NoError(t, err)
	require.Equal(t, []string{"<blank>", "<unk>"}, symbols(entries))

	// One less than the injection count is a configuration error.
	_, err = b.FinalizeChar(0, 1, injections)
	require.ErrorIs(t, err, ErrConfig)

	// Zero disables the cap entirely.
	entries, err = b.FinalizeChar(0, 0, injections)
	require.NoError(t, err)
	require.Equal(t, []string{"<blank>", "a", "b", "c", "<unk>"}, symbols(entries))
}

func TestInjectionSplice(t *testing.T) {
	b := NewBuilder()
	addTokens(b, []string{"a", "a", "a", "b", "b", "c"}, nil)

	injections, err := ParseInjections([]string{"<blank>:0", "<unk>:-1"})
	require.NoError(t, err)
	entries, err := b.FinalizeChar(0, 0, injections)
	require.NoError(t, err)
	require.Equal(t, []string{"<blank>", "a", "b", "c", "<unk>"}, symbols(entries))
	require.False(t, entries[0].Counted)
	require.False(t, entries[4].Counted)

	// Later injections splice into the already-grown list: after <blank>
	// lands at 0, <sos>:1 goes between <blank> and a.
	injections, err = ParseInjections([]string{"<blank>:0", "<sos>:1", "<eos>:-1"})
	require.NoError(t, err)
	entries, err = b.FinalizeChar(0, 0, injections)
	require.NoError(t, err)
	require.Equal(t, []string{"<blank>", "<sos>", "a", "b", "c", "<eos>"}, symbols(entries))
}

func TestInjectionCollision(t *testing.T) {
	b := NewBuilder()
	addTokens(b, []string{"a", "b"}, nil)

	// Injected symbols may collide with counted ones; no dedup happens.
	injections, err := ParseInjections([]string{"a:0"})
	require.NoError(t, err)
	entries, err := b.FinalizeChar(0, 0, injections)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "a", "b"}, symbols(entries))
}

func TestOOVRate(t *testing.T) {
	b := NewBuilder()
	// a:5, b:3, c:2 -> total 10.
	var tokens []string
	for token, n := range map[string]int{"a": 5, "b": 3, "c": 2} {
		for range n {
			tokens = append(tokens, token)
		}
	}
	addTokens(b, tokens, nil)

	// Retaining only a and b leaves c's 2 occurrences out: 20%.
	entries, err := b.FinalizeChar(0, 2, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, symbols(entries))
	require.InDelta(t, 0.2, b.CharOOVRate(entries), 1e-9)

	// Injected symbols cover nothing.
	injections, err := ParseInjections([]string{"c:-1"})
	require.NoError(t, err)
	entries, err = b.FinalizeChar(0, 3, injections)
	require.NoError(t, err)
	require.InDelta(t, 0.2, b.CharOOVRate(entries), 1e-9)

	// An empty corpus has rate 0, not NaN.
	require.Zero(t, NewBuilder().CharOOVRate(nil))
}

func TestStreamsAreIndependent(t *testing.T) {
	b := NewBuilder()
	addTokens(b, []string{"a"}, []string{"AA", "AA", "B"})

	charEntries, err := b.FinalizeChar(0, 0, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"a"}, symbols(charEntries))

	phoneEntries, err := b.FinalizePhone(0, 0, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"AA", "B"}, symbols(phoneEntries))
	require.Equal(t, 1, b.CharTotal())
	require.Equal(t, 3, b.PhoneTotal())
}
