// Package trie implements a generic rune-keyed prefix trie with
// longest-prefix lookup, used for greedy symbol matching during tokenization
// and for lexicon longest-match lookup.
package trie

import (
	"fmt"
	"strings"

	"github.com/gomlx/gomlx/types/xslices"
)

// node is either an intermediate node, a value-carrying node, or both:
// a stored key may be a prefix of another stored key.
type node[T any] struct {
	children map[rune]*node[T]
	value    T
	hasValue bool
}

func newNode[T any]() *node[T] {
	return &node[T]{children: make(map[rune]*node[T])}
}

// Trie maps string keys to values of type T.
//
// T is the type of the stored values.
type Trie[T any] struct {
	root *node[T]
	size int
}

// New creates a new empty trie.
func New[T any]() *Trie[T] {
	return &Trie[T]{root: newNode[T]()}
}

// Len returns the number of stored keys.
func (t *Trie[T]) Len() int { return t.size }

// Put stores value under key, overwriting a previous value for the same key.
// The empty key is ignored.
func (t *Trie[T]) Put(key string, value T) {
	if key == "" {
		return
	}
	n := t.root
	for _, r := range key {
		child := n.children[r]
		if child == nil {
			child = newNode[T]()
			n.children[r] = child
		}
		n = child
	}
	if !n.hasValue {
		t.size++
	}
	n.value = value
	n.hasValue = true
}

// Get returns the value stored under key, if any.
func (t *Trie[T]) Get(key string) (value T, ok bool) {
	n := t.root
	for _, r := range key {
		n = n.children[r]
		if n == nil {
			return
		}
	}
	return n.value, n.hasValue
}

// LongestPrefix returns the longest stored key that is a prefix of s, along
// with its value. ok is false when no stored key prefixes s.
func (t *Trie[T]) LongestPrefix(s string) (key string, value T, ok bool) {
	n := t.root
	var depth int
	for i, r := range s {
		n = n.children[r]
		if n == nil {
			break
		}
		depth = i + len(string(r))
		if n.hasValue {
			key, value, ok = s[:depth], n.value, true
		}
	}
	return
}

// Keys returns all stored keys in lexicographic order.
func (t *Trie[T]) Keys() []string {
	keys := make([]string, 0, t.size)
	return appendKeys(keys, "", t.root)
}

func appendKeys[T any](keys []string, prefix string, n *node[T]) []string {
	if n.hasValue {
		keys = append(keys, prefix)
	}
	for _, r := range xslices.SortedKeys(n.children) {
		keys = appendKeys(keys, prefix+string(r), n.children[r])
	}
	return keys
}

// String implements fmt.Stringer.
func (t *Trie[T]) String() string {
	var parts []string
	for _, key := range t.Keys() {
		value, _ := t.Get(key)
		parts = append(parts, fmt.Sprintf("%q: %v", key, value))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
