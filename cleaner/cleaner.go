// Package cleaner applies per-line text cleaning before tokenization.
package cleaner

import (
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/unicode/norm"
)

// Cleaner rewrites one line of text. The zero name ("") yields the identity
// cleaner, so a caller can always build one from its configuration.
type Cleaner struct {
	name  string
	apply func(string) string
}

// New returns the cleaner with the given name.
//
// Supported names: "" (identity), "nfc", "nfkc" (Unicode normal forms) and
// "whitespace" (trim and squeeze whitespace runs to single spaces).
func New(name string) (*Cleaner, error) {
	c := &Cleaner{name: name}
	switch name {
	case "":
		c.apply = func(s string) string { return s }
	case "nfc":
		c.apply = norm.NFC.String
	case "nfkc":
		c.apply = norm.NFKC.String
	case "whitespace":
		c.apply = func(s string) string { return strings.Join(strings.Fields(s), " ") }
	default:
		return nil, errors.Errorf("unknown cleaner type %q, must be one of \"\", \"nfc\", \"nfkc\" or \"whitespace\"", name)
	}
	return c, nil
}

// Clean returns the cleaned line.
func (c *Cleaner) Clean(line string) string { return c.apply(line) }

// String implements fmt.Stringer.
func (c *Cleaner) String() string {
	if c.name == "" {
		return "Cleaner(identity)"
	}
	return "Cleaner(" + c.name + ")"
}
