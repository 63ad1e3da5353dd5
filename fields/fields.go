// Package fields parses 1-based column ranges ("2-", "1-3", "-3", "2") and
// slices delimited lines with them, following the conventions of the Unix
// "cut" command.
package fields

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrFormat reports a range string that is not one of the accepted shapes.
var ErrFormat = errors.New("field format error")

// Range is a 0-based half-open column interval. A nil bound means the range
// is open on that side.
type Range struct {
	Start *int
	End   *int
}

// Parse converts a 1-based field expression to a Range.
//
// Accepted shapes, after stripping surrounding whitespace:
//
//	"2-"  -> columns 2..last
//	"2-5" -> columns 2..5 inclusive
//	"-5"  -> columns 1..5
//	"2"   -> column 2 only
//
// Column numbers start at 1; "0" anywhere in the start position is rejected.
func Parse(field string) (Range, error) {
	field = strings.TrimSpace(field)
	badFormat := func() (Range, error) {
		return Range{}, errors.Wrapf(ErrFormat, "e.g. '2-', '2-5', or '-5': %q", field)
	}

	var r Range
	if before, after, found := strings.Cut(field, "-"); found {
		if s := strings.TrimSpace(before); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n == 0 {
				return badFormat()
			}
			start := n - 1
			r.Start = &start
		}
		if s := strings.TrimSpace(after); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n < 0 {
				return badFormat()
			}
			r.End = &n
		}
	} else {
		n, err := strconv.Atoi(field)
		if err != nil || n == 0 {
			return badFormat()
		}
		start, end := n-1, n
		r.Start = &start
		r.End = &end
	}
	return r, nil
}

// Cut returns the sub-slice of cols selected by the range. Out-of-range
// bounds clamp to the slice limits, so the result may be empty but Cut never
// fails. Parse never produces negative bounds.
func (r Range) Cut(cols []string) []string {
	start, end := 0, len(cols)
	if r.Start != nil {
		start = min(*r.Start, len(cols))
	}
	if r.End != nil {
		end = min(*r.End, len(cols))
	}
	if start >= end {
		return nil
	}
	return cols[start:end]
}

// SliceLine splits line on delimiter, keeps the columns selected by the
// range, and rejoins them with the same delimiter. An empty delimiter splits
// on arbitrary whitespace runs and rejoins with a single space.
func SliceLine(line, delimiter string, r Range) string {
	var cols []string
	if delimiter == "" {
		cols = strings.Fields(line)
	} else {
		cols = strings.Split(line, delimiter)
	}
	cols = r.Cut(cols)
	if delimiter == "" {
		return strings.Join(cols, " ")
	}
	return strings.Join(cols, delimiter)
}
