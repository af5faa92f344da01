package paging

import (
	"strings"

	"github.com/friendsofgo/errors"
)

// Priority is an integer value for ordering.
//
//   - 0: not requested
//   - > 0: ascending
//   - < 0: descending
//
// The absolute value is the rank; the smaller it is, the earlier the column sorts.
type Priority int16

// Enabled reports whether the priority requests ordering at all.
func (p Priority) Enabled() bool {
	return p != 0
}

// Abs returns the rank of the priority.
func (p Priority) Abs() Priority {
	if p < 0 {
		return -p
	}
	return p
}

// Direction returns Asc for positive priorities and Desc for negative ones.
// The zero priority reports Asc; callers filter it out with Enabled first.
func (p Priority) Direction() Direction {
	if p < 0 {
		return Desc
	}
	return Asc
}

// Direction is the sort direction of an order term.
type Direction int

const (
	Asc Direction = iota
	Desc
)

// String returns "ASC" or "DESC".
func (d Direction) String() string {
	if d == Desc {
		return "DESC"
	}
	return "ASC"
}

// NullStrategy controls where NULL values sort relative to other values.
type NullStrategy int

const (
	// NullsDefault leaves NULL placement to the database.
	NullsDefault NullStrategy = iota
	// NullsFirst sorts NULL values before all others.
	NullsFirst
	// NullsLast sorts NULL values after all others.
	NullsLast
)

func (s NullStrategy) String() string {
	switch s {
	case NullsFirst:
		return "nulls_first"
	case NullsLast:
		return "nulls_last"
	default:
		return "default"
	}
}

// ParseNullStrategy parses "first", "nulls_first", "last", "nulls_last", "default" or
// the empty string (case-insensitive).
func ParseNullStrategy(s string) (NullStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return NullsDefault, nil
	case "first", "nulls_first":
		return NullsFirst, nil
	case "last", "nulls_last":
		return NullsLast, nil
	}

	return NullsDefault, errors.Wrapf(ErrInvalidNullStrategy, "%q", s)
}
