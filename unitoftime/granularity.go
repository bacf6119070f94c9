package unitoftime

import (
	"strings"
)

// =============================================================================
// GRANULARITY - How fine a unit of time is
// =============================================================================

// Granularity is the size class of a unit, independent of family.
// Day is the most granular, Unbounded the least.
type Granularity int

const (
	// GranularityInvalid is a placeholder that never denotes a real
	// granularity. Comparisons reject it.
	GranularityInvalid Granularity = iota
	GranularityDay
	GranularityMonth
	GranularityQuarter
	GranularityYear
	GranularityUnbounded
)

var granularityNames = [...]string{
	GranularityInvalid:   "invalid",
	GranularityDay:       "day",
	GranularityMonth:     "month",
	GranularityQuarter:   "quarter",
	GranularityYear:      "year",
	GranularityUnbounded: "unbounded",
}

func (g Granularity) String() string {
	if !g.Valid() {
		return granularityNames[GranularityInvalid]
	}
	return granularityNames[g]
}

// Valid reports whether g denotes a real granularity.
func (g Granularity) Valid() bool {
	return g >= GranularityDay && g <= GranularityUnbounded
}

// ParseGranularity parses a granularity name such as "quarter".
func ParseGranularity(s string) (Granularity, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for g := GranularityDay; g <= GranularityUnbounded; g++ {
		if granularityNames[g] == name {
			return g, nil
		}
	}
	return GranularityInvalid, &ComponentError{Component: "granularity", Text: s, Err: ErrInvalidGranularity}
}

func (g Granularity) MarshalText() ([]byte, error) {
	if !g.Valid() {
		return nil, ErrInvalidGranularity
	}
	return []byte(g.String()), nil
}

func (g *Granularity) UnmarshalText(text []byte) error {
	parsed, err := ParseGranularity(string(text))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// =============================================================================
// COMPARISON - One rank, four predicates
// =============================================================================

// precision ranks how granular g is: Unbounded 0, Year 1, Quarter 2,
// Month 3, Day 4.
func precision(g Granularity) (int, error) {
	if !g.Valid() {
		return 0, ErrInvalidGranularity
	}
	return int(GranularityUnbounded - g), nil
}

// CompareGranularity returns -1 when a is less granular (coarser) than b,
// 0 when they are equal and +1 when a is more granular (finer).
func CompareGranularity(a, b Granularity) (int, error) {
	pa, err := precision(a)
	if err != nil {
		return 0, err
	}
	pb, err := precision(b)
	if err != nil {
		return 0, err
	}
	switch {
	case pa < pb:
		return -1, nil
	case pa > pb:
		return 1, nil
	default:
		return 0, nil
	}
}

// IsLessGranular reports whether a is coarser than b (Year vs Month).
func IsLessGranular(a, b Granularity) (bool, error) {
	c, err := CompareGranularity(a, b)
	return c < 0, err
}

// IsAsOrLessGranular reports whether a is b or coarser than b.
func IsAsOrLessGranular(a, b Granularity) (bool, error) {
	c, err := CompareGranularity(a, b)
	return err == nil && c <= 0, err
}

// IsMoreGranular reports whether a is finer than b (Day vs Month).
func IsMoreGranular(a, b Granularity) (bool, error) {
	c, err := CompareGranularity(a, b)
	return c > 0, err
}

// IsAsOrMoreGranular reports whether a is b or finer than b.
func IsAsOrMoreGranular(a, b Granularity) (bool, error) {
	c, err := CompareGranularity(a, b)
	return err == nil && c >= 0, err
}
