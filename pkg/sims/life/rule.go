package life

import (
	"fmt"
	"strings"
)

// MaxNeighbors is the largest neighbor count a cell can observe.
const MaxNeighbors = 8

// Rule is a set of neighbor counts stored as a 9-bit mask.
type Rule uint16

// NewRule builds a Rule from neighbor counts in [0, MaxNeighbors].
func NewRule(counts ...int) (Rule, error) {
	var r Rule
	for _, n := range counts {
		if n < 0 || n > MaxNeighbors {
			return 0, fmt.Errorf("%w: neighbor count %d outside 0-%d", ErrInvalidConfiguration, n, MaxNeighbors)
		}
		r |= 1 << uint(n)
	}
	return r, nil
}

// Has reports whether n is a member of the rule.
func (r Rule) Has(n int) bool {
	if n < 0 || n > MaxNeighbors {
		return false
	}
	return r&(1<<uint(n)) != 0
}

// Counts returns the members of the rule in ascending order.
func (r Rule) Counts() []int {
	var out []int
	for n := 0; n <= MaxNeighbors; n++ {
		if r.Has(n) {
			out = append(out, n)
		}
	}
	return out
}

// String renders the members as a digit string, e.g. "23".
func (r Rule) String() string {
	var b strings.Builder
	for _, n := range r.Counts() {
		b.WriteByte(byte('0' + n))
	}
	return b.String()
}

// RuleSet pairs the birth and survival rules of a Life-like automaton.
type RuleSet struct {
	Birth   Rule
	Survive Rule
}

// Conway is the standard B3/S23 rule.
var Conway = RuleSet{Birth: 1 << 3, Survive: 1<<2 | 1<<3}

// String renders the rule set in B/S notation.
func (rs RuleSet) String() string {
	return "B" + rs.Birth.String() + "/S" + rs.Survive.String()
}

// ParseRuleSet parses "B3/S23" notation (either order, any case) as well as
// the older survive/birth form "23/3".
func ParseRuleSet(s string) (RuleSet, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 2 {
		return RuleSet{}, fmt.Errorf("%w: rule %q must have the form B3/S23", ErrInvalidConfiguration, s)
	}
	a, b := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	pa, pb := rulePrefix(a), rulePrefix(b)

	var rs RuleSet
	var err error
	switch {
	case pa == 0 && pb == 0:
		if rs.Survive, err = parseDigits(a); err != nil {
			return RuleSet{}, fmt.Errorf("rule %q: %w", s, err)
		}
		if rs.Birth, err = parseDigits(b); err != nil {
			return RuleSet{}, fmt.Errorf("rule %q: %w", s, err)
		}
	case pa == 'b' && pb == 's':
		if rs.Birth, err = parseDigits(a[1:]); err != nil {
			return RuleSet{}, fmt.Errorf("rule %q: %w", s, err)
		}
		if rs.Survive, err = parseDigits(b[1:]); err != nil {
			return RuleSet{}, fmt.Errorf("rule %q: %w", s, err)
		}
	case pa == 's' && pb == 'b':
		if rs.Survive, err = parseDigits(a[1:]); err != nil {
			return RuleSet{}, fmt.Errorf("rule %q: %w", s, err)
		}
		if rs.Birth, err = parseDigits(b[1:]); err != nil {
			return RuleSet{}, fmt.Errorf("rule %q: %w", s, err)
		}
	default:
		return RuleSet{}, fmt.Errorf("%w: rule %q mixes or repeats B/S prefixes", ErrInvalidConfiguration, s)
	}
	return rs, nil
}

func rulePrefix(s string) byte {
	if s == "" {
		return 0
	}
	switch s[0] {
	case 'B', 'b':
		return 'b'
	case 'S', 's':
		return 's'
	}
	return 0
}

func parseDigits(s string) (Rule, error) {
	counts := make([]int, 0, len(s))
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("%w: unexpected %q in neighbor counts", ErrInvalidConfiguration, c)
		}
		counts = append(counts, int(c-'0'))
	}
	return NewRule(counts...)
}
