// Package recurrence decides on which calendar days a repeating event occurs.
//
// Events repeat by one of a small, closed set of rules. Matching is done on
// calendar days only: the time-of-day stored with an event never affects
// whether it occurs on a given date.
package recurrence

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownRule is returned when a repeat rule is outside the supported vocabulary.
var ErrUnknownRule = errors.New("unknown repeat rule")

// Rule is how often an event repeats after its first date.
type Rule int

const (
	// None means the event only happens on its first date.
	None Rule = iota
	Daily
	Weekly
	Monthly
	Yearly

	// Unrecognized marks a rule value that arrived malformed. Events carrying
	// it are treated as never repeating.
	Unrecognized Rule = -1
)

var ruleNames = map[Rule]string{
	None:    "None",
	Daily:   "Daily",
	Weekly:  "Weekly",
	Monthly: "Monthly",
	Yearly:  "Yearly",
}

// ParseRule parses a rule name case-insensitively. The empty string maps to None.
// Any other unknown value yields Unrecognized together with ErrUnknownRule.
func ParseRule(s string) (Rule, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return None, nil
	}
	for rule, name := range ruleNames {
		if strings.EqualFold(s, name) {
			return rule, nil
		}
	}
	return Unrecognized, fmt.Errorf("%w: %q", ErrUnknownRule, s)
}

// Valid reports whether r is one of the five supported rules.
func (r Rule) Valid() bool {
	_, ok := ruleNames[r]
	return ok
}

// Repeats reports whether r produces occurrences beyond the first date.
func (r Rule) Repeats() bool {
	return r.Valid() && r != None
}

func (r Rule) String() string {
	if name, ok := ruleNames[r]; ok {
		return name
	}
	return "Unrecognized"
}

// MarshalText implements encoding.TextMarshaler.
func (r Rule) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRule, int(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Rule) UnmarshalText(text []byte) error {
	rule, err := ParseRule(string(text))
	if err != nil {
		return err
	}
	*r = rule
	return nil
}
