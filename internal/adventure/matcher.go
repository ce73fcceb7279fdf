package adventure

import (
	"fmt"
	"regexp"
)

// Matcher decides whether a normalized command is accepted by a rule.
type Matcher interface {
	// Matches reports whether the whole normalized input is accepted.
	Matches(input string) bool

	// String returns the source form of the matcher for display and errors.
	String() string
}

// Exact accepts exactly one command.
type Exact string

// NewExact returns an Exact matcher over the normalized form of s.
func NewExact(s string) Exact {
	return Exact(Normalize(s))
}

// Matches reports whether input equals the command.
func (e Exact) Matches(input string) bool {
	return string(e) == input
}

func (e Exact) String() string {
	return string(e)
}

// Pattern accepts any command matching a regular expression over the whole
// input. An optional exclusion expression rejects inputs that would otherwise
// match, which covers the "anything but X" rules RE2 has no look-ahead for.
type Pattern struct {
	source       string
	re           *regexp.Regexp
	unlessSource string
	unless       *regexp.Regexp
}

// NewPattern compiles expr anchored to the whole input.
func NewPattern(expr string) (Pattern, error) {
	re, err := compileWhole(expr)
	if err != nil {
		return Pattern{}, err
	}
	return Pattern{source: expr, re: re}, nil
}

// MustPattern is like NewPattern but panics on an invalid expression.
func MustPattern(expr string) Pattern {
	p, err := NewPattern(expr)
	if err != nil {
		panic(err)
	}
	return p
}

// Unless returns a copy of p that rejects inputs matching expr (whole input).
func (p Pattern) Unless(expr string) (Pattern, error) {
	re, err := compileWhole(expr)
	if err != nil {
		return Pattern{}, err
	}
	p.unless = re
	p.unlessSource = expr
	return p, nil
}

// Matches reports whether input matches the pattern and not its exclusion.
func (p Pattern) Matches(input string) bool {
	if p.re == nil || !p.re.MatchString(input) {
		return false
	}
	return p.unless == nil || !p.unless.MatchString(input)
}

func (p Pattern) String() string {
	if p.unless != nil {
		return fmt.Sprintf("/%s/ unless /%s/", p.source, p.unlessSource)
	}
	return "/" + p.source + "/"
}

func compileWhole(expr string) (*regexp.Regexp, error) {
	if expr == "" {
		return nil, fmt.Errorf("adventure: empty pattern")
	}
	re, err := regexp.Compile(`^(?:` + expr + `)$`)
	if err != nil {
		return nil, fmt.Errorf("adventure: invalid pattern %q: %w", expr, err)
	}
	return re, nil
}
