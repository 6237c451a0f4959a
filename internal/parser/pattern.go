package parser

import (
	"errors"
	"regexp"
)

// ErrInvalidPattern is matched by every pattern compilation failure
var ErrInvalidPattern = errors.New("invalid pattern")

// InvalidPatternError reports a pattern that is not a valid regular expression
type InvalidPatternError struct {
	Raw string
	Err error // Underlying syntax error from regexp
}

func (e *InvalidPatternError) Error() string {
	return `Invalid pattern "` + e.Raw + `"`
}

func (e *InvalidPatternError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrInvalidPattern) succeed
func (e *InvalidPatternError) Is(target error) bool {
	return target == ErrInvalidPattern
}

// Pattern is a compiled search expression. It is immutable and may be shared
// across every source of a run.
type Pattern struct {
	raw        string
	ignoreCase bool
	re         *regexp.Regexp
}

// Compile builds a Pattern from raw. Case-insensitivity is fixed at compile time.
func Compile(raw string, ignoreCase bool) (*Pattern, error) {
	expr := raw
	if ignoreCase {
		expr = "(?i)" + raw
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, &InvalidPatternError{Raw: raw, Err: err}
	}

	return &Pattern{
		raw:        raw,
		ignoreCase: ignoreCase,
		re:         re,
	}, nil
}

// IsMatch reports whether line contains a match
func (p *Pattern) IsMatch(line []byte) bool {
	return p.re.Match(line)
}

// Selects applies the invert flag: a line is selected when it matches XOR invert
func (p *Pattern) Selects(line []byte, invert bool) bool {
	return p.IsMatch(line) != invert
}

// String returns the raw pattern as given by the user
func (p *Pattern) String() string {
	return p.raw
}

// IgnoreCase reports whether the pattern was compiled case-insensitively
func (p *Pattern) IgnoreCase() bool {
	return p.ignoreCase
}
