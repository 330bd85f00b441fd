package config

import (
	"fmt"
	"regexp"
)

// InvalidRawPatternError reports an ignored_urls_regex entry that is not a valid regular expression.
type InvalidRawPatternError struct {
	Pattern string
	Err     error
}

func (e *InvalidRawPatternError) Error() string {
	return fmt.Sprintf("invalid regular expression '%s': %s", e.Pattern, e.Err)
}

func (e *InvalidRawPatternError) Unwrap() error {
	return e.Err
}

// Regexp is a raw entry of ignored_urls_regex. It matches anywhere in the URL unless the expression anchors itself.
type Regexp struct {
	re *regexp.Regexp
}

func (r Regexp) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Regexp) UnmarshalText(text []byte) error {
	re, err := regexp.Compile(string(text))
	if err != nil {
		return &InvalidRawPatternError{Pattern: string(text), Err: err}
	}

	(*r).re = re

	return nil
}

func (r Regexp) String() string {
	if r.re == nil {
		return ""
	}
	return r.re.String()
}

func (r Regexp) Match(u string) bool {
	return r.re != nil && r.re.MatchString(u)
}

type RegexpSet []Regexp

func (rs RegexpSet) Match(u string) bool {
	_, ok := rs.Find(u)
	return ok
}

// Find returns the first expression that matches u.
func (rs RegexpSet) Find(u string) (Regexp, bool) {
	for _, r := range rs {
		if r.Match(u) {
			return r, true
		}
	}
	return Regexp{}, false
}
