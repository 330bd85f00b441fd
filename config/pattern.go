package config

import (
	"github.com/macrat/foxroute/glob"
)

// Pattern is a glob entry of ignored_urls.
type Pattern struct {
	matcher *glob.Glob
}

func (p Pattern) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Pattern) UnmarshalText(text []byte) error {
	pat, err := glob.Compile(string(text))
	if err != nil {
		return err
	}

	(*p).matcher = pat

	return nil
}

func (p Pattern) String() string {
	if p.matcher == nil {
		return ""
	}
	return p.matcher.String()
}

func (p Pattern) Glob() *glob.Glob {
	return p.matcher
}

func (p Pattern) Match(u string) bool {
	return p.matcher != nil && p.matcher.Match(u)
}

type PatternSet []Pattern

func (ps PatternSet) Match(u string) bool {
	_, ok := ps.Find(u)
	return ok
}

// Find returns the first pattern that matches u.
func (ps PatternSet) Find(u string) (Pattern, bool) {
	for _, p := range ps {
		if p.Match(u) {
			return p, true
		}
	}
	return Pattern{}, false
}
