// Package filter decides which URLs are dropped before they reach the browser.
package filter

import (
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"github.com/macrat/foxroute/config"
)

type Kind string

const (
	KindGlob   Kind = "glob"
	KindRegexp Kind = "regexp"
)

type Rule struct {
	Kind   Kind
	Source string
}

func (r Rule) String() string {
	return string(r.Kind) + " " + r.Source
}

type Drop struct {
	URL  string
	Rule Rule
}

type ruleSet struct {
	globs   config.PatternSet
	regexps config.RegexpSet
}

// Filter drops a URL if any glob or any regular expression of the current configuration matches it.
// The rules are swapped as a whole by Replace, so a concurrent Match never sees a half updated set.
type Filter struct {
	rules atomic.Pointer[ruleSet]
}

func New(c *config.Config) *Filter {
	f := &Filter{}
	f.Replace(c)
	return f
}

func (f *Filter) Replace(c *config.Config) {
	rs := &ruleSet{}
	if c != nil {
		rs.globs = c.IgnoredURLs
		rs.regexps = c.IgnoredURLsRegex
	}
	f.rules.Store(rs)
}

// Len returns the number of globs and regular expressions.
func (f *Filter) Len() (globs, regexps int) {
	rs := f.rules.Load()
	return len(rs.globs), len(rs.regexps)
}

// Match returns the first rule that matches u. Globs are checked before regular expressions.
func (f *Filter) Match(u string) (Rule, bool) {
	rs := f.rules.Load()

	if p, ok := rs.globs.Find(u); ok {
		return Rule{Kind: KindGlob, Source: p.String()}, true
	}
	if r, ok := rs.regexps.Find(u); ok {
		return Rule{Kind: KindRegexp, Source: r.String()}, true
	}
	return Rule{}, false
}

// Apply splits urls into the ones to open and the ones to drop, keeping their order.
func (f *Filter) Apply(urls []string) (kept []string, dropped []Drop) {
	kept = make([]string, 0, len(urls))

	for _, u := range urls {
		if rule, ok := f.Match(u); ok {
			log.Debug().Str("url", u).Stringer("rule", rule).Msg("drop url")
			dropped = append(dropped, Drop{URL: u, Rule: rule})
		} else {
			kept = append(kept, u)
		}
	}

	if len(dropped) > 0 {
		log.Debug().
			Int("before", len(urls)).
			Int("after", len(kept)).
			Msgf("removed %d URLs by filtering rules", len(dropped))
	}

	return kept, dropped
}
