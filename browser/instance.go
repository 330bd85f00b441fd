// Package browser finds running Firefox instances and opens URLs in them.
package browser

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	wildcard "github.com/gobwas/glob"
)

// Instance is a running (or to be started) browser.
type Instance struct {
	Path    string
	Profile string
}

func (i Instance) HasProfile() bool {
	return i.Profile != ""
}

// less orders instances with a profile first, by profile name, then by path.
func (i Instance) less(o Instance) bool {
	if i.HasProfile() != o.HasProfile() {
		return i.HasProfile()
	}
	if i.Profile != o.Profile {
		return i.Profile < o.Profile
	}
	return i.Path < o.Path
}

func Sort(is []Instance) {
	sort.SliceStable(is, func(a, b int) bool {
		return is[a].less(is[b])
	})
}

// ProcessMatcher matches the executable name of a command line against a wildcard pattern like "firefox*", ignoring case.
type ProcessMatcher struct {
	pattern string
	matcher wildcard.Glob
}

func NewProcessMatcher(pattern string) (ProcessMatcher, error) {
	if pattern == "" {
		return ProcessMatcher{}, fmt.Errorf("empty process name")
	}

	m, err := wildcard.Compile(strings.ToLower(pattern))
	if err != nil {
		return ProcessMatcher{}, fmt.Errorf("invalid process name %#v: %w", pattern, err)
	}
	return ProcessMatcher{pattern: pattern, matcher: m}, nil
}

func (m ProcessMatcher) String() string {
	return m.pattern
}

func (m ProcessMatcher) Match(cmdline []string) bool {
	if len(cmdline) == 0 || m.matcher == nil {
		return false
	}
	name := filepath.Base(strings.ReplaceAll(cmdline[0], `\`, "/"))
	return m.matcher.Match(strings.ToLower(name))
}

// ParseInstance reads the executable path and the profile given by "-P" or "-profile" from cmdline.
func ParseInstance(cmdline []string) (Instance, bool) {
	if len(cmdline) == 0 {
		return Instance{}, false
	}

	inst := Instance{Path: cmdline[0]}
	for i, arg := range cmdline {
		if arg == "-P" || arg == "-profile" {
			if i+1 < len(cmdline) {
				inst.Profile = cmdline[i+1]
			}
			break
		}
	}
	return inst, true
}

// Choose picks the instance to open URLs with.
//
// The first of the sorted running instances wins. If nothing is running, fallbackPath is used without a profile.
// A non-empty profile overrides whichever profile was chosen.
func Choose(running []Instance, fallbackPath, profile string) Instance {
	var inst Instance
	if len(running) > 0 {
		sorted := append([]Instance(nil), running...)
		Sort(sorted)
		inst = sorted[0]
	} else {
		inst = Instance{Path: fallbackPath}
	}

	if profile != "" {
		inst.Profile = profile
	}
	return inst
}
