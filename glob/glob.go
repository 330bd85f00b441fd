// Package glob compiles browser style URL globs like "https://*.example.com/**" into anchored, case-insensitive matchers.
//
// A single "*" matches inside one domain label, port or path segment.
// A "**" matches anything, and so does a "*" placed in the query part of the glob.
package glob

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	// Separator divides the protocol and the rest of a URL. Every glob must contain it.
	Separator = "://"

	matchSegment  = `[^.:/]*?`
	matchAnything = `.*?`
	optionalSlash = `/?`
)

// Glob is a compiled URL glob.
//
// It holds two expressions: one for candidates with a protocol and one for bare hosts or paths.
// A Glob is immutable and safe for concurrent use.
type Glob struct {
	source          string
	withProtocol    *regexp.Regexp
	withoutProtocol *regexp.Regexp
}

// Compile parses glob and returns a matcher for it.
func Compile(glob string) (*Glob, error) {
	idx := strings.Index(glob, Separator)
	if idx < 0 {
		return nil, &InvalidGlobError{Glob: glob}
	}

	with, err := regexp.Compile(translate(glob, true))
	if err != nil {
		return nil, fmt.Errorf("failed to compile glob '%s': %w", glob, err)
	}

	without, err := regexp.Compile(translate(glob[idx+len(Separator):], false))
	if err != nil {
		return nil, fmt.Errorf("failed to compile glob '%s': %w", glob, err)
	}

	return &Glob{
		source:          glob,
		withProtocol:    with,
		withoutProtocol: without,
	}, nil
}

// MustCompile is like Compile but panics if the glob is invalid.
func MustCompile(glob string) *Glob {
	g, err := Compile(glob)
	if err != nil {
		panic(err.Error())
	}
	return g
}

// Match reports whether the whole candidate matches the glob.
// Candidates containing "://" are checked against the protocol form, others against the bare form.
func (g *Glob) Match(candidate string) bool {
	if strings.Contains(candidate, Separator) {
		return g.withProtocol.MatchString(candidate)
	}
	return g.withoutProtocol.MatchString(candidate)
}

func (g *Glob) String() string {
	return g.source
}

// Expressions returns the compiled expressions for candidates with and without a protocol.
func (g *Glob) Expressions() (withProtocol, withoutProtocol string) {
	return g.withProtocol.String(), g.withoutProtocol.String()
}

func (g *Glob) MarshalText() ([]byte, error) {
	return []byte(g.source), nil
}

func (g *Glob) UnmarshalText(text []byte) error {
	compiled, err := Compile(string(text))
	if err != nil {
		return err
	}
	*g = *compiled
	return nil
}

// HasWildcardRun reports whether glob contains three or more "*" in a row.
// Such a run compiles as "**" followed by "*", which is rarely what the author meant.
func HasWildcardRun(glob string) bool {
	return strings.Contains(glob, "***")
}

// translate builds the expression source for pattern.
// When protocol is true the pattern starts with a protocol and contains the separator,
// otherwise it is the part that follows the separator.
//
// The query starts at the first "?" after the separator, or after the first rune when there is no protocol.
// So a "?" directly after "://" begins the query of the protocol form but is a literal "?" in the bare form:
// "https://?q=*" matches "https://?q=a.b" but not "?q=a.b".
func translate(pattern string, protocol bool) string {
	s := newScanner(pattern)

	protocolIndex := 0
	if protocol {
		protocolIndex = s.index(Separator, 0)
	}
	queryIndex := s.index("?", protocolIndex+1)

	var b strings.Builder
	b.Grow(len(pattern) * 2)
	b.WriteString("(?i)^")

	for !s.done() {
		i := s.pos
		c := s.current()
		next, _ := s.peek()

		switch {
		case protocol && i == protocolIndex:
			b.WriteString(Separator)
			s.advance(len(Separator))
			continue

		case c == '/' && (queryIndex < 0 || i+1 == queryIndex):
			b.WriteString(optionalSlash)

		case c == '*' && next == '*':
			if i < protocolIndex {
				b.WriteString(matchSegment)
			} else {
				b.WriteString(matchAnything)
			}
			s.advance(1)

		case c == '*':
			if queryIndex >= 0 && i > queryIndex {
				b.WriteString(matchAnything)
			} else {
				b.WriteString(matchSegment)
			}

		default:
			if isMetaCharacter(c) {
				b.WriteByte('\\')
			}
			b.WriteRune(c)
		}
		s.advance(1)
	}

	if queryIndex < 0 && !strings.HasSuffix(b.String(), optionalSlash) {
		b.WriteString(optionalSlash)
	}
	b.WriteByte('$')

	return b.String()
}

func isMetaCharacter(c rune) bool {
	switch c {
	case '\\', '.', '+', '*', '?', '(', ')', '|', '[', ']', '{', '}', '^', '$', '#', '&', '-', '~':
		return true
	}
	return false
}
