package glob

// scanner walks a glob one rune at a time with a single rune of lookahead.
type scanner struct {
	runes []rune
	pos   int
}

func newScanner(s string) *scanner {
	return &scanner{runes: []rune(s)}
}

func (s *scanner) done() bool {
	return s.pos >= len(s.runes)
}

func (s *scanner) current() rune {
	return s.runes[s.pos]
}

func (s *scanner) peek() (rune, bool) {
	if s.pos+1 >= len(s.runes) {
		return 0, false
	}
	return s.runes[s.pos+1], true
}

func (s *scanner) advance(n int) {
	s.pos += n
}

// index returns the rune offset of the first occurrence of sub at or after from, or -1.
func (s *scanner) index(sub string, from int) int {
	needle := []rune(sub)
	for i := from; i+len(needle) <= len(s.runes); i++ {
		found := true
		for j, r := range needle {
			if s.runes[i+j] != r {
				found = false
				break
			}
		}
		if found {
			return i
		}
	}
	return -1
}
