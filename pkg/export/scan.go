package export

import (
	"strconv"
	"strings"
	"unicode"
)

// scanner splits a single line into whitespace-separated fields.
type scanner struct {
	rest string
}

func newScanner(line string) *scanner {
	return &scanner{rest: line}
}

// peek returns the next field and the input following it.
func (s *scanner) peek() (field, rest string, ok bool) {
	trimmed := strings.TrimLeftFunc(s.rest, unicode.IsSpace)
	if trimmed == "" {
		return "", "", false
	}
	end := strings.IndexFunc(trimmed, unicode.IsSpace)
	if end < 0 {
		end = len(trimmed)
	}
	return trimmed[:end], trimmed[end:], true
}

// next consumes the next field.
func (s *scanner) next() (string, bool) {
	field, rest, ok := s.peek()
	if ok {
		s.rest = rest
	}
	return field, ok
}

// nextIdx consumes the next field if it is an unsigned decimal integer.
// Anything else is left in place.
func (s *scanner) nextIdx() (uint64, bool) {
	field, rest, ok := s.peek()
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseUint(field, 10, 64)
	if err != nil {
		return 0, false
	}
	s.rest = rest
	return n, true
}

// idx is nextIdx that reports a missing or malformed field as a
// GrammarError naming what was expected.
func (s *scanner) idx(what string) (uint64, error) {
	n, ok := s.nextIdx()
	if !ok {
		return 0, expecting(what)
	}
	return n, nil
}

// idxs consumes integers until the first field that is not one.
func (s *scanner) idxs() []uint64 {
	var out []uint64
	for {
		n, ok := s.nextIdx()
		if !ok {
			return out
		}
		out = append(out, n)
	}
}

// eol fails if any field remains.
func (s *scanner) eol() error {
	if _, _, ok := s.peek(); ok {
		return expecting("end of line")
	}
	return nil
}
