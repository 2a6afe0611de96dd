package catalog

import "strings"

// lineKind classifies one logical line of catalog input.
type lineKind int

const (
	lineBlank lineKind = iota
	lineComment
	lineHeader
	lineKeyValue
	lineGarbage
)

// classify determines how a line participates in the block structure.
// Carriage returns are the caller's problem; the format is \n-terminated.
func classify(line string) lineKind {
	switch {
	case len(strings.TrimSpace(line)) == 0:
		return lineBlank
	case line[0] == ';':
		return lineComment
	case line[0] == '[':
		return lineHeader
	case strings.ContainsRune(line, '='):
		return lineKeyValue
	}
	return lineGarbage
}

// scanner walks the input buffer one \n-terminated line at a time, tracking
// the 1-based line number for diagnostics.
type scanner struct {
	rest string
	line int
}

func newScanner(input string) *scanner {
	return &scanner{rest: input}
}

// next returns the next line without its terminator. The final line needs no
// trailing \n.
func (s *scanner) next() (string, bool) {
	if len(s.rest) == 0 {
		return "", false
	}
	s.line++
	if i := strings.IndexByte(s.rest, '\n'); i >= 0 {
		line := s.rest[:i]
		s.rest = s.rest[i+1:]
		return line, true
	}
	line := s.rest
	s.rest = ""
	return line, true
}

// countHeaders pre-counts block headers so the record slice can be allocated
// once. Every record comes from a header, so the count is an exact bound.
func countHeaders(input string) int {
	n := 0
	for sc := newScanner(input); ; {
		line, ok := sc.next()
		if !ok {
			break
		}
		if classify(line) == lineHeader {
			n++
		}
	}
	return n
}
