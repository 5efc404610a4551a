package diff

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// LineType classifies a line in an edit script.
type LineType int

const (
	Equal  LineType = iota // Line is unchanged between a and b.
	Insert                 // Line is present in b only.
	Delete                 // Line is present in a only.
)

// Line is a single operation in an edit script produced by Lines.
type Line struct {
	Type    LineType
	Content string
}

func splitLines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// Lines computes a line edit script turning a into b. A replaced run is
// reported as its deletions followed by its insertions. Junk heuristics are
// off so repeated constructor lines still match.
func Lines(a, b string) []Line {
	before, after := splitLines(a), splitLines(b)
	var ops []Line
	emit := func(t LineType, lines []string) {
		for _, l := range lines {
			ops = append(ops, Line{Type: t, Content: l})
		}
	}
	for _, op := range difflib.NewMatcherWithJunk(before, after, false, nil).GetOpCodes() {
		switch op.Tag {
		case 'e':
			emit(Equal, before[op.I1:op.I2])
		case 'd':
			emit(Delete, before[op.I1:op.I2])
		case 'i':
			emit(Insert, after[op.J1:op.J2])
		case 'r':
			emit(Delete, before[op.I1:op.I2])
			emit(Insert, after[op.J1:op.J2])
		}
	}
	return ops
}
