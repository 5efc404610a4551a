package diff

import (
	"fmt"
	"strings"
)

// FormatSummary produces one line per changed declaration.
//
// Output format:
//
//	+ nat.succ     (added)
//	~ nat.add      (modified)
//	- nat.rec      (removed)
func FormatSummary(r *Result) string {
	var b strings.Builder
	for _, c := range r.Changes {
		fmt.Fprintf(&b, "%s %s     (%s)\n", marker(c.Type), c.Name, c.Type)
	}
	return b.String()
}

// FormatLines produces unified-diff-style output. Modified declarations show
// a line edit script of their renderings; added and removed ones are shown
// in full.
//
// Output format for a modified declaration:
//
//	--- a/nat.add
//	+++ b/nat.add
//	-old line
//	+new line
func FormatLines(r *Result) string {
	var b strings.Builder
	for _, c := range r.Changes {
		switch c.Type {
		case Modified:
			fmt.Fprintf(&b, "--- a/%s\n+++ b/%s\n", c.Name, c.Name)
			for _, l := range Lines(c.Before, c.After) {
				switch l.Type {
				case Delete:
					fmt.Fprintf(&b, "-%s\n", l.Content)
				case Insert:
					fmt.Fprintf(&b, "+%s\n", l.Content)
				default:
					fmt.Fprintf(&b, " %s\n", l.Content)
				}
			}
		case Added:
			fmt.Fprintf(&b, "+++ b/%s\n", c.Name)
			for _, l := range splitLines(c.After) {
				fmt.Fprintf(&b, "+%s\n", l)
			}
		case Removed:
			fmt.Fprintf(&b, "--- a/%s\n", c.Name)
			for _, l := range splitLines(c.Before) {
				fmt.Fprintf(&b, "-%s\n", l)
			}
		}
	}
	return b.String()
}

func marker(t ChangeType) string {
	switch t {
	case Added:
		return "+"
	case Removed:
		return "-"
	default:
		return "~"
	}
}
