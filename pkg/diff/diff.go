// Package diff compares the declarations of two decoded exports.
//
// Declarations are matched by their dotted name, so two exports that assign
// different indices to the same environment produce no changes.
package diff

import (
	"fmt"

	"github.com/odvcencio/leancheck/pkg/env"
)

// ChangeType classifies what happened to a declaration between two exports.
type ChangeType int

const (
	Added    ChangeType = iota // Declaration exists only in the after export.
	Removed                    // Declaration exists only in the before export.
	Modified                   // Declaration exists in both but renders differently.
)

func (t ChangeType) String() string {
	switch t {
	case Added:
		return "added"
	case Removed:
		return "removed"
	case Modified:
		return "modified"
	default:
		return fmt.Sprintf("ChangeType(%d)", int(t))
	}
}

// Change records one declaration-level difference.
type Change struct {
	Type   ChangeType
	Name   string // Dotted declaration name.
	Before string // Rendered declaration; empty for Added.
	After  string // Rendered declaration; empty for Removed.
}

// Result holds the declaration diff between two exports. Removed and
// Modified changes follow the before export's declaration order, Added
// changes follow the after export's.
type Result struct {
	Changes []Change
}

// Empty reports whether the two exports declare the same things.
func (r *Result) Empty() bool { return len(r.Changes) == 0 }

// Count returns how many changes of type t the result holds.
func (r *Result) Count(t ChangeType) int {
	n := 0
	for _, c := range r.Changes {
		if c.Type == t {
			n++
		}
	}
	return n
}

type rendered struct {
	name string
	body string
}

func renderAll(e *env.Env) ([]rendered, error) {
	var out []rendered
	for _, n := range e.Decls() {
		name, err := e.RenderName(n)
		if err != nil {
			return nil, err
		}
		body, err := e.RenderDecl(n)
		if err != nil {
			return nil, err
		}
		out = append(out, rendered{name: name, body: body})
	}
	return out, nil
}

// Envs computes the declaration diff from before to after.
func Envs(before, after *env.Env) (*Result, error) {
	beforeList, err := renderAll(before)
	if err != nil {
		return nil, fmt.Errorf("before: %w", err)
	}
	afterList, err := renderAll(after)
	if err != nil {
		return nil, fmt.Errorf("after: %w", err)
	}

	beforeMap := make(map[string]string, len(beforeList))
	for _, d := range beforeList {
		beforeMap[d.name] = d.body
	}
	afterMap := make(map[string]string, len(afterList))
	for _, d := range afterList {
		afterMap[d.name] = d.body
	}

	res := &Result{}
	for _, d := range beforeList {
		body, ok := afterMap[d.name]
		switch {
		case !ok:
			res.Changes = append(res.Changes, Change{Type: Removed, Name: d.name, Before: d.body})
		case body != d.body:
			res.Changes = append(res.Changes, Change{Type: Modified, Name: d.name, Before: d.body, After: body})
		}
	}
	for _, d := range afterList {
		if _, ok := beforeMap[d.name]; !ok {
			res.Changes = append(res.Changes, Change{Type: Added, Name: d.name, After: d.body})
		}
	}
	return res, nil
}
