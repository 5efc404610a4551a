package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/odvcencio/leancheck/pkg/env"
	"github.com/odvcencio/leancheck/pkg/term"
)

// tracer prints each inserted entity as "<Kind> <idx>: <rendering>".
type tracer struct {
	env   *env.Env
	out   io.Writer
	kinds map[term.Kind]bool
	log   *slog.Logger
}

func newTracer(e *env.Env, out io.Writer, kinds map[term.Kind]bool, log *slog.Logger) *tracer {
	return &tracer{env: e, out: out, kinds: kinds, log: log}
}

func traceLabel(k term.Kind) string {
	switch k {
	case term.KindName:
		return "Name"
	case term.KindLevel:
		return "Level"
	case term.KindExpr:
		return "Expr"
	default:
		return "Declaration"
	}
}

func (t *tracer) Inserted(ref term.Ref) {
	if !t.kinds[ref.Kind] {
		return
	}
	s, err := t.env.Render(ref)
	if err != nil {
		t.log.Warn("trace render failed", "kind", ref.Kind, "index", ref.Index, "err", err)
		return
	}
	fmt.Fprintf(t.out, "%s %d: %s\n", traceLabel(ref.Kind), ref.Index, s)
}
