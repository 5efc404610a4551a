package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/odvcencio/leancheck/pkg/env"
	"github.com/odvcencio/leancheck/pkg/term"
)

func newShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <export-file> <name|level|expr|decl> <index|dotted-name>",
		Short: "Decode an export and print one entity",
		Long:  "Decode an export and print one entity. Names and declarations may be selected by dotted name; use - to read the export from standard input.",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, ok := term.ParseKind(strings.TrimSpace(args[1]))
			if !ok {
				return fmt.Errorf("show: unknown kind %q (want name, level, expr or decl)", args[1])
			}

			s, err := loadSession(cmd, opts, args[0])
			if err != nil {
				return err
			}

			ref, err := resolveRef(s.env, kind, args[2])
			if err != nil {
				return fmt.Errorf("show: %w", err)
			}
			out, err := s.env.Render(ref)
			if err != nil {
				return fmt.Errorf("show: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

// resolveRef turns a user-supplied target into a Ref. Names and declarations
// accept a dotted name as well as an index.
func resolveRef(e *env.Env, kind term.Kind, target string) (term.Ref, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return term.Ref{}, fmt.Errorf("empty %s selector", kind)
	}
	if idx, err := strconv.ParseUint(target, 10, 64); err == nil {
		return term.Ref{Kind: kind, Index: idx}, nil
	}
	if kind != term.KindName && kind != term.KindDecl {
		return term.Ref{}, fmt.Errorf("%s selector %q is not an index", kind, target)
	}
	idx, ok := e.FindName(target)
	if !ok {
		return term.Ref{}, fmt.Errorf("no name %q", target)
	}
	return term.Ref{Kind: kind, Index: uint64(idx)}, nil
}
