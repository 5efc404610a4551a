package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/odvcencio/leancheck/pkg/diff"
)

var errExportsDiffer = errors.New("exports differ")

func newDiffCmd(opts *rootOptions) *cobra.Command {
	var summary, exitCode bool

	cmd := &cobra.Command{
		Use:   "diff <before> <after>",
		Short: "Compare the declarations of two exports",
		Long:  "Decode two exports and report declarations that were added, removed or changed. Declarations are matched by name, so renumbered exports of the same environment compare equal.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			before, err := loadSession(cmd, opts, args[0])
			if err != nil {
				return fmt.Errorf("diff %s: %w", args[0], err)
			}
			after, err := loadSession(cmd, opts, args[1])
			if err != nil {
				return fmt.Errorf("diff %s: %w", args[1], err)
			}

			r, err := diff.Envs(before.env, after.env)
			if err != nil {
				return fmt.Errorf("diff: %w", err)
			}
			before.log.Debug("diffed exports",
				"added", r.Count(diff.Added),
				"removed", r.Count(diff.Removed),
				"modified", r.Count(diff.Modified),
			)

			if summary {
				fmt.Fprint(cmd.OutOrStdout(), diff.FormatSummary(r))
			} else {
				fmt.Fprint(cmd.OutOrStdout(), diff.FormatLines(r))
			}
			if exitCode && !r.Empty() {
				return errExportsDiffer
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&summary, "summary", false, "print one line per changed declaration")
	cmd.Flags().BoolVar(&exitCode, "exit-code", false, "fail when the exports differ")
	return cmd
}
