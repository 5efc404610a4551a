package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/odvcencio/leancheck/pkg/env"
)

func newDigestCmd(opts *rootOptions) *cobra.Command {
	var expect string

	cmd := &cobra.Command{
		Use:   "digest [export-file]",
		Short: "Print a fingerprint of the declarations in an export",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			s, err := loadSession(cmd, opts, path)
			if err != nil {
				return err
			}
			d, err := s.env.Digest()
			if err != nil {
				return err
			}

			want := env.Digest(strings.ToLower(strings.TrimSpace(expect)))
			if want != "" && want != d {
				return fmt.Errorf("digest mismatch: got %s, want %s", d, want)
			}

			label := path
			if label == "" {
				label = "-"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", d, label)
			return nil
		},
	}

	cmd.Flags().StringVar(&expect, "expect", "", "fail unless the digest equals this hex value")
	return cmd
}
