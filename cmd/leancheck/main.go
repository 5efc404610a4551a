package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

const usage = "Usage: leancheck <export file path>"

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "leancheck [export-file]",
		Short:         "Decode and print a Lean export file",
		Long:          "Decode an export file (or standard input) into a term arena, validating every reference, and print what was inserted.",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				fmt.Fprintln(cmd.OutOrStdout(), usage)
				return nil
			}
			return runCheck(cmd, opts, args)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default ./leancheck.toml when present)")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "do not trace inserted entities")
	flags.BoolVar(&opts.showBinderStack, "show-binder-stack", false, "append the enclosing binder names after each binder")
	flags.StringVar(&opts.logLevel, "log-level", "", "diagnostic log level (debug, info, warn, error)")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newShowCmd(opts))
	root.AddCommand(newInspectCmd(opts))
	root.AddCommand(newDigestCmd(opts))
	root.AddCommand(newDiffCmd(opts))

	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "leancheck 0.1.0-dev")
		},
	}
}
