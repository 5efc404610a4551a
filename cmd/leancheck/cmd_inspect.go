package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/odvcencio/leancheck/pkg/env"
	"github.com/odvcencio/leancheck/pkg/export"
	"github.com/odvcencio/leancheck/pkg/term"
)

const (
	inspectPrompt  = "leancheck> "
	inspectHistory = ".leancheck_history"
)

var errInspectStdin = errors.New("inspect: export must be a file; standard input carries the queries")

var inspectCommands = []string{"name", "level", "expr", "decl", "find", "decls", "stats", "help", ":quit"}

func newInspectCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <export-file>",
		Short: "Decode an export and query it interactively",
		Long:  "Decode an export file and answer queries about it. Queries are read from standard input, one per line, or from a prompt when standard input is a terminal.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == "-" {
				return errInspectStdin
			}
			s, err := loadSession(cmd, opts, args[0])
			if err != nil {
				return err
			}
			ins := &inspector{env: s.env, out: cmd.OutOrStdout()}

			in := cmd.InOrStdin()
			if !isTerminal(in) {
				return ins.runScript(in)
			}
			return ins.runInteractive()
		},
	}
}

// inspector answers queries against a decoded arena.
type inspector struct {
	env *env.Env
	out io.Writer
}

// runScript executes one query per line of r, for piped input.
func (ins *inspector) runScript(r io.Reader) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if ins.exec(sc.Text()) {
			return nil
		}
	}
	return sc.Err()
}

func (ins *inspector) runInteractive() error {
	stats := ins.env.Stats()
	fmt.Fprintf(ins.out, "%d name(s), %d level(s), %d expr(s), %d declaration(s). Type help for commands.\n",
		stats.Names, stats.Levels, stats.Exprs, stats.Decls)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, inspectHistory)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetCompleter(func(line string) []string {
		var out []string
		for _, c := range inspectCommands {
			if strings.HasPrefix(c, line) {
				out = append(out, c)
			}
		}
		return out
	})

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	for {
		line, err := ln.Prompt(inspectPrompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Fprintln(ins.out)
			return nil
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(line) != "" {
			ln.AppendHistory(line)
		}
		if ins.exec(line) {
			return nil
		}
	}
}

// exec runs one query and reports whether the session should end.
func (ins *inspector) exec(line string) (quit bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case ":quit", ":q", "quit", "exit":
		return true
	case "help":
		fmt.Fprintln(ins.out, "name|level|expr|decl <index>   render an entity")
		fmt.Fprintln(ins.out, "name|decl <dotted.name>         render by name")
		fmt.Fprintln(ins.out, "find <dotted.name>              print the index of a name")
		fmt.Fprintln(ins.out, "decls                           list declarations")
		fmt.Fprintln(ins.out, "stats                           count entities")
		fmt.Fprintln(ins.out, ":quit                           leave")
	case "stats":
		s := ins.env.Stats()
		fmt.Fprintf(ins.out, "names=%d levels=%d exprs=%d decls=%d\n", s.Names, s.Levels, s.Exprs, s.Decls)
	case "decls":
		for _, n := range ins.env.Decls() {
			name, err := ins.env.RenderName(n)
			if err != nil {
				fmt.Fprintf(ins.out, "error: %v\n", err)
				continue
			}
			fmt.Fprintf(ins.out, "%d %s\n", n, name)
		}
	case "find":
		if len(args) != 1 {
			fmt.Fprintln(ins.out, "usage: find <dotted.name>")
			return false
		}
		idx, ok := ins.env.FindName(args[0])
		if !ok {
			fmt.Fprintf(ins.out, "no name %q\n", args[0])
			return false
		}
		fmt.Fprintln(ins.out, idx)
	default:
		kind, ok := term.ParseKind(cmd)
		if !ok {
			msg := fmt.Sprintf("unknown command %q", cmd)
			if s := export.Closest(cmd, inspectCommands); s != "" {
				msg += fmt.Sprintf(" (did you mean %s?)", s)
			}
			fmt.Fprintln(ins.out, msg)
			return false
		}
		if len(args) != 1 {
			fmt.Fprintf(ins.out, "usage: %s <index>\n", cmd)
			return false
		}
		ref, err := resolveRef(ins.env, kind, args[0])
		if err != nil {
			fmt.Fprintf(ins.out, "error: %v\n", err)
			return false
		}
		s, err := ins.env.Render(ref)
		if err != nil {
			fmt.Fprintf(ins.out, "error: %v\n", err)
			return false
		}
		fmt.Fprintln(ins.out, s)
	}
	return false
}
