package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/odvcencio/leancheck/pkg/config"
	"github.com/odvcencio/leancheck/pkg/env"
	"github.com/odvcencio/leancheck/pkg/export"
)

type rootOptions struct {
	configPath      string
	quiet           bool
	showBinderStack bool
	logLevel        string
}

// resolve loads the config file and lets explicitly set flags win.
func (o *rootOptions) resolve(cmd *cobra.Command) (*config.Config, error) {
	path := o.configPath
	if path == "" {
		path = config.DefaultPath
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("quiet") && o.quiet {
		cfg.Trace.Enabled = false
	}
	if flags.Changed("show-binder-stack") {
		cfg.Printer.ShowBinderStack = o.showBinderStack
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = o.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(level string, w io.Writer) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		lvl = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// session is one decoded export plus the settings it was decoded with.
type session struct {
	cfg *config.Config
	log *slog.Logger
	env *env.Env
	dec *export.Decoder
}

func newSession(cmd *cobra.Command, opts *rootOptions) (*session, error) {
	cfg, err := opts.resolve(cmd)
	if err != nil {
		return nil, err
	}
	log := newLogger(cfg.Log.Level, cmd.ErrOrStderr())
	e := env.New(
		env.WithNameCache(cfg.Cache.NameEntries),
		env.WithBinderStack(cfg.Printer.ShowBinderStack),
	)
	return &session{
		cfg: cfg,
		log: log,
		env: e,
		dec: export.NewDecoder(e, export.WithLogger(log)),
	}, nil
}

// openInput opens path, or standard input for "" and "-".
func openInput(cmd *cobra.Command, path string) (io.ReadCloser, string, error) {
	if path == "" || path == "-" {
		r, err := export.NewReader(cmd.InOrStdin())
		return r, "<stdin>", err
	}
	r, err := export.Open(path)
	return r, path, err
}

// decode runs the whole input through the session's decoder.
func (s *session) decode(cmd *cobra.Command, path string) error {
	r, label, err := openInput(cmd, path)
	if err != nil {
		return err
	}
	defer r.Close()

	start := time.Now()
	if err := s.dec.Decode(r); err != nil {
		return err
	}
	stats := s.env.Stats()
	s.log.Info("decoded export",
		"input", label,
		"lines", s.dec.Lines(),
		"names", stats.Names,
		"levels", stats.Levels,
		"exprs", stats.Exprs,
		"decls", stats.Decls,
		"elapsed", time.Since(start),
	)
	return nil
}

func loadSession(cmd *cobra.Command, opts *rootOptions, path string) (*session, error) {
	s, err := newSession(cmd, opts)
	if err != nil {
		return nil, err
	}
	if err := s.decode(cmd, path); err != nil {
		return nil, err
	}
	return s, nil
}

func runCheck(cmd *cobra.Command, opts *rootOptions, args []string) error {
	s, err := newSession(cmd, opts)
	if err != nil {
		return err
	}
	if s.cfg.Trace.Enabled {
		s.dec.Observe(newTracer(s.env, cmd.OutOrStdout(), s.cfg.TraceKinds(), s.log))
	}

	path := ""
	if len(args) == 1 {
		path = args[0]
	}
	if err := s.decode(cmd, path); err != nil {
		return err
	}

	stats := s.env.Stats()
	fmt.Fprintf(cmd.OutOrStdout(), "ok: %d line(s), %d name(s), %d level(s), %d expr(s), %d declaration(s)\n",
		s.dec.Lines(), stats.Names, stats.Levels, stats.Exprs, stats.Decls)
	return nil
}

// isTerminal reports whether r is an interactive character device.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}
