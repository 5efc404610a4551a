// Package config loads leancheck settings from an optional TOML file and
// LEANCHECK_* environment variables (a .env file in the working directory
// is honored).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/odvcencio/leancheck/pkg/term"
)

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = "leancheck.toml"

// Config holds every setting.
type Config struct {
	Trace   TraceConfig   `toml:"trace"`
	Printer PrinterConfig `toml:"printer"`
	Cache   CacheConfig   `toml:"cache"`
	Log     LogConfig     `toml:"log"`
}

// TraceConfig controls the per-insert trace printed while decoding.
type TraceConfig struct {
	Enabled bool     `toml:"enabled"`
	Kinds   []string `toml:"kinds"`
}

type PrinterConfig struct {
	ShowBinderStack bool `toml:"show_binder_stack"`
}

type CacheConfig struct {
	NameEntries int `toml:"name_entries"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	return &Config{
		Trace: TraceConfig{
			Enabled: true,
			Kinds:   []string{"name", "level", "expr", "decl"},
		},
		Cache: CacheConfig{NameEntries: 4096},
		Log:   LogConfig{Level: "warn"},
	}
}

// Load reads path over the defaults, then applies environment overrides.
// Only an absent DefaultPath falls back to the defaults; any other path must
// exist.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist) && path == DefaultPath:
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if _, err := toml.Decode(string(data), cfg); err != nil {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	_ = godotenv.Load()
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}
	if v, ok := get("LEANCHECK_TRACE"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("LEANCHECK_TRACE: %w", err)
		}
		c.Trace.Enabled = b
	}
	if v, ok := get("LEANCHECK_TRACE_KINDS"); ok {
		c.Trace.Kinds = splitList(v)
	}
	if v, ok := get("LEANCHECK_SHOW_BINDER_STACK"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("LEANCHECK_SHOW_BINDER_STACK: %w", err)
		}
		c.Printer.ShowBinderStack = b
	}
	if v, ok := get("LEANCHECK_NAME_CACHE"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("LEANCHECK_NAME_CACHE: %w", err)
		}
		c.Cache.NameEntries = n
	}
	if v, ok := get("LEANCHECK_LOG_LEVEL"); ok {
		c.Log.Level = v
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate rejects unknown trace kinds and log levels.
func (c *Config) Validate() error {
	for _, k := range c.Trace.Kinds {
		if _, ok := term.ParseKind(k); !ok {
			return fmt.Errorf("config: unknown trace kind %q (want name, level, expr or decl)", k)
		}
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log level %q", c.Log.Level)
	}
	return nil
}

// TraceKinds returns the kinds selected for tracing as a set.
func (c *Config) TraceKinds() map[term.Kind]bool {
	out := make(map[term.Kind]bool, len(c.Trace.Kinds))
	for _, k := range c.Trace.Kinds {
		if kind, ok := term.ParseKind(k); ok {
			out[kind] = true
		}
	}
	return out
}
