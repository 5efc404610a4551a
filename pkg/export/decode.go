// Package export decodes the line-oriented export format into a term arena.
//
// Each line is one command. A line whose first field is an unsigned integer
// creates a name, level or expression at that index:
//
//	<idx> #NS <parent> <text>
//	<idx> #EL <info> <name> <domain> <body>
//
// Any other line is a top-level declaration:
//
//	#DEF <name> <type> <value> <param>*
//	#IND <nparams> <name> <type> <nctors> (<ctor> <type>){nctors} <param>*
//
// Decoding is a single forward pass; the first bad line stops it.
package export

import (
	"bufio"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/odvcencio/leancheck/pkg/env"
	"github.com/odvcencio/leancheck/pkg/term"
)

// Observer is notified of every entity a Decoder inserts, after the insert
// succeeded.
type Observer interface {
	Inserted(ref term.Ref)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ref term.Ref)

func (f ObserverFunc) Inserted(ref term.Ref) { f(ref) }

// Decoder feeds export lines into an Env.
type Decoder struct {
	env       *env.Env
	observers []Observer
	log       *slog.Logger
	lines     int
}

// DecoderOption configures a Decoder.
type DecoderOption func(*Decoder)

// WithLogger sets the logger used for decode diagnostics.
func WithLogger(l *slog.Logger) DecoderOption {
	return func(d *Decoder) {
		if l != nil {
			d.log = l
		}
	}
}

// NewDecoder returns a Decoder that inserts into e.
func NewDecoder(e *env.Env, opts ...DecoderOption) *Decoder {
	d := &Decoder{env: e, log: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Env returns the arena being populated.
func (d *Decoder) Env() *env.Env { return d.env }

// Lines returns the number of lines decoded successfully so far.
func (d *Decoder) Lines() int { return d.lines }

// Observe subscribes o to inserted entities.
func (d *Decoder) Observe(o Observer) {
	d.observers = append(d.observers, o)
}

// Decode reads r to the end, decoding one command per line. The returned
// error is a *LineError carrying the 1-based number of the failing line.
func (d *Decoder) Decode(r io.Reader) error {
	br := bufio.NewReader(r)
	lineNo := 0
	for {
		line, readErr := br.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return &LineError{Line: lineNo + 1, Err: &IOError{Err: readErr}}
		}
		if readErr == io.EOF && line == "" {
			break
		}
		lineNo++
		line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")

		if _, err := d.DecodeLine(line); err != nil {
			d.log.Debug("decode stopped", "line", lineNo, "err", err)
			return &LineError{Line: lineNo, Err: err}
		}
		if readErr == io.EOF {
			break
		}
	}
	d.log.Debug("decode finished", "lines", lineNo)
	return nil
}

// DecodeLine decodes and applies a single command. On error the arena is
// unchanged.
func (d *Decoder) DecodeLine(line string) (term.Ref, error) {
	s := newScanner(line)
	first, ok := s.next()
	if !ok {
		return term.Ref{}, expecting("index or command")
	}

	var (
		ref term.Ref
		err error
	)
	if idx, perr := strconv.ParseUint(first, 10, 64); perr == nil {
		ref, err = d.decodeIndexed(idx, s)
	} else {
		ref, err = d.decodeToplevel(first, s)
	}
	if err != nil {
		return term.Ref{}, err
	}

	d.lines++
	for _, o := range d.observers {
		o.Inserted(ref)
	}
	return ref, nil
}

func (d *Decoder) decodeIndexed(idx uint64, s *scanner) (term.Ref, error) {
	tok, ok := s.next()
	if !ok {
		return term.Ref{}, expecting("index command")
	}
	tag, ok := lookupTag(tok, true)
	if !ok {
		return term.Ref{}, unknownTag("unknown index command "+tok, tok, true)
	}
	h := indexedHandlers[tag]
	if h == nil {
		return term.Ref{}, &UnsupportedError{Tag: tag}
	}
	return h(d, idx, s)
}

func (d *Decoder) decodeToplevel(tok string, s *scanner) (term.Ref, error) {
	tag, ok := lookupTag(tok, false)
	if !ok {
		return term.Ref{}, unknownTag("unknown command "+tok, tok, false)
	}
	h := toplevelHandlers[tag]
	if h == nil {
		return term.Ref{}, &UnsupportedError{Tag: tag}
	}
	return h(d, s)
}

func unknownTag(msg, tok string, indexed bool) error {
	tags := Tags(indexed)
	candidates := make([]string, len(tags))
	for i, t := range tags {
		candidates[i] = t.String()
	}
	return &GrammarError{Msg: msg, Suggestion: Closest(tok, candidates)}
}

// IsInputError reports whether err describes malformed input rather than a
// failure to read it.
func IsInputError(err error) bool {
	return errors.Is(err, ErrGrammar) || errors.Is(err, ErrUnsupported) || errors.Is(err, env.ErrIntegrity)
}
