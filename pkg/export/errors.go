package export

import (
	"errors"
	"fmt"
)

var (
	// ErrGrammar matches every GrammarError.
	ErrGrammar = errors.New("grammar error")
	// ErrUnsupported matches every UnsupportedError.
	ErrUnsupported = errors.New("unsupported feature")
	// ErrIO matches every IOError.
	ErrIO = errors.New("read error")
)

// GrammarError reports a line that does not follow its command's grammar.
type GrammarError struct {
	Msg string
	// Suggestion names a close tag when the command was not recognized.
	Suggestion string
}

func (e *GrammarError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%s (did you mean %s?)", e.Msg, e.Suggestion)
	}
	return e.Msg
}

func (e *GrammarError) Is(target error) bool { return target == ErrGrammar }

func expecting(what string) error {
	return &GrammarError{Msg: "expecting " + what}
}

// UnsupportedError reports a tag that belongs to the format but is not
// implemented.
type UnsupportedError struct {
	Tag Tag
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("unsupported command %s (%s)", e.Tag, e.Tag.Description())
}

func (e *UnsupportedError) Is(target error) bool { return target == ErrUnsupported }

// IOError wraps a failure of the underlying reader.
type IOError struct {
	Err error
}

func (e *IOError) Error() string { return e.Err.Error() }

func (e *IOError) Unwrap() error { return e.Err }

func (e *IOError) Is(target error) bool { return target == ErrIO }

// LineError attaches the 1-based input line number to the error that
// stopped decoding.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("parse error at line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }
