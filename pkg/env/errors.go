package env

import (
	"errors"
	"fmt"

	"github.com/odvcencio/leancheck/pkg/term"
)

var (
	// ErrIntegrity matches every IntegrityError.
	ErrIntegrity = errors.New("integrity violation")
	// ErrNotFound matches every NotFoundError.
	ErrNotFound = errors.New("not found")
)

// Violation classifies an IntegrityError.
type Violation int

const (
	// Duplicate means the target index (or declared name) is already taken.
	Duplicate Violation = iota
	// MissingRef means an embedded reference points to an absent index.
	MissingRef
	// Reserved means the target index is the format's sentinel.
	Reserved
)

// IntegrityError reports a rejected insertion. Table and Index identify the
// entity being inserted; Ref and RefIndex identify the offending reference
// when Violation is MissingRef.
type IntegrityError struct {
	Violation Violation
	Table     term.Kind
	Index     uint64
	Ref       term.Kind
	RefIndex  uint64
}

func (e *IntegrityError) Error() string {
	switch e.Violation {
	case Duplicate:
		if e.Table == term.KindDecl {
			return fmt.Sprintf("decl for name %d: already declared", e.Index)
		}
		return fmt.Sprintf("%s %d: already defined", e.Table, e.Index)
	case Reserved:
		return fmt.Sprintf("%s %d: index is reserved", e.Table, e.Index)
	default:
		return fmt.Sprintf("%s %d: references missing %s %d", e.Table, e.Index, e.Ref, e.RefIndex)
	}
}

func (e *IntegrityError) Is(target error) bool { return target == ErrIntegrity }

// NotFoundError reports a lookup of an absent index.
type NotFoundError struct {
	Table term.Kind
	Index uint64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Table, e.Index)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }
