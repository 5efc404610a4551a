package env

import (
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// Digest is a 64-character hex-encoded BLAKE2b-256 sum.
type Digest string

// Digest fingerprints the arena by hashing every declaration's rendering in
// insertion order, each followed by a NUL byte. Two exports that declare
// the same things in the same order digest identically regardless of how
// their indices were assigned. The binder-stack trace is never included.
func (e *Env) Digest() (Digest, error) {
	h, err := blake2b.New256(nil)
	if err != nil {
		return "", fmt.Errorf("digest: %w", err)
	}
	for _, name := range e.declOrder {
		s, err := e.renderDecl(name, false)
		if err != nil {
			return "", fmt.Errorf("digest: %w", err)
		}
		h.Write([]byte(s))
		h.Write([]byte{0})
	}
	return Digest(hex.EncodeToString(h.Sum(nil))), nil
}
