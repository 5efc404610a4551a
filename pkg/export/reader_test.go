package export

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"

	"github.com/odvcencio/leancheck/pkg/env"
)

func compress(t *testing.T, data []byte) []byte {
	t.Helper()
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatalf("zstd.NewWriter: %v", err)
	}
	defer enc.Close()
	return enc.EncodeAll(data, nil)
}

func TestNewReaderPlain(t *testing.T) {
	r, err := NewReader(strings.NewReader("1 #NS 0 foo\n"))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	defer r.Close()
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(got) != "1 #NS 0 foo\n" {
		t.Fatalf("got %q", got)
	}
}

func TestNewReaderShortInput(t *testing.T) {
	r, err := NewReader(strings.NewReader("1"))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	got, _ := io.ReadAll(r)
	if string(got) != "1" {
		t.Fatalf("got %q, want %q", got, "1")
	}
}

func TestNewReaderZstd(t *testing.T) {
	src := []byte(natExport)
	r, err := NewReader(bytes.NewReader(compress(t, src)))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	defer r.Close()

	d := NewDecoder(env.New())
	if err := d.Decode(r); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got := d.Env().Stats().Decls; got != 2 {
		t.Fatalf("decls = %d, want 2", got)
	}
}

func TestOpenCompressedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nat.export.zst")
	if err := os.WriteFile(path, compress(t, []byte(natExport)), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if string(got) != natExport {
		t.Fatalf("decompressed export mismatch")
	}
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "absent"))
	if err == nil {
		t.Fatal("expected error")
	}
	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("Open error %T is not *IOError", err)
	}
}
