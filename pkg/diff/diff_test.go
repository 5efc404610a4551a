package diff

import (
	"strings"
	"testing"

	"github.com/odvcencio/leancheck/pkg/env"
	"github.com/odvcencio/leancheck/pkg/export"
)

const beforeExport = `1 #NS 0 x
2 #NS 0 id
3 #NS 0 k
4 #NS 0 gone
0 #ES 0
1 #EV 0
2 #EL #BD 1 0 1
#DEF 2 0 2
#DEF 3 0 0
#DEF 4 0 0
`

// afterExport renumbers everything, keeps id, changes k's value, drops gone
// and adds fresh.
const afterExport = `1 #NS 0 k
2 #NS 0 x
3 #NS 0 id
4 #NS 0 fresh
0 #EV 0
1 #ES 0
2 #EL #BD 2 1 0
#DEF 1 1 2
#DEF 3 1 2
#DEF 4 1 1
`

func decode(t *testing.T, src string) *env.Env {
	t.Helper()
	e := env.New()
	if err := export.NewDecoder(e).Decode(strings.NewReader(src)); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return e
}

func TestEnvs_Changes(t *testing.T) {
	r, err := Envs(decode(t, beforeExport), decode(t, afterExport))
	if err != nil {
		t.Fatalf("Envs: %v", err)
	}

	want := []struct {
		typ  ChangeType
		name string
	}{
		{Modified, "k"},
		{Removed, "gone"},
		{Added, "fresh"},
	}
	if len(r.Changes) != len(want) {
		t.Fatalf("got %d changes, want %d: %+v", len(r.Changes), len(want), r.Changes)
	}
	for i, w := range want {
		c := r.Changes[i]
		if c.Type != w.typ || c.Name != w.name {
			t.Errorf("change[%d] = %s %s, want %s %s", i, c.Type, c.Name, w.typ, w.name)
		}
	}
	if r.Count(Modified) != 1 || r.Count(Added) != 1 || r.Count(Removed) != 1 {
		t.Errorf("counts = %d/%d/%d", r.Count(Added), r.Count(Removed), r.Count(Modified))
	}
	if r.Changes[1].After != "" || r.Changes[2].Before != "" {
		t.Errorf("one-sided changes carry the other side: %+v", r.Changes)
	}
}

func TestEnvs_IndexAssignmentIgnored(t *testing.T) {
	renumbered := `1 #NS 0 id
2 #NS 0 x
0 #EV 0
1 #ES 0
2 #EL #BD 2 1 0
#DEF 1 1 2
`
	original := `1 #NS 0 x
2 #NS 0 id
0 #ES 0
1 #EV 0
2 #EL #BD 1 0 1
#DEF 2 0 2
`
	r, err := Envs(decode(t, original), decode(t, renumbered))
	if err != nil {
		t.Fatalf("Envs: %v", err)
	}
	if !r.Empty() {
		t.Fatalf("expected no changes, got %+v", r.Changes)
	}
}

func TestFormatSummary(t *testing.T) {
	r, err := Envs(decode(t, beforeExport), decode(t, afterExport))
	if err != nil {
		t.Fatalf("Envs: %v", err)
	}
	want := "~ k     (modified)\n- gone     (removed)\n+ fresh     (added)\n"
	if got := FormatSummary(r); got != want {
		t.Errorf("FormatSummary:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatLines(t *testing.T) {
	r, err := Envs(decode(t, beforeExport), decode(t, afterExport))
	if err != nil {
		t.Fatalf("Envs: %v", err)
	}
	want := strings.Join([]string{
		"--- a/k",
		"+++ b/k",
		"-definition k Sort 0 := Sort 0",
		"+definition k Sort 0 := (x : Sort 0), x",
		"--- a/gone",
		"-definition gone Sort 0 := Sort 0",
		"+++ b/fresh",
		"+definition fresh Sort 0 := Sort 0",
	}, "\n") + "\n"
	if got := FormatLines(r); got != want {
		t.Errorf("FormatLines:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatEmpty(t *testing.T) {
	r := &Result{}
	if FormatSummary(r) != "" || FormatLines(r) != "" {
		t.Error("empty result should format to nothing")
	}
}

func TestLines_Basic(t *testing.T) {
	ops := Lines("a\nb\nc\n", "a\nx\nc\n")
	wantTypes := []LineType{Equal, Delete, Insert, Equal}
	wantLines := []string{"a", "b", "x", "c"}
	if len(ops) != len(wantTypes) {
		t.Fatalf("got %d ops, want %d: %v", len(ops), len(wantTypes), ops)
	}
	for i, op := range ops {
		if op.Type != wantTypes[i] || op.Content != wantLines[i] {
			t.Errorf("op[%d] = {%v, %q}, want {%v, %q}", i, op.Type, op.Content, wantTypes[i], wantLines[i])
		}
	}
}

func TestLines_InductiveCtorAdded(t *testing.T) {
	before := "inductive nat Sort 1\n| nat.zero : nat\n| nat.succ : (n : nat), nat"
	after := "inductive nat Sort 1\n| nat.zero : nat\n| nat.one : nat\n| nat.succ : (n : nat), nat"
	ops := Lines(before, after)
	wantTypes := []LineType{Equal, Equal, Insert, Equal}
	if len(ops) != len(wantTypes) {
		t.Fatalf("got %d ops, want %d: %v", len(ops), len(wantTypes), ops)
	}
	for i, op := range ops {
		if op.Type != wantTypes[i] {
			t.Errorf("op[%d] = %v %q, want type %v", i, op.Type, op.Content, wantTypes[i])
		}
	}
	if ops[2].Content != "| nat.one : nat" {
		t.Errorf("inserted line = %q", ops[2].Content)
	}
}

func TestLines_OneSided(t *testing.T) {
	for _, op := range Lines("", "a\nb") {
		if op.Type != Insert {
			t.Errorf("expected Insert, got %v", op)
		}
	}
	ops := Lines("a\nb", "")
	if len(ops) != 2 {
		t.Fatalf("expected 2 ops, got %d", len(ops))
	}
	for _, op := range ops {
		if op.Type != Delete {
			t.Errorf("expected Delete, got %v", op)
		}
	}
	if Lines("", "") != nil {
		t.Error("empty inputs should produce no ops")
	}
}

func TestLines_Identical(t *testing.T) {
	for _, op := range Lines("same\ncontent", "same\ncontent") {
		if op.Type != Equal {
			t.Errorf("expected Equal, got %v", op)
		}
	}
}
