package term

import "testing"

func TestSegmentString(t *testing.T) {
	if got := Str("nat").String(); got != "nat" {
		t.Errorf("Str = %q", got)
	}
	if got := Num(42).String(); got != "42" {
		t.Errorf("Num = %q", got)
	}
	if Under(3) == Root || Root.Valid {
		t.Error("Under and Root must differ")
	}
}

func TestBinderDelims(t *testing.T) {
	tests := []struct {
		info        BinderInfo
		open, close string
	}{
		{BinderDefault, "(", ")"},
		{BinderImplicit, "{", "}"},
		{BinderStrictImplicit, "{{", "}}"},
		{BinderInstImplicit, "[", "]"},
	}
	for _, tc := range tests {
		open, close := tc.info.Delims()
		if open != tc.open || close != tc.close {
			t.Errorf("%s: got %s %s, want %s %s", tc.info, open, close, tc.open, tc.close)
		}
	}
}

func TestKindRoundTrip(t *testing.T) {
	for _, k := range []Kind{KindName, KindLevel, KindExpr, KindDecl} {
		got, ok := ParseKind(k.String())
		if !ok || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", k.String(), got, ok)
		}
	}
	if _, ok := ParseKind("universe"); ok {
		t.Error("ParseKind accepted an unknown table")
	}
	if got := Kind(9).String(); got != "kind(9)" {
		t.Errorf("Kind(9) = %q", got)
	}
}
