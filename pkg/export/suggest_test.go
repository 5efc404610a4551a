package export

import "testing"

func TestClosest(t *testing.T) {
	candidates := []string{"#DEF", "#IND", "#AX", "#QUOT", "#PREFIX", "#POSTFIX", "#INFIX"}
	tests := []struct {
		word string
		want string
	}{
		{"#DEFN", "#DEF"},
		{"#def", "#DEF"},
		{"#QUO", "#QUOT"},
		{"#ZZZZZZZZ", ""},
		{"", ""},
	}
	for _, tc := range tests {
		if got := Closest(tc.word, candidates); got != tc.want {
			t.Errorf("Closest(%q) = %q, want %q", tc.word, got, tc.want)
		}
	}
}
