package textutil

import "testing"

func TestSingleLine(t *testing.T) {
	if got := SingleLine("  a\n b\t c  "); got != "a b c" {
		t.Fatalf("SingleLine() = %q", got)
	}
	if got := SingleLine(""); got != "" {
		t.Fatalf("SingleLine(\"\") = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  string
	}{
		{text: "short", width: 10, want: "short"},
		{text: "a longer title", width: 8, want: "a lon..."},
		{text: "anything", width: 0, want: ""},
	}
	for _, tt := range tests {
		if got := Truncate(tt.text, tt.width); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
		}
	}
}
