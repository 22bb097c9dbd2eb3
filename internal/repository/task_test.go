package repository

import "testing"

func TestLikePattern(t *testing.T) {
	tests := []struct {
		name   string
		search string
		want   string
	}{
		{"plain text", "report", "%report%"},
		{"percent", "50% complete", `%50\% complete%`},
		{"underscore", "snake_case", `%snake\_case%`},
		{"backslash", `path\to`, `%path\\to%`},
		{"mixed", `a_b%c\d`, `%a\_b\%c\\d%`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := likePattern(tt.search); got != tt.want {
				t.Errorf("likePattern(%q) = %q, want %q", tt.search, got, tt.want)
			}
		})
	}
}
