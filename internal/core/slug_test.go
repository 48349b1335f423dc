package core

import (
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello, World!", "hello-world"},
		{"  Café Crème  ", "cafe-creme"},
		{"2024 Annual Report", "2024-annual-report"},
		{"Back-to-School   Drive", "back-to-school-drive"},
		{"Niño's Fund", "nino-s-fund"},
		{"---", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSlugify_MaxLength(t *testing.T) {
	got := Slugify(strings.Repeat("a", 100))
	if len(got) != MaxSlugLength {
		t.Errorf("len = %d, want %d", len(got), MaxSlugLength)
	}

	got = Slugify(strings.Repeat("abc ", 30))
	if len(got) > MaxSlugLength {
		t.Errorf("len = %d, want <= %d", len(got), MaxSlugLength)
	}
	if strings.HasSuffix(got, "-") {
		t.Errorf("slug %q ends with a dash", got)
	}
}
