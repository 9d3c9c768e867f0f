package ai

import "testing"

func TestGroqCompatSupported(t *testing.T) {
	cases := []struct {
		version string
		want    bool
	}{
		{"0.27.0", true},
		{"0.27.9", true},
		{"0.1.0", true},
		{"0", true},
		{"0.28.0", false},
		{"0.29.1", false},
		{"0.30.0", false},
		{"1.0.0", false},
		{"2.1.3", false},
		{"", false},
		{"banana", false},
		{"0.x", false},
	}

	for _, c := range cases {
		if got := groqCompatSupported(c.version); got != c.want {
			t.Fatalf("groqCompatSupported(%q) = %v, want %v", c.version, got, c.want)
		}
	}
}
