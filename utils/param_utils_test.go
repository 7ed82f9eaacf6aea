package utils

import "testing"

func TestParseBoundedInt(t *testing.T) {
	cases := []struct {
		in   string
		def  int
		min  int
		max  int
		want int
	}{
		{"", 10, 1, 100, 10},
		{"25", 10, 1, 100, 25},
		{"0", 10, 1, 100, 1},
		{"-3", 7, 1, 365, 1},
		{"9999", 10, 1, 100, 100},
		{"abc", 7, 1, 365, 7},
		{"7", 7, 1, 365, 7},
	}

	for _, c := range cases {
		got := ParseBoundedInt(c.in, c.def, c.min, c.max)
		if got != c.want {
			t.Fatalf("ParseBoundedInt(%q, %d, %d, %d) = %d; want %d", c.in, c.def, c.min, c.max, got, c.want)
		}
	}
}
