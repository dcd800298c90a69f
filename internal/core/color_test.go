package core

import "testing"

func TestColorANSI(t *testing.T) {
	tests := []struct {
		c        Color
		expected string
	}{
		{ColorDefault, ""},
		{ColorRed, "1"},
		{ColorBrightRed, "9"},
		{ColorBrown, "130"},
		{ColorGray, "245"},
		{Color(200), ""},
	}

	for _, tt := range tests {
		if got := tt.c.ANSI(); got != tt.expected {
			t.Errorf("Color(%d).ANSI() = %q, expected %q", tt.c, got, tt.expected)
		}
	}
}

func TestEveryColorHasCode(t *testing.T) {
	for c := ColorRed; c < numColors; c++ {
		if c.ANSI() == "" {
			t.Errorf("Color(%d).ANSI() is empty", c)
		}
	}
}
