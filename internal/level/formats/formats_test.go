package formats

import (
	"strings"
	"testing"
)

func TestSplitRows(t *testing.T) {
	tests := []struct {
		in       string
		expected []string
	}{
		{"", nil},
		{"ab\ncd\n", []string{"ab", "cd"}},
		{"ab\r\ncd", []string{"ab", "cd"}},
		{"ab\n\n", []string{"ab"}},
	}

	for _, tt := range tests {
		got := SplitRows(tt.in)
		if strings.Join(got, "|") != strings.Join(tt.expected, "|") || len(got) != len(tt.expected) {
			t.Errorf("SplitRows(%q) = %q, expected %q", tt.in, got, tt.expected)
		}
	}
}

func TestParseYAML(t *testing.T) {
	data := []byte("id: a\nname: A\ntile:\n  w: 16\n  h: 8\nmap: |\n  S.\n  ##\n")
	lvl, err := ParseYAML(data)
	if err != nil {
		t.Fatalf("ParseYAML() error = %v", err)
	}
	if lvl.ID != "a" || lvl.TileWidth != 16 || lvl.TileHeight != 8 {
		t.Errorf("ParseYAML() = %+v", lvl)
	}
	if len(lvl.Rows) != 2 || lvl.Rows[0] != "S." {
		t.Errorf("Rows = %q, expected [S. ##]", lvl.Rows)
	}
}

func TestParseTOMLRejectsUnknownKeys(t *testing.T) {
	data := []byte("id = \"a\"\nmapp = \"S.\"\n")
	if _, err := ParseTOML(data); err == nil {
		t.Error("ParseTOML() should reject an unknown key")
	}
}

func TestParseUnsupportedExtension(t *testing.T) {
	if _, err := Parse([]byte("{}"), ".json"); err == nil {
		t.Error("Parse() should reject .json")
	}
	if _, err := Parse([]byte("id = \"x\"\n"), ".TOML"); err != nil {
		t.Errorf("Parse() with upper-case extension error = %v", err)
	}
}
