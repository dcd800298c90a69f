// Package formats provides pluggable level file format parsers.
package formats

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Level is a parsed level file before validation.
type Level struct {
	ID         string
	Name       string
	TileWidth  int
	TileHeight int
	TimeLimit  int // seconds, 0 uses the game default
	Rows       []string
	Metadata   map[string]string
}

// YAMLLevel represents the YAML structure for a level file.
// Rows are written as a literal block, one line per tile row.
type YAMLLevel struct {
	ID        string            `yaml:"id"`
	Name      string            `yaml:"name"`
	Tile      YAMLTile          `yaml:"tile,omitempty"`
	TimeLimit int               `yaml:"time_limit,omitempty"`
	Map       string            `yaml:"map"`
	Metadata  map[string]string `yaml:"metadata,omitempty"`
}

// YAMLTile represents tile dimensions in world units.
type YAMLTile struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	return Level{
		ID:         yl.ID,
		Name:       yl.Name,
		TileWidth:  yl.Tile.W,
		TileHeight: yl.Tile.H,
		TimeLimit:  yl.TimeLimit,
		Rows:       SplitRows(yl.Map),
		Metadata:   yl.Metadata,
	}, nil
}

// SplitRows splits a map block into rows, dropping the trailing newline a
// block scalar leaves behind and any carriage returns.
func SplitRows(block string) []string {
	block = strings.ReplaceAll(block, "\r", "")
	block = strings.TrimRight(block, "\n")
	if block == "" {
		return nil
	}
	return strings.Split(block, "\n")
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml", ".toml"}
}

// Parse routes data to the parser for ext.
func Parse(data []byte, ext string) (Level, error) {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".toml":
		return ParseTOML(data)
	default:
		return Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
