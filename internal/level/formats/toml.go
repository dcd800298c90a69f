package formats

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// TOMLLevel represents the TOML structure for a level file.
//
//	id = "03-caves"
//	name = "Caves"
//	time_limit = 200
//	map = '''
//	....
//	'''
//
//	[tile]
//	w = 32
//	h = 32
type TOMLLevel struct {
	ID        string            `toml:"id"`
	Name      string            `toml:"name"`
	Tile      TOMLTile          `toml:"tile"`
	TimeLimit int               `toml:"time_limit"`
	Map       string            `toml:"map"`
	Metadata  map[string]string `toml:"metadata"`
}

// TOMLTile represents tile dimensions in world units.
type TOMLTile struct {
	W int `toml:"w"`
	H int `toml:"h"`
}

// ParseTOML parses a TOML level file. Unknown keys are rejected so typos in
// hand-written levels surface as errors.
func ParseTOML(data []byte) (Level, error) {
	var tl TOMLLevel
	md, err := toml.Decode(string(data), &tl)
	if err != nil {
		return Level{}, fmt.Errorf("toml decode: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Level{}, fmt.Errorf("toml decode: unknown key %q", undecoded[0].String())
	}

	return Level{
		ID:         tl.ID,
		Name:       tl.Name,
		TileWidth:  tl.Tile.W,
		TileHeight: tl.Tile.H,
		TimeLimit:  tl.TimeLimit,
		Rows:       SplitRows(tl.Map),
		Metadata:   tl.Metadata,
	}, nil
}
