// Package level loads platformer levels from text-row map files and builds
// the tile grid the simulation runs on.
package level

import (
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/tilemap"
)

// Default tile size in world units when a level does not set one.
const (
	DefaultTileWidth  = 32
	DefaultTileHeight = 32
)

// Level represents a complete level definition.
type Level struct {
	ID         string
	Name       string
	TileWidth  int
	TileHeight int
	TimeLimit  int // seconds, 0 uses the game default
	Rows       []string
	Metadata   map[string]string
	FilePath   string
}

// ValidationError contains details about validation failure.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Width returns the number of tile columns.
func (l *Level) Width() int {
	if len(l.Rows) == 0 {
		return 0
	}
	return utf8.RuneCountInString(l.Rows[0])
}

// Height returns the number of tile rows.
func (l *Level) Height() int {
	return len(l.Rows)
}

// Validate checks the map shape, legend and spawn marker.
func (l *Level) Validate() error {
	if l.TileWidth <= 0 || l.TileHeight <= 0 {
		return ValidationError{
			Code:    "BAD_TILE_SIZE",
			Message: fmt.Sprintf("tile size %dx%d must be positive", l.TileWidth, l.TileHeight),
		}
	}

	if l.Height() == 0 || l.Width() == 0 {
		return ValidationError{Code: "EMPTY_LEVEL", Message: "level has no map rows"}
	}

	width := l.Width()
	spawns := 0
	for row, line := range l.Rows {
		if n := utf8.RuneCountInString(line); n != width {
			return ValidationError{
				Code:    "RAGGED_ROWS",
				Message: fmt.Sprintf("row %d has %d columns, expected %d", row, n, width),
			}
		}
		col := 0
		for _, r := range line {
			if _, ok := TileFor(r); !ok {
				return ValidationError{
					Code:    "UNKNOWN_TILE",
					Message: fmt.Sprintf("unknown map character %q at (%d, %d)", r, col, row),
				}
			}
			if r == SpawnRune {
				spawns++
			}
			col++
		}
	}

	if spawns != 1 {
		return ValidationError{
			Code:    "SPAWN_COUNT",
			Message: fmt.Sprintf("level needs exactly one spawn marker, found %d", spawns),
		}
	}

	return nil
}

// SpawnCell returns the column and row of the spawn marker.
func (l *Level) SpawnCell() (int, int, bool) {
	for row, line := range l.Rows {
		col := 0
		for _, r := range line {
			if r == SpawnRune {
				return col, row, true
			}
			col++
		}
	}
	return 0, 0, false
}

// SpawnRect returns where an actor of the given size starts: standing on the
// bottom of the spawn cell, centered horizontally.
func (l *Level) SpawnRect(actorW, actorH int) core.Rect {
	col, row, _ := l.SpawnCell()
	x := col*l.TileWidth + (l.TileWidth-actorW)/2
	y := (row+1)*l.TileHeight - actorH
	return core.NewRect(x, y, actorW, actorH)
}

// Build validates the level and returns a grid populated from the map and
// the actor's spawn rectangle. An actor that would start inside a solid
// tile is reported as SPAWN_BLOCKED.
func (l *Level) Build(actorW, actorH int) (*tilemap.Grid, core.Rect, error) {
	if err := l.Validate(); err != nil {
		return nil, core.Rect{}, err
	}

	g, err := tilemap.New(l.Width(), l.Height(), l.TileWidth, l.TileHeight, tilemap.Empty())
	if err != nil {
		return nil, core.Rect{}, err
	}

	for row, line := range l.Rows {
		col := 0
		for _, r := range line {
			t, _ := TileFor(r)
			if !t.IsEmpty() {
				if err := g.SetTile(col, row, t); err != nil {
					return nil, core.Rect{}, err
				}
			}
			col++
		}
	}

	spawn := l.SpawnRect(actorW, actorH)
	if g.AnySolid(spawn) {
		return nil, core.Rect{}, ValidationError{
			Code:    "SPAWN_BLOCKED",
			Message: fmt.Sprintf("a %dx%d actor at the spawn marker overlaps a solid tile", actorW, actorH),
		}
	}

	return g, spawn, nil
}

// CoinCount returns how many coins the map holds.
func (l *Level) CoinCount() int {
	n := 0
	for _, line := range l.Rows {
		for _, r := range line {
			if r == 'o' {
				n++
			}
		}
	}
	return n
}
