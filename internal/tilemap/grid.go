package tilemap

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

var (
	// ErrInvalidDimensions is returned by New for non-positive sizes.
	ErrInvalidDimensions = errors.New("tilemap: grid and tile dimensions must be positive")
	// ErrOutOfRange is returned by SetTile for coordinates outside the grid.
	ErrOutOfRange = errors.New("tilemap: cell out of range")
)

// CellRange is an inclusive range of grid columns and rows.
type CellRange struct {
	MinCol, MaxCol int
	MinRow, MaxRow int
}

// Cols returns the number of columns in the range.
func (r CellRange) Cols() int {
	return r.MaxCol - r.MinCol + 1
}

// Rows returns the number of rows in the range.
func (r CellRange) Rows() int {
	return r.MaxRow - r.MinRow + 1
}

// Grid is the level's tile layer. Cells are stored in row-major order:
// index = row*width + col. The shape never changes after New.
type Grid struct {
	width      int
	height     int
	tileWidth  int
	tileHeight int
	tiles      []Tile
}

// New creates a width×height grid of tileWidth×tileHeight cells,
// every cell initialized to fill.
func New(width, height, tileWidth, tileHeight int, fill Tile) (*Grid, error) {
	if width <= 0 || height <= 0 || tileWidth <= 0 || tileHeight <= 0 {
		return nil, fmt.Errorf("%w: %dx%d cells of %dx%d", ErrInvalidDimensions, width, height, tileWidth, tileHeight)
	}

	tiles := make([]Tile, width*height)
	for i := range tiles {
		tiles[i] = fill
	}

	return &Grid{
		width:      width,
		height:     height,
		tileWidth:  tileWidth,
		tileHeight: tileHeight,
		tiles:      tiles,
	}, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// TileWidth returns the world width of one cell.
func (g *Grid) TileWidth() int { return g.tileWidth }

// TileHeight returns the world height of one cell.
func (g *Grid) TileHeight() int { return g.tileHeight }

// InBounds returns true if (col, row) addresses a cell of the grid.
func (g *Grid) InBounds(col, row int) bool {
	return col >= 0 && col < g.width && row >= 0 && row < g.height
}

// Tile returns the tile at (col, row). The second result is false when the
// coordinate lies outside the grid.
func (g *Grid) Tile(col, row int) (Tile, bool) {
	if !g.InBounds(col, row) {
		return Tile{}, false
	}
	return g.tiles[row*g.width+col], true
}

// SetTile replaces the tile at (col, row). Out-of-range coordinates leave the
// grid untouched and return ErrOutOfRange.
func (g *Grid) SetTile(col, row int, t Tile) error {
	if !g.InBounds(col, row) {
		return fmt.Errorf("%w: (%d,%d) outside %dx%d", ErrOutOfRange, col, row, g.width, g.height)
	}
	g.tiles[row*g.width+col] = t
	return nil
}

// IsSolid reports whether (col, row) holds a solid tile.
// Cells outside the grid are not solid.
func (g *Grid) IsSolid(col, row int) bool {
	t, ok := g.Tile(col, row)
	return ok && t.IsSolid()
}

// Bounds returns the grid's world-space extent.
func (g *Grid) Bounds() core.Rect {
	return core.NewRect(0, 0, g.width*g.tileWidth, g.height*g.tileHeight)
}

// CellRect returns the world rectangle covered by (col, row).
func (g *Grid) CellRect(col, row int) core.Rect {
	return core.NewRect(col*g.tileWidth, row*g.tileHeight, g.tileWidth, g.tileHeight)
}

// FindOverlapping returns the inclusive range of cells whose footprint
// intersects r. It returns false when r is empty or lies entirely outside
// the grid's extent.
//
// The right and bottom edges are exclusive, so the last column is
// (right-1)/tileWidth: a rectangle ending exactly on a tile boundary does
// not reach into the next cell.
func (g *Grid) FindOverlapping(r core.Rect) (CellRange, bool) {
	if r.Empty() {
		return CellRange{}, false
	}

	ext := g.Bounds()
	if !r.Intersects(ext) {
		return CellRange{}, false
	}

	return CellRange{
		MinCol: core.Clamp(core.FloorDiv(r.X, g.tileWidth), 0, g.width-1),
		MaxCol: core.Clamp(core.FloorDiv(r.Right()-1, g.tileWidth), 0, g.width-1),
		MinRow: core.Clamp(core.FloorDiv(r.Y, g.tileHeight), 0, g.height-1),
		MaxRow: core.Clamp(core.FloorDiv(r.Bottom()-1, g.tileHeight), 0, g.height-1),
	}, true
}

// ForEachOverlapping calls visit for every cell intersecting r, in row-major
// order, with the tile and its world rectangle.
func (g *Grid) ForEachOverlapping(r core.Rect, visit func(t Tile, cell core.Rect)) {
	cells, ok := g.FindOverlapping(r)
	if !ok {
		return
	}
	for row := cells.MinRow; row <= cells.MaxRow; row++ {
		for col := cells.MinCol; col <= cells.MaxCol; col++ {
			visit(g.tiles[row*g.width+col], g.CellRect(col, row))
		}
	}
}

// AnySolid reports whether any solid tile intersects r.
func (g *Grid) AnySolid(r core.Rect) bool {
	cells, ok := g.FindOverlapping(r)
	if !ok {
		return false
	}
	for row := cells.MinRow; row <= cells.MaxRow; row++ {
		for col := cells.MinCol; col <= cells.MaxCol; col++ {
			if g.tiles[row*g.width+col].IsSolid() {
				return true
			}
		}
	}
	return false
}

// Count returns how many cells satisfy match.
func (g *Grid) Count(match func(Tile) bool) int {
	n := 0
	for _, t := range g.tiles {
		if match(t) {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	tiles := make([]Tile, len(g.tiles))
	copy(tiles, g.tiles)
	return &Grid{
		width:      g.width,
		height:     g.height,
		tileWidth:  g.tileWidth,
		tileHeight: g.tileHeight,
		tiles:      tiles,
	}
}
