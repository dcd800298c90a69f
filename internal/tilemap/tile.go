// Package tilemap provides the fixed-size tile grid the actor collides with,
// together with the spatial queries used by the resolver and the renderer.
// The package is UI-agnostic and deterministic.
package tilemap

import "fmt"

// TileKind is the variant tag of a Tile.
type TileKind uint8

const (
	TileEmpty      TileKind = iota // Nothing; never blocks
	TileBackground                 // Decoration drawn behind the actor; never blocks
	TileSolid                      // Blocks actor movement on contact
)

// String returns the string representation of a tile kind.
func (k TileKind) String() string {
	switch k {
	case TileEmpty:
		return "Empty"
	case TileBackground:
		return "Background"
	case TileSolid:
		return "Solid"
	default:
		return "Unknown"
	}
}

// Tile is a closed tagged value. ID selects the material or decoration
// and is meaningless for empty tiles.
type Tile struct {
	Kind TileKind
	ID   uint16
}

// Empty returns the empty tile.
func Empty() Tile {
	return Tile{Kind: TileEmpty}
}

// Solid returns a blocking tile of the given material.
func Solid(id uint16) Tile {
	return Tile{Kind: TileSolid, ID: id}
}

// Background returns a non-blocking decoration tile.
func Background(id uint16) Tile {
	return Tile{Kind: TileBackground, ID: id}
}

// IsSolid reports whether the tile blocks movement.
func (t Tile) IsSolid() bool {
	return t.Kind == TileSolid
}

// IsEmpty reports whether the tile is the empty variant.
func (t Tile) IsEmpty() bool {
	return t.Kind == TileEmpty
}

// String returns a string representation of the tile.
func (t Tile) String() string {
	if t.Kind == TileEmpty {
		return "Empty"
	}
	return fmt.Sprintf("%s(%d)", t.Kind, t.ID)
}
