package level

import "github.com/vovakirdan/tui-platformer/internal/tilemap"

// Tile material IDs. Solid and background tiles share one ID space so the
// renderer can pick a glyph from the ID alone.
const (
	IDGround uint16 = iota + 1
	IDBrick
	IDBlock
	IDPipe
	IDHill
	IDBush
	IDCloud
	IDCoin
	IDGoal
)

// Map characters with special meaning beyond a tile.
const (
	SpawnRune = 'S'
	EmptyRune = '.'
)

var legend = map[rune]tilemap.Tile{
	'.': tilemap.Empty(),
	' ': tilemap.Empty(),
	'S': tilemap.Empty(),
	'#': tilemap.Solid(IDGround),
	'B': tilemap.Solid(IDBrick),
	'?': tilemap.Solid(IDBlock),
	'P': tilemap.Solid(IDPipe),
	'^': tilemap.Background(IDHill),
	'*': tilemap.Background(IDBush),
	'c': tilemap.Background(IDCloud),
	'o': tilemap.Background(IDCoin),
	'F': tilemap.Background(IDGoal),
}

// TileFor returns the tile a map character stands for.
func TileFor(r rune) (tilemap.Tile, bool) {
	t, ok := legend[r]
	return t, ok
}

// IsCoin reports whether t is a collectible coin.
func IsCoin(t tilemap.Tile) bool {
	return t.Kind == tilemap.TileBackground && t.ID == IDCoin
}

// IsGoal reports whether t is the goal flag.
func IsGoal(t tilemap.Tile) bool {
	return t.Kind == tilemap.TileBackground && t.ID == IDGoal
}
