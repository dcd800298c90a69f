package tilemap

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

func newTestGrid(t *testing.T) *Grid {
	t.Helper()
	g, err := New(10, 8, 32, 32, Empty())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return g
}

func TestNewRejectsInvalidDimensions(t *testing.T) {
	tests := []struct {
		name               string
		w, h, tileW, tileH int
	}{
		{"zero width", 0, 5, 32, 32},
		{"negative height", 5, -1, 32, 32},
		{"zero tile width", 5, 5, 0, 32},
		{"zero tile height", 5, 5, 32, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := New(tt.w, tt.h, tt.tileW, tt.tileH, Empty())
			if !errors.Is(err, ErrInvalidDimensions) {
				t.Errorf("New() error = %v, expected ErrInvalidDimensions", err)
			}
			if g != nil {
				t.Error("New() should not return a grid on error")
			}
		})
	}
}

func TestNewFillsEveryCell(t *testing.T) {
	g, err := New(3, 2, 16, 16, Solid(7))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	for row := 0; row < 2; row++ {
		for col := 0; col < 3; col++ {
			tile, ok := g.Tile(col, row)
			if !ok || tile != Solid(7) {
				t.Errorf("Tile(%d, %d) = %v, %v, expected Solid(7), true", col, row, tile, ok)
			}
		}
	}
}

func TestTileOutOfRange(t *testing.T) {
	g := newTestGrid(t)

	for _, c := range []core.Point{{X: -1, Y: 0}, {X: 0, Y: -1}, {X: 10, Y: 0}, {X: 0, Y: 8}} {
		if _, ok := g.Tile(c.X, c.Y); ok {
			t.Errorf("Tile(%d, %d) should be absent", c.X, c.Y)
		}
		if g.IsSolid(c.X, c.Y) {
			t.Errorf("IsSolid(%d, %d) should be false outside the grid", c.X, c.Y)
		}
	}
}

func TestSetTile(t *testing.T) {
	g := newTestGrid(t)

	if err := g.SetTile(4, 3, Solid(1)); err != nil {
		t.Fatalf("SetTile() error = %v", err)
	}
	if !g.IsSolid(4, 3) {
		t.Error("IsSolid(4, 3) should be true after SetTile")
	}

	err := g.SetTile(10, 3, Solid(1))
	if !errors.Is(err, ErrOutOfRange) {
		t.Errorf("SetTile() out of range error = %v, expected ErrOutOfRange", err)
	}
	if n := g.Count(Tile.IsSolid); n != 1 {
		t.Errorf("out-of-range SetTile changed the grid, solid count = %d, expected 1", n)
	}
}

func TestBounds(t *testing.T) {
	g := newTestGrid(t)
	expected := core.NewRect(0, 0, 320, 256)
	if b := g.Bounds(); b != expected {
		t.Errorf("Bounds() = %+v, expected %+v", b, expected)
	}
}

func TestFindOverlappingBoundaries(t *testing.T) {
	g := newTestGrid(t)

	tests := []struct {
		name     string
		rect     core.Rect
		expected CellRange
	}{
		{"right edge on tile boundary", core.NewRect(0, 0, 32, 32), CellRange{0, 0, 0, 0}},
		{"one past boundary", core.NewRect(0, 0, 33, 32), CellRange{0, 1, 0, 0}},
		{"starts on boundary", core.NewRect(32, 64, 32, 32), CellRange{1, 1, 2, 2}},
		{"straddles four cells", core.NewRect(20, 20, 20, 20), CellRange{0, 1, 0, 1}},
		{"clamped at origin", core.NewRect(-10, -10, 20, 20), CellRange{0, 0, 0, 0}},
		{"clamped past far edge", core.NewRect(300, 240, 100, 100), CellRange{9, 9, 7, 7}},
		{"whole world", core.NewRect(0, 0, 320, 256), CellRange{0, 9, 0, 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := g.FindOverlapping(tt.rect)
			if !ok {
				t.Fatalf("FindOverlapping(%+v) returned no range", tt.rect)
			}
			if got != tt.expected {
				t.Errorf("FindOverlapping(%+v) = %+v, expected %+v", tt.rect, got, tt.expected)
			}
		})
	}
}

func TestFindOverlappingOutside(t *testing.T) {
	g := newTestGrid(t)

	tests := []core.Rect{
		core.NewRect(-32, 0, 32, 32),  // touches left edge only
		core.NewRect(0, -32, 32, 32),  // touches top edge only
		core.NewRect(320, 0, 32, 32),  // starts at right edge
		core.NewRect(0, 256, 32, 32),  // starts at bottom edge
		core.NewRect(-100, -100, 5, 5),
		core.NewRect(1000, 1000, 50, 50),
		core.NewRect(10, 10, 0, 5), // empty
	}

	for _, r := range tests {
		if got, ok := g.FindOverlapping(r); ok {
			t.Errorf("FindOverlapping(%+v) = %+v, expected no range", r, got)
		}
	}
}

func TestFindOverlappingCoversRect(t *testing.T) {
	g := newTestGrid(t)
	rng := rand.New(rand.NewSource(42))
	ext := g.Bounds()

	for i := 0; i < 500; i++ {
		x := rng.Intn(ext.W)
		y := rng.Intn(ext.H)
		r := core.NewRect(x, y, 1+rng.Intn(ext.W-x), 1+rng.Intn(ext.H-y))

		cells, ok := g.FindOverlapping(r)
		if !ok {
			t.Fatalf("FindOverlapping(%+v) returned no range for an inside rect", r)
		}

		union := g.CellRect(cells.MinCol, cells.MinRow).Union(g.CellRect(cells.MaxCol, cells.MaxRow))
		if !union.ContainsRect(r) {
			t.Fatalf("cells %+v (union %+v) do not contain %+v", cells, union, r)
		}

		// Every cell in the range must actually touch r.
		if !g.CellRect(cells.MaxCol, cells.MaxRow).Intersects(r) || !g.CellRect(cells.MinCol, cells.MinRow).Intersects(r) {
			t.Fatalf("cells %+v over-include for %+v", cells, r)
		}
	}
}

func TestForEachOverlappingOrder(t *testing.T) {
	g := newTestGrid(t)
	_ = g.SetTile(2, 1, Solid(3))

	var visited []core.Rect
	solid := 0
	g.ForEachOverlapping(core.NewRect(40, 20, 40, 30), func(tile Tile, cell core.Rect) {
		visited = append(visited, cell)
		if tile.IsSolid() {
			solid++
		}
	})

	expected := []core.Rect{
		g.CellRect(1, 0), g.CellRect(2, 0),
		g.CellRect(1, 1), g.CellRect(2, 1),
	}
	if len(visited) != len(expected) {
		t.Fatalf("visited %d cells, expected %d", len(visited), len(expected))
	}
	for i := range expected {
		if visited[i] != expected[i] {
			t.Errorf("visit %d = %+v, expected %+v", i, visited[i], expected[i])
		}
	}
	if solid != 1 {
		t.Errorf("solid cells visited = %d, expected 1", solid)
	}

	called := false
	g.ForEachOverlapping(core.NewRect(-50, -50, 10, 10), func(Tile, core.Rect) { called = true })
	if called {
		t.Error("ForEachOverlapping should not visit anything outside the grid")
	}
}

func TestAnySolid(t *testing.T) {
	g := newTestGrid(t)
	_ = g.SetTile(5, 5, Solid(1))
	_ = g.SetTile(6, 5, Background(2))

	if !g.AnySolid(core.NewRect(150, 150, 20, 20)) {
		t.Error("AnySolid should find the tile at (5, 5)")
	}
	if g.AnySolid(core.NewRect(192, 160, 32, 32)) {
		t.Error("background tiles are not solid")
	}
	if g.AnySolid(core.NewRect(128, 160, 32, 32)) {
		t.Error("a rect ending on the tile's left edge does not touch it")
	}
}

func TestClone(t *testing.T) {
	g := newTestGrid(t)
	c := g.Clone()
	_ = c.SetTile(0, 0, Solid(1))

	if g.IsSolid(0, 0) {
		t.Error("Clone should not share storage with the original")
	}
}
