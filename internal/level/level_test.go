package level

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

func TestBundledLevels(t *testing.T) {
	levels, err := Bundled().LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}

	expected := []string{"01-green-hills", "02-brick-road", "03-caves"}
	if len(levels) != len(expected) {
		t.Fatalf("LoadAll() returned %d levels, expected %d", len(levels), len(expected))
	}

	for i, lvl := range levels {
		if lvl.ID != expected[i] {
			t.Errorf("level %d ID = %q, expected %q", i, lvl.ID, expected[i])
		}
		if _, _, err := lvl.Build(32, 32); err != nil {
			t.Errorf("level %s: Build() error = %v", lvl.ID, err)
		}
		if lvl.CoinCount() == 0 {
			t.Errorf("level %s has no coins", lvl.ID)
		}
		if lvl.TimeLimit <= 0 {
			t.Errorf("level %s has no time limit", lvl.ID)
		}
	}
}

func TestDirLoaderSkipsInvalidFiles(t *testing.T) {
	ids, err := NewDirLoader("testdata").ListIDs()
	if err != nil {
		t.Fatalf("ListIDs() error = %v", err)
	}

	expected := []string{"small", "tiny"}
	if len(ids) != len(expected) {
		t.Fatalf("ListIDs() = %v, expected %v", ids, expected)
	}
	for i := range expected {
		if ids[i] != expected[i] {
			t.Errorf("ListIDs()[%d] = %q, expected %q", i, ids[i], expected[i])
		}
	}
}

func TestLoadFileValidation(t *testing.T) {
	tests := []struct {
		file string
		code string
	}{
		{"ragged.yaml", "RAGGED_ROWS"},
		{"unknown.yml", "UNKNOWN_TILE"},
	}

	loader := NewDirLoader("testdata")
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			_, err := loader.LoadFile(tt.file)
			var ve ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("LoadFile() error = %v, expected a ValidationError", err)
			}
			if ve.Code != tt.code {
				t.Errorf("Code = %q, expected %q", ve.Code, tt.code)
			}
		})
	}
}

func TestLoadTOML(t *testing.T) {
	lvl, err := NewDirLoader("testdata").LoadByID("small")
	if err != nil {
		t.Fatalf("LoadByID() error = %v", err)
	}
	if lvl.Name != "Small" || lvl.TimeLimit != 30 {
		t.Errorf("level = %+v, expected name Small with a 30s limit", lvl)
	}

	g, spawn, err := lvl.Build(16, 16)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if g.TileWidth() != 16 || g.Width() != 6 || g.Height() != 3 {
		t.Errorf("grid = %dx%d tiles of %d, expected 6x3 of 16", g.Width(), g.Height(), g.TileWidth())
	}
	if spawn != core.NewRect(0, 16, 16, 16) {
		t.Errorf("spawn = %+v, expected (0, 16, 16, 16)", spawn)
	}
	if !g.IsSolid(3, 1) {
		t.Error("'?' should be a solid block")
	}
	if tile, _ := g.Tile(1, 0); tile.IsSolid() || tile.IsEmpty() {
		t.Errorf("cloud tile = %v, expected background", tile)
	}
}

func TestLoadByIDNotFound(t *testing.T) {
	_, err := NewDirLoader("testdata").LoadByID("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("LoadByID() error = %v, expected ErrNotFound", err)
	}
}

func TestBuild(t *testing.T) {
	lvl, err := NewDirLoader("testdata").LoadFile("tiny.yaml")
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if lvl.TileWidth != DefaultTileWidth || lvl.TileHeight != DefaultTileHeight {
		t.Errorf("tile size = %dx%d, expected defaults", lvl.TileWidth, lvl.TileHeight)
	}

	g, spawn, err := lvl.Build(32, 32)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if spawn != core.NewRect(32, 32, 32, 32) {
		t.Errorf("spawn = %+v, expected (32, 32, 32, 32)", spawn)
	}
	if coin, _ := g.Tile(4, 1); !IsCoin(coin) {
		t.Errorf("Tile(4, 1) = %v, expected a coin", coin)
	}
	if goal, _ := g.Tile(5, 1); !IsGoal(goal) {
		t.Errorf("Tile(5, 1) = %v, expected the goal", goal)
	}
	for col := 0; col < 6; col++ {
		if !g.IsSolid(col, 2) {
			t.Errorf("IsSolid(%d, 2) = false, expected ground", col)
		}
	}

	// A narrower actor is centered in the spawn cell.
	if r := lvl.SpawnRect(20, 30); r != core.NewRect(38, 34, 20, 30) {
		t.Errorf("SpawnRect(20, 30) = %+v, expected (38, 34, 20, 30)", r)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		lvl  Level
		code string
	}{
		{"no rows", Level{TileWidth: 32, TileHeight: 32}, "EMPTY_LEVEL"},
		{"no spawn", Level{TileWidth: 32, TileHeight: 32, Rows: []string{"..", "##"}}, "SPAWN_COUNT"},
		{"two spawns", Level{TileWidth: 32, TileHeight: 32, Rows: []string{"SS", "##"}}, "SPAWN_COUNT"},
		{"zero tile", Level{TileWidth: 0, TileHeight: 32, Rows: []string{"S.", "##"}}, "BAD_TILE_SIZE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.lvl.Validate()
			var ve ValidationError
			if !errors.As(err, &ve) || ve.Code != tt.code {
				t.Errorf("Validate() = %v, expected code %s", err, tt.code)
			}
		})
	}
}

func TestBuildSpawnBlocked(t *testing.T) {
	lvl := Level{TileWidth: 32, TileHeight: 32, Rows: []string{"#.", "S.", "##"}}

	if _, _, err := lvl.Build(32, 32); err != nil {
		t.Fatalf("Build(32, 32) error = %v", err)
	}

	_, _, err := lvl.Build(32, 64)
	var ve ValidationError
	if !errors.As(err, &ve) || ve.Code != "SPAWN_BLOCKED" {
		t.Errorf("Build(32, 64) = %v, expected SPAWN_BLOCKED", err)
	}
}
