package level

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/level/formats"
)

// ErrNotFound is returned by LoadByID for unknown level IDs.
var ErrNotFound = errors.New("level not found")

//go:embed bundled
var bundledFS embed.FS

// Loader reads level files from a filesystem.
type Loader struct {
	FS   fs.FS
	Root string
}

// NewLoader creates a loader over root inside fsys.
func NewLoader(fsys fs.FS, root string) *Loader {
	return &Loader{FS: fsys, Root: root}
}

// NewDirLoader creates a loader over a directory on disk.
func NewDirLoader(dir string) *Loader {
	return NewLoader(os.DirFS(dir), ".")
}

// Bundled returns a loader over the levels compiled into the binary.
func Bundled() *Loader {
	return NewLoader(bundledFS, "bundled")
}

// LoadAll recursively scans and loads all level files.
// Invalid files are skipped with a warning.
// Returns levels sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level

	err := fs.WalkDir(l.FS, l.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(path.Ext(p)) {
			return nil
		}

		lvl, err := l.LoadFile(p)
		if err != nil {
			log.Warn("skipping level", "path", p, "err", err)
			return nil
		}

		levels = append(levels, lvl)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking levels %s: %w", l.Root, err)
	}

	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})

	return levels, nil
}

// LoadFile loads and validates a single level file.
func (l *Loader) LoadFile(p string) (Level, error) {
	data, err := fs.ReadFile(l.FS, p)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", p, err)
	}

	parsed, err := formats.Parse(data, path.Ext(p))
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", p, err)
	}

	lvl := Level{
		ID:         parsed.ID,
		Name:       parsed.Name,
		TileWidth:  parsed.TileWidth,
		TileHeight: parsed.TileHeight,
		TimeLimit:  parsed.TimeLimit,
		Rows:       parsed.Rows,
		Metadata:   parsed.Metadata,
		FilePath:   p,
	}
	if lvl.ID == "" {
		lvl.ID = strings.TrimSuffix(path.Base(p), path.Ext(p))
	}
	if lvl.Name == "" {
		lvl.Name = lvl.ID
	}
	if lvl.TileWidth == 0 {
		lvl.TileWidth = DefaultTileWidth
	}
	if lvl.TileHeight == 0 {
		lvl.TileHeight = DefaultTileHeight
	}

	if err := lvl.Validate(); err != nil {
		return Level{}, fmt.Errorf("validating file %s: %w", p, err)
	}

	return lvl, nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}

	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}

	return Level{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// ListIDs returns all level IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, nil
}

func isSupportedExtension(ext string) bool {
	ext = strings.ToLower(ext)
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}
