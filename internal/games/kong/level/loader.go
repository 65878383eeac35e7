package level

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Builtin returns the levels shipped with the game.
func Builtin() (*Set, error) {
	levels, err := loadFS(builtinFS, "builtin")
	if err != nil {
		return nil, err
	}
	return NewSet(levels)
}

// Loader handles loading levels from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new level loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all level files.
// Returns levels sorted by ID for deterministic ordering.
// An invalid file fails the whole load.
func (l *Loader) LoadAll() ([]Level, error) {
	levels, err := loadFS(os.DirFS(l.Root), ".")
	if err != nil {
		return nil, fmt.Errorf("level: walking directory %s: %w", l.Root, err)
	}
	for i := range levels {
		levels[i].FilePath = filepath.Join(l.Root, levels[i].FilePath)
	}
	return levels, nil
}

// LoadSet loads the directory as a level set.
func (l *Loader) LoadSet() (*Set, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	return NewSet(levels)
}

// LoadFile loads a single level file.
func (l *Loader) LoadFile(path string) (Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Level{}, fmt.Errorf("level: reading file %s: %w", path, err)
	}
	lvl, err := ParseYAML(data)
	if err != nil {
		return Level{}, fmt.Errorf("level: parsing file %s: %w", path, err)
	}
	lvl.FilePath = path
	return lvl, nil
}

func loadFS(fsys fs.FS, root string) ([]Level, error) {
	var levels []Level

	err := fs.WalkDir(fsys, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(strings.ToLower(filepath.Ext(path))) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return err
		}
		lvl, err := ParseYAML(data)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if lvl.ID == "" {
			lvl.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			if lvl.Name == "" {
				lvl.Name = lvl.ID
			}
		}
		lvl.FilePath = path
		levels = append(levels, lvl)
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Sort by ID for determinism
	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
	return levels, nil
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}
