package arenadata

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lafriks/go-tiled"
)

// Load parses an arena TMX file. It takes an fs.FS so callers can pass
// embed.FS (client) or os.DirFS (server).
func Load(fsys fs.FS, tmxPath string) (*Arena, error) {
	arenaMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	arena := &Arena{
		Name:  strings.TrimSuffix(filepath.Base(tmxPath), ".tmx"),
		Width: float64(arenaMap.Width * arenaMap.TileWidth),
		Depth: float64(arenaMap.Height * arenaMap.TileHeight),
	}

	for _, og := range arenaMap.ObjectGroups {
		switch og.Name {
		case "obstacles":
			for _, o := range og.Objects {
				arena.Obstacles = append(arena.Obstacles, Obstacle{
					X: o.X,
					Z: o.Y,
					W: o.Width,
					D: o.Height,
				})
			}
		case "spawns":
			for _, o := range og.Objects {
				arena.Spawns = append(arena.Spawns, SpawnPoint{
					X:     o.X,
					Z:     o.Y,
					Index: o.Properties.GetInt("spawnIndex"),
				})
			}
		}
	}

	// Sort spawns by index for consistent assignment.
	sort.Slice(arena.Spawns, func(i, j int) bool {
		return arena.Spawns[i].Index < arena.Spawns[j].Index
	})

	return arena, nil
}

// LoadAll discovers all .tmx files in arenasDir within fsys and returns the
// parsed arenas keyed by stem name plus a sorted list of names.
func LoadAll(fsys fs.FS, arenasDir string) (map[string]*Arena, []string, error) {
	pattern := arenasDir + "/*.tmx"
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, nil, fmt.Errorf("no .tmx files found in %s", arenasDir)
	}

	arenas := make(map[string]*Arena, len(matches))
	names := make([]string, 0, len(matches))

	for _, path := range matches {
		arena, err := Load(fsys, path)
		if err != nil {
			return nil, nil, fmt.Errorf("load %s: %w", path, err)
		}
		arenas[arena.Name] = arena
		names = append(names, arena.Name)
	}

	sort.Strings(names)
	return arenas, names, nil
}
