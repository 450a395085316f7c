// Package assets embeds the arena maps shipped with the client. The server
// loads the same files from disk, so both sides simulate identical obstacle
// layouts.
package assets

import (
	"embed"

	"github.com/ferngale/spellarena-mp/shared/arenadata"
)

//go:embed all:arenas
var arenaFS embed.FS

// DefaultArena is used when the server does not name one.
const DefaultArena = "arena01"

// LoadArena parses the named embedded arena.
func LoadArena(name string) (*arenadata.Arena, error) {
	if name == "" {
		name = DefaultArena
	}
	return arenadata.Load(arenaFS, "arenas/"+name+".tmx")
}

// ListArenaNames returns the embedded arena names, sorted.
func ListArenaNames() ([]string, error) {
	_, names, err := arenadata.LoadAll(arenaFS, "arenas")
	return names, err
}
