// Package arenadata provides TMX arena parsing shared between client and
// server. Coordinates are ground-plane meters: TMX x maps to world X, TMX y
// to world Z.
package arenadata

// Arena holds everything parsed from an arena TMX file.
type Arena struct {
	Name      string
	Width     float64
	Depth     float64
	Obstacles []Obstacle
	Spawns    []SpawnPoint
}

// Obstacle is an axis-aligned blocking rectangle on the ground plane.
type Obstacle struct {
	X, Z, W, D float64
}

// SpawnPoint is a player spawn location.
type SpawnPoint struct {
	X, Z  float64
	Index int
}

// SpawnFor picks the spawn point for the nth joining player, cycling through
// the available spawns. Falls back to the arena center when none are defined.
func (a *Arena) SpawnFor(n int) SpawnPoint {
	if len(a.Spawns) == 0 {
		return SpawnPoint{X: a.Width / 2, Z: a.Depth / 2}
	}
	return a.Spawns[n%len(a.Spawns)]
}
