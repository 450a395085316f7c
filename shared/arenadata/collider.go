package arenadata

import (
	"github.com/ferngale/spellarena-mp/shared/gamemath"
	"github.com/solarlune/resolv"
)

const obstacleTag = "obstacle"

// Collider resolves one player's planar movement against an arena's
// obstacles. Client prediction and the server each own one per player, built
// from the same arena data, so both sides clamp movement identically.
type Collider struct {
	arena  *Arena
	space  *resolv.Space
	object *resolv.Object
}

// NewCollider builds a collision space for the arena and a footprint object
// for one player at the given position.
func NewCollider(arena *Arena, x, z float64) *Collider {
	size := 2 * gamemath.PlayerRadius

	space := resolv.NewSpace(int(arena.Width)+1, int(arena.Depth)+1, 4, 4)
	for _, ob := range arena.Obstacles {
		obj := resolv.NewObject(ob.X, ob.Z, ob.W, ob.D, obstacleTag)
		obj.SetShape(resolv.NewRectangle(0, 0, ob.W, ob.D))
		space.Add(obj)
	}

	player := resolv.NewObject(x-gamemath.PlayerRadius, z-gamemath.PlayerRadius, size, size, "player")
	player.SetShape(resolv.NewRectangle(0, 0, size, size))
	space.Add(player)

	return &Collider{arena: arena, space: space, object: player}
}

// Warp moves the footprint without collision checks (spawn, snap
// corrections).
func (c *Collider) Warp(x, z float64) {
	c.object.X = x - gamemath.PlayerRadius
	c.object.Y = z - gamemath.PlayerRadius
	c.object.Update()
}

// Resolve implements gamemath.ObstacleResolver: it attempts the move from
// (fromX, fromZ) to (toX, toZ), sliding along obstacles axis by axis and
// clamping to the arena bounds, and returns the final position.
func (c *Collider) Resolve(fromX, fromZ, toX, toZ float64) (float64, float64) {
	c.object.X = fromX - gamemath.PlayerRadius
	c.object.Y = fromZ - gamemath.PlayerRadius
	c.object.Update()

	dx := toX - fromX
	if dx != 0 {
		if check := c.object.Check(dx, 0, obstacleTag); check != nil {
			if solids := check.ObjectsByTags(obstacleTag); len(solids) > 0 {
				contact := check.ContactWithObject(solids[0])
				dx = contact.X()
			}
		}
		c.object.X += dx
		c.object.Update()
	}

	dz := toZ - fromZ
	if dz != 0 {
		if check := c.object.Check(0, dz, obstacleTag); check != nil {
			if solids := check.ObjectsByTags(obstacleTag); len(solids) > 0 {
				contact := check.ContactWithObject(solids[0])
				dz = contact.Y()
			}
		}
		c.object.Y += dz
		c.object.Update()
	}

	x := clampRange(c.object.X+gamemath.PlayerRadius, gamemath.PlayerRadius, c.arena.Width-gamemath.PlayerRadius)
	z := clampRange(c.object.Y+gamemath.PlayerRadius, gamemath.PlayerRadius, c.arena.Depth-gamemath.PlayerRadius)
	c.object.X = x - gamemath.PlayerRadius
	c.object.Y = z - gamemath.PlayerRadius
	c.object.Update()
	return x, z
}

// Remove takes the player footprint out of the space.
func (c *Collider) Remove() {
	c.space.Remove(c.object)
}

func clampRange(v, lo, hi float64) float64 {
	if hi < lo {
		return (lo + hi) / 2
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
