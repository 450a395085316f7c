package arenadata

import (
	"math"
	"testing"
	"testing/fstest"

	"github.com/ferngale/spellarena-mp/shared/gamemath"
)

const testTMX = `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" orientation="orthogonal" renderorder="right-down" width="64" height="64" tilewidth="1" tileheight="1" infinite="0" nextlayerid="3" nextobjectid="6">
 <objectgroup id="1" name="obstacles">
  <object id="1" x="30" y="10" width="4" height="2"/>
  <object id="2" x="10" y="40" width="2" height="8"/>
 </objectgroup>
 <objectgroup id="2" name="spawns">
  <object id="3" x="8" y="8">
   <properties>
    <property name="spawnIndex" type="int" value="1"/>
   </properties>
  </object>
  <object id="4" x="56" y="56">
   <properties>
    <property name="spawnIndex" type="int" value="0"/>
   </properties>
  </object>
 </objectgroup>
</map>
`

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"arenas/proving.tmx": &fstest.MapFile{Data: []byte(testTMX)},
	}
}

func TestLoadArena(t *testing.T) {
	arena, err := Load(testFS(), "arenas/proving.tmx")
	if err != nil {
		t.Fatalf("load arena: %v", err)
	}

	if arena.Name != "proving" {
		t.Fatalf("arena name = %q, want %q", arena.Name, "proving")
	}
	if arena.Width != 64 || arena.Depth != 64 {
		t.Fatalf("arena size = %vx%v, want 64x64", arena.Width, arena.Depth)
	}
	if len(arena.Obstacles) != 2 {
		t.Fatalf("got %d obstacles, want 2", len(arena.Obstacles))
	}
	if ob := arena.Obstacles[0]; ob.X != 30 || ob.Z != 10 || ob.W != 4 || ob.D != 2 {
		t.Fatalf("obstacle[0] = %+v", ob)
	}

	// Spawns sorted by index.
	if len(arena.Spawns) != 2 {
		t.Fatalf("got %d spawns, want 2", len(arena.Spawns))
	}
	if arena.Spawns[0].Index != 0 || arena.Spawns[0].X != 56 {
		t.Fatalf("spawns not sorted by index: %+v", arena.Spawns)
	}
}

func TestLoadAll(t *testing.T) {
	arenas, names, err := LoadAll(testFS(), "arenas")
	if err != nil {
		t.Fatalf("load all: %v", err)
	}
	if len(names) != 1 || names[0] != "proving" {
		t.Fatalf("names = %v", names)
	}
	if arenas["proving"] == nil {
		t.Fatalf("missing arena %q", "proving")
	}
}

func TestColliderOpenGround(t *testing.T) {
	arena := &Arena{Name: "empty", Width: 64, Depth: 64}
	c := NewCollider(arena, 32, 32)

	x, z := c.Resolve(32, 32, 33.5, 30.25)
	if x != 33.5 || z != 30.25 {
		t.Fatalf("open-ground move clamped: got (%v, %v)", x, z)
	}
}

func TestColliderBlocksObstacle(t *testing.T) {
	arena := &Arena{
		Name:      "walled",
		Width:     64,
		Depth:     64,
		Obstacles: []Obstacle{{X: 20, Z: 0, W: 2, D: 64}},
	}
	c := NewCollider(arena, 10, 32)

	// Walking east into the wall must stop at its face (minus the player
	// footprint radius).
	x, z := c.Resolve(18, 32, 25, 32)
	if x > 20-gamemath.PlayerRadius+1e-9 {
		t.Fatalf("moved through wall: x = %v", x)
	}
	if z != 32 {
		t.Fatalf("z drifted during horizontal resolve: %v", z)
	}
}

func TestColliderArenaBounds(t *testing.T) {
	arena := &Arena{Name: "empty", Width: 64, Depth: 64}
	c := NewCollider(arena, 1, 1)

	x, z := c.Resolve(1, 1, -5, -5)
	if x != gamemath.PlayerRadius || z != gamemath.PlayerRadius {
		t.Fatalf("bounds clamp failed: got (%v, %v)", x, z)
	}
}

func TestColliderDeterministic(t *testing.T) {
	arena := &Arena{
		Name:      "walled",
		Width:     64,
		Depth:     64,
		Obstacles: []Obstacle{{X: 30, Z: 28, W: 4, D: 8}},
	}

	run := func() gamemath.MoveState {
		c := NewCollider(arena, 20, 32)
		s := gamemath.MoveState{Pos: gamemath.Vec3{X: 20, Z: 32}}
		prevJump := false
		for i := 0; i < 240; i++ {
			cmd := gamemath.Command{Forward: true, Yaw: -math.Pi / 2, Jump: i%30 == 0}
			s = gamemath.Step(s, cmd, prevJump, gamemath.SimDelta, c.Resolve)
			prevJump = cmd.Jump
		}
		return s
	}

	a, b := run(), run()
	if a != b {
		t.Fatalf("collider runs diverged: %+v vs %+v", a, b)
	}
}
