package netcomponents

import (
	"github.com/ferngale/spellarena-mp/shared/gamemath"
	"github.com/yohamta/donburi"
)

// NetTransformData is the synced position and facing of a networked player.
// X/Z span the ground plane, Y is height above it.
type NetTransformData struct {
	X, Y, Z float64
	Yaw     float64
}

var NetTransform = donburi.NewComponentType[NetTransformData]()

// Pos returns the position as a vector.
func (t NetTransformData) Pos() gamemath.Vec3 {
	return gamemath.Vec3{X: t.X, Y: t.Y, Z: t.Z}
}

// SetPos writes a vector back into the component.
func (t *NetTransformData) SetPos(p gamemath.Vec3) {
	t.X, t.Y, t.Z = p.X, p.Y, p.Z
}

// LerpNetTransform interpolates between two transforms. Yaw takes the
// shortest arc.
func LerpNetTransform(from, to NetTransformData, t float64) *NetTransformData {
	return &NetTransformData{
		X:   from.X + (to.X-from.X)*t,
		Y:   from.Y + (to.Y-from.Y)*t,
		Z:   from.Z + (to.Z-from.Z)*t,
		Yaw: gamemath.LerpAngle(from.Yaw, to.Yaw, t),
	}
}
