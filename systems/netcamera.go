package systems

import (
	"math"

	"github.com/ferngale/spellarena-mp/components"
	"github.com/ferngale/spellarena-mp/config"
	"github.com/ferngale/spellarena-mp/shared/arenadata"
	"github.com/ferngale/spellarena-mp/shared/netcomponents"
	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi/ecs"
)

// NewNetCameraSystem returns an update system that keeps the top-down camera
// centered on the local player, clamped to the arena bounds.
func NewNetCameraSystem(localNetID func() esync.NetworkId, arena *arenadata.Arena) func(*ecs.ECS) {
	return func(e *ecs.ECS) {
		cameraEntry, ok := components.Camera.First(e.World)
		if !ok {
			return
		}
		camera := components.Camera.Get(cameraEntry)

		entity := esync.FindByNetworkId(e.World, localNetID())
		if !e.World.Valid(entity) {
			return
		}
		entry := e.World.Entry(entity)
		if !entry.HasComponent(netcomponents.NetTransform) {
			return
		}

		tf := netcomponents.NetTransform.Get(entry)
		targetX := tf.X
		targetZ := tf.Z

		zoom := camera.Zoom
		if zoom == 0 {
			zoom = config.Camera.PixelsPerMeter
			camera.Zoom = zoom
		}

		visibleW := float64(config.C.Width) / zoom
		visibleD := float64(config.C.Height) / zoom

		minX, maxX := visibleW/2, arena.Width-visibleW/2
		minZ, maxZ := visibleD/2, arena.Depth-visibleD/2
		if minX > maxX {
			minX = arena.Width / 2
			maxX = minX
		}
		if minZ > maxZ {
			minZ = arena.Depth / 2
			maxZ = minZ
		}

		targetX = math.Max(minX, math.Min(maxX, targetX))
		targetZ = math.Max(minZ, math.Min(maxZ, targetZ))

		camera.X += (targetX - camera.X) * config.Camera.FollowSmoothing
		camera.Z += (targetZ - camera.Z) * config.Camera.FollowSmoothing
	}
}
