package systems

import (
	"math"
	"time"

	"github.com/ferngale/spellarena-mp/components"
	"github.com/ferngale/spellarena-mp/shared/gamemath"
	"github.com/ferngale/spellarena-mp/shared/netcomponents"
	"github.com/ferngale/spellarena-mp/shared/netconfig"
	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// NewNetInterpSystem returns an update system that renders remote players a
// fixed delay in the past, sampling each one's snapshot buffer and easing the
// drawn pose toward the sampled target. The local player is predicted, not
// interpolated, and is skipped here.
func NewNetInterpSystem(localNetID func() esync.NetworkId) func(*ecs.ECS) {
	// Frame-rate-independent approach factors for the fixed 60 Hz tick.
	posFactor := 1 - math.Exp(-netconfig.PosApproachRate*gamemath.SimDelta)
	yawFactor := 1 - math.Exp(-netconfig.YawApproachRate*gamemath.SimDelta)

	return func(e *ecs.ECS) {
		renderTime := time.Now().Add(-time.Duration(netconfig.RenderDelayMs) * time.Millisecond)
		localID := localNetID()

		esync.NetworkEntityQuery.Each(e.World, func(entry *donburi.Entry) {
			if !entry.HasComponent(components.NetInterp) || !entry.HasComponent(netcomponents.NetTransform) {
				return
			}
			if id := esync.GetNetworkId(entry); id != nil && *id == localID {
				return
			}

			interp := components.NetInterp.Get(entry)
			target, ok := interp.Ring.SampleAt(renderTime)
			if !ok {
				return
			}

			if !interp.Initialized {
				interp.SmoothX = target.X
				interp.SmoothY = target.Y
				interp.SmoothZ = target.Z
				interp.SmoothYaw = target.Yaw
				interp.Initialized = true
			} else {
				interp.SmoothX += (target.X - interp.SmoothX) * posFactor
				interp.SmoothY += (target.Y - interp.SmoothY) * posFactor
				interp.SmoothZ += (target.Z - interp.SmoothZ) * posFactor
				interp.SmoothYaw = gamemath.LerpAngle(interp.SmoothYaw, target.Yaw, yawFactor)
			}

			tf := netcomponents.NetTransform.Get(entry)
			tf.X = interp.SmoothX
			tf.Y = interp.SmoothY
			tf.Z = interp.SmoothZ
			tf.Yaw = interp.SmoothYaw
		})
	}
}
