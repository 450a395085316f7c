package systems

import (
	"image/color"
	"math"

	"github.com/ferngale/spellarena-mp/components"
	cfg "github.com/ferngale/spellarena-mp/config"
	"github.com/ferngale/spellarena-mp/fonts"
	"github.com/ferngale/spellarena-mp/shared/arenadata"
	"github.com/ferngale/spellarena-mp/shared/netcomponents"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var (
	groundColor   = color.RGBA{R: 30, G: 36, B: 30, A: 255}
	obstacleColor = color.RGBA{R: 70, G: 70, B: 80, A: 255}
	borderColor   = color.RGBA{R: 110, G: 110, B: 120, A: 255}
)

// worldToScreen projects a ground-plane point through the camera.
func worldToScreen(cam *components.CameraData, x, z float64) (float32, float32) {
	zoom := cam.Zoom
	if zoom == 0 {
		zoom = cfg.Camera.PixelsPerMeter
	}
	sx := (x-cam.X)*zoom + float64(cfg.C.Width)/2
	sy := (z-cam.Z)*zoom + float64(cfg.C.Height)/2
	return float32(sx), float32(sy)
}

func cameraZoom(cam *components.CameraData) float32 {
	if cam.Zoom == 0 {
		return float32(cfg.Camera.PixelsPerMeter)
	}
	return float32(cam.Zoom)
}

// NewDrawArenaSystem returns a renderer that draws the arena floor, border,
// and obstacles under the players.
func NewDrawArenaSystem(arena *arenadata.Arena) func(*ecs.ECS, *ebiten.Image) {
	return func(e *ecs.ECS, screen *ebiten.Image) {
		camEntry, ok := components.Camera.First(e.World)
		if !ok {
			return
		}
		cam := components.Camera.Get(camEntry)
		zoom := cameraZoom(cam)

		x0, y0 := worldToScreen(cam, 0, 0)
		vector.DrawFilledRect(screen, x0, y0, float32(arena.Width)*zoom, float32(arena.Depth)*zoom, groundColor, false)
		vector.StrokeRect(screen, x0, y0, float32(arena.Width)*zoom, float32(arena.Depth)*zoom, 2, borderColor, false)

		for _, ob := range arena.Obstacles {
			ox, oy := worldToScreen(cam, ob.X, ob.Z)
			vector.DrawFilledRect(screen, ox, oy, float32(ob.W)*zoom, float32(ob.D)*zoom, obstacleColor, false)
		}
	}
}

// DrawNetworkedPlayers draws every networked player as a disc with a facing
// marker and name label. Height above ground shifts the disc up and shrinks
// its shadow.
func DrawNetworkedPlayers(e *ecs.ECS, screen *ebiten.Image) {
	camEntry, ok := components.Camera.First(e.World)
	if !ok {
		return
	}
	cam := components.Camera.Get(camEntry)
	smallFont := fonts.Small.Get()
	colorIndex := 0

	esync.NetworkEntityQuery.Each(e.World, func(entry *donburi.Entry) {
		if !entry.HasComponent(netcomponents.NetTransform) {
			return
		}
		tf := netcomponents.NetTransform.Get(entry)

		var state *netcomponents.NetPlayerStateData
		if entry.HasComponent(netcomponents.NetPlayerState) {
			state = netcomponents.NetPlayerState.Get(entry)
		}

		var discColor color.RGBA
		if state != nil && state.IsLocal {
			discColor = cfg.BrightGreen
		} else {
			idx := colorIndex % len(cfg.PlayerColors.Colors)
			discColor = cfg.PlayerColors.Colors[idx]
			colorIndex++
		}

		gx, gy := worldToScreen(cam, tf.X, tf.Z)
		radius := cfg.Render.PlayerRadiusPx

		// Shadow stays on the ground while the disc lifts with jump height.
		shadow := color.RGBA{A: cfg.Render.ShadowAlpha}
		shadowR := radius * float32(1/(1+tf.Y*0.15))
		vector.DrawFilledCircle(screen, gx, gy, shadowR, shadow, true)

		py := gy - float32(tf.Y*cfg.Render.JumpPixelsPerM)
		vector.DrawFilledCircle(screen, gx, py, radius, discColor, true)

		// Facing marker along the yaw forward vector.
		fx := gx + float32(-math.Sin(tf.Yaw))*cfg.Render.FacingMarkerLen
		fy := py + float32(-math.Cos(tf.Yaw))*cfg.Render.FacingMarkerLen
		vector.StrokeLine(screen, gx, py, fx, fy, 2, cfg.White, true)

		if state != nil && state.Name != "" {
			labelX := int(gx) - len(state.Name)*3
			labelY := int(py) - int(radius) - cfg.Render.NameLabelOffset/2
			text.Draw(screen, state.Name, smallFont, labelX, labelY, cfg.White)
		}
	})
}
