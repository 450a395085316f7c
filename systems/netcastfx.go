package systems

import (
	"github.com/ferngale/spellarena-mp/archetypes"
	"github.com/ferngale/spellarena-mp/components"
	cfg "github.com/ferngale/spellarena-mp/config"
	"github.com/ferngale/spellarena-mp/shared/gamemath"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// SpawnCastFX creates an expanding ground ring for a broadcast cast or
// attack event.
func SpawnCastFX(e *ecs.ECS, kind components.CastFXKind, x, z float64) {
	radius := cfg.CastFX.CastRadius
	duration := cfg.CastFX.CastDuration
	if kind == components.FXAttack {
		radius = cfg.CastFX.AttackRadius
		duration = cfg.CastFX.AttackDuration
	}

	entry := archetypes.CastFX.Spawn(e)
	components.CastFX.SetValue(entry, components.CastFXData{
		Kind:   kind,
		X:      x,
		Z:      z,
		Radius: gween.New(0, radius, duration, ease.OutQuad),
		Alpha:  gween.New(1, 0, duration, ease.Linear),
	})
}

// UpdateCastFX advances effect tweens and removes finished effects.
func UpdateCastFX(e *ecs.ECS) {
	var finished []*donburi.Entry

	components.CastFX.Each(e.World, func(entry *donburi.Entry) {
		fx := components.CastFX.Get(entry)

		r, radiusDone := fx.Radius.Update(float32(gamemath.SimDelta))
		a, alphaDone := fx.Alpha.Update(float32(gamemath.SimDelta))
		fx.CurRadius = r
		fx.CurAlpha = a

		if radiusDone && alphaDone {
			finished = append(finished, entry)
		}
	})

	for _, entry := range finished {
		entry.Remove()
	}
}

// DrawCastFX renders active effect rings.
func DrawCastFX(e *ecs.ECS, screen *ebiten.Image) {
	camEntry, ok := components.Camera.First(e.World)
	if !ok {
		return
	}
	cam := components.Camera.Get(camEntry)
	zoom := cameraZoom(cam)

	components.CastFX.Each(e.World, func(entry *donburi.Entry) {
		fx := components.CastFX.Get(entry)

		clr := cfg.CastFX.CastColor
		if fx.Kind == components.FXAttack {
			clr = cfg.CastFX.AttackColor
		}
		clr.A = uint8(fx.CurAlpha * 255)

		sx, sy := worldToScreen(cam, fx.X, fx.Z)
		vector.StrokeCircle(screen, sx, sy, fx.CurRadius*zoom, 2, clr, true)
	})
}
