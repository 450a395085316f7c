package components

import (
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"
)

// CastFXKind selects the visual for a transient combat effect.
type CastFXKind int

const (
	FXCast CastFXKind = iota
	FXAttack
)

// CastFXData is a short-lived ground-plane effect spawned from a broadcast
// combat event. Radius and Alpha are driven by tweens; the entity is removed
// once both finish.
type CastFXData struct {
	Kind CastFXKind
	X, Z float64

	Radius *gween.Tween
	Alpha  *gween.Tween

	CurRadius float32
	CurAlpha  float32
}

var CastFX = donburi.NewComponentType[CastFXData]()
