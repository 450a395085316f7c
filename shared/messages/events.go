package messages

// CastEvent is broadcast when a player begins a spell cast, for client VFX.
type CastEvent struct {
	CasterNetworkID uint
	X, Y, Z         float64
}

// AttackEvent is broadcast when a player swings.
type AttackEvent struct {
	AttackerNetworkID uint
	X, Y, Z           float64
}
