package messages

// PlayerInput is sent from client to server with the player's current input
// state. Sequence is assigned by the client's input sampler, never reused,
// and is the correlation key between a command and the snapshot that
// acknowledges it.
type PlayerInput struct {
	Sequence uint32

	// Movement flags
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
	Sprint   bool
	Jump     bool

	// Action flags
	Attack bool
	Cast   bool

	// Facing. Yaw is client-authoritative: the server stores it and never
	// corrects it back.
	Yaw                          float64
	ForwardX, ForwardY, ForwardZ float64

	// Animation label chosen client-side, echoed by the server to everyone.
	Animation string

	// Client send timestamp (Unix ms), diagnostic only.
	Timestamp int64
}

// Moving reports whether any movement flag is set.
func (p PlayerInput) Moving() bool {
	return p.Forward || p.Backward || p.Left || p.Right
}

// SameControls reports whether two commands request the same movement,
// actions, and (within tolerance) facing — i.e. resending o after p would
// tell the server nothing new.
func (p PlayerInput) SameControls(o PlayerInput) bool {
	const yawTolerance = 0.01
	dyaw := p.Yaw - o.Yaw
	if dyaw < 0 {
		dyaw = -dyaw
	}
	return p.Forward == o.Forward &&
		p.Backward == o.Backward &&
		p.Left == o.Left &&
		p.Right == o.Right &&
		p.Sprint == o.Sprint &&
		p.Jump == o.Jump &&
		p.Attack == o.Attack &&
		p.Cast == o.Cast &&
		p.Animation == o.Animation &&
		dyaw <= yawTolerance
}
