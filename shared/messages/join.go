package messages

import "github.com/leap-fish/necs/esync"

// JoinRequest is sent by a client after connecting to request joining the
// arena.
type JoinRequest struct {
	Version    string
	PlayerName string
	Arena      string
}

// JoinAccepted is sent by the server when a client's join request is
// accepted.
type JoinAccepted struct {
	NetworkID  esync.NetworkId
	ServerName string
	TickRate   int
	Arena      string
}

// JoinRejected is sent by the server when a client's join request is
// rejected.
type JoinRejected struct {
	Reason string
}
