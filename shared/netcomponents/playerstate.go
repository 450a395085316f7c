package netcomponents

import "github.com/yohamta/donburi"

type NetPlayerStateData struct {
	Name      string
	Animation string
	Health    int

	// LastSequence is the last input sequence the server processed for this
	// player. Meaningful only to the owning client, which uses it for
	// prediction reconciliation and RTT measurement.
	LastSequence uint32

	IsLocal bool // client-side only, not synced
}

var NetPlayerState = donburi.NewComponentType[NetPlayerStateData]()
