package components

import (
	"github.com/ferngale/spellarena-mp/shared/gamemath"
	"github.com/yohamta/donburi"
)

// LocalPlayerData is the predicted movement state of the player this client
// controls. Pos here is what gets rendered; the server's authoritative
// position only reaches it through reconciliation.
type LocalPlayerData struct {
	State    gamemath.MoveState
	Yaw      float64
	PrevJump bool

	Sprinting bool
	Moving    bool
	Animation string
}

var LocalPlayer = donburi.NewComponentType[LocalPlayerData]()
