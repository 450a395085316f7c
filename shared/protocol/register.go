package protocol

import (
	"github.com/ferngale/spellarena-mp/shared/netcomponents"
	"github.com/leap-fish/necs/esync"
)

// Sync ID constants - ID 1 is reserved by necs for NetworkId
const (
	SyncIDNetTransform   uint = 10
	SyncIDNetPlayerState uint = 11
)

// Interpolation IDs (uint8 for WithInterpFn)
const (
	InterpIDNetTransform uint8 = 10
)

// RegisterComponents registers all network components with necs for
// serialization. Both server and client must call this before any network
// operation.
func RegisterComponents() error {
	// Transform interpolates for smooth client-side rendering.
	if err := esync.RegisterComponent(
		SyncIDNetTransform,
		netcomponents.NetTransformData{},
		netcomponents.NetTransform,
		esync.WithInterpFn(InterpIDNetTransform, netcomponents.LerpNetTransform),
	); err != nil {
		return err
	}

	// PlayerState: no interpolation (discrete state changes).
	return esync.RegisterComponent(
		SyncIDNetPlayerState,
		netcomponents.NetPlayerStateData{},
		netcomponents.NetPlayerState,
	)
}
