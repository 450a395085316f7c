package scenes

import (
	"image/color"
	"log"
	"sync"

	"github.com/ferngale/spellarena-mp/archetypes"
	"github.com/ferngale/spellarena-mp/assets"
	"github.com/ferngale/spellarena-mp/components"
	cfg "github.com/ferngale/spellarena-mp/config"
	"github.com/ferngale/spellarena-mp/network"
	"github.com/ferngale/spellarena-mp/shared/arenadata"
	"github.com/ferngale/spellarena-mp/shared/gamemath"
	"github.com/ferngale/spellarena-mp/shared/netcomponents"
	"github.com/ferngale/spellarena-mp/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

type NetworkedScene struct {
	ecsWorld     *ecs.ECS
	sceneChanger SceneChanger
	netClient    *network.Client
	prediction   *systems.NetPrediction
	diag         *systems.NetDiag
	arena        *arenadata.Arena
	once         sync.Once
	presentIDs   map[esync.NetworkId]bool
}

func NewNetworkedScene(sc SceneChanger, client *network.Client) *NetworkedScene {
	return &NetworkedScene{
		sceneChanger: sc,
		netClient:    client,
		prediction:   systems.NewNetPrediction(),
		presentIDs:   make(map[esync.NetworkId]bool),
	}
}

func (ns *NetworkedScene) Update() {
	ns.once.Do(ns.configure)

	state := ns.netClient.State()
	if state == network.StateDisconnected || state == network.StateError {
		log.Println("[networked] disconnected, returning to menu")
		ns.netClient.Disconnect()
		ns.prediction.Reset()
		ns.sceneChanger.ChangeScene(NewMenuScene(ns.sceneChanger))
		return
	}

	// Apply every queued snapshot in arrival order; skipping one could skip
	// an entity spawn or despawn.
	for _, snap := range ns.netClient.DrainSnapshots() {
		ns.applySnapshot(snap)
	}

	for _, evt := range ns.netClient.DrainCastEvents() {
		systems.SpawnCastFX(ns.ecsWorld, components.FXCast, evt.X, evt.Z)
	}
	for _, evt := range ns.netClient.DrainAttackEvents() {
		systems.SpawnCastFX(ns.ecsWorld, components.FXAttack, evt.X, evt.Z)
	}

	ns.ecsWorld.Update()
}

func (ns *NetworkedScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	if ns.ecsWorld == nil {
		return
	}

	ns.ecsWorld.Draw(screen)
}

func (ns *NetworkedScene) configure() {
	arena, err := assets.LoadArena(ns.netClient.Arena())
	if err != nil {
		log.Printf("[networked] failed to load arena %q: %v", ns.netClient.Arena(), err)
		arena = &arenadata.Arena{Name: "fallback", Width: 64, Depth: 64}
	}
	ns.arena = arena

	ns.ecsWorld = ecs.NewECS(donburi.NewWorld())

	cameraEntry := archetypes.Camera.Spawn(ns.ecsWorld)
	components.Camera.SetValue(cameraEntry, components.CameraData{
		X:    arena.Width / 2,
		Z:    arena.Depth / 2,
		Zoom: cfg.Camera.PixelsPerMeter,
	})

	// Prediction collides against the same arena data the server uses. The
	// first snapshot warps the footprint to the actual spawn.
	ns.prediction.InitCollision(arena, arena.Width/2, arena.Depth/2)

	sendFn := func(msg any) error {
		if ns.netClient.State() != network.StateJoinedGame {
			return nil
		}
		return ns.netClient.SendMessage(msg)
	}
	localNetID := func() esync.NetworkId {
		return ns.netClient.NetworkID()
	}

	ns.diag = systems.NewNetDiag(ns.prediction)

	ns.ecsWorld.AddSystem(systems.NewNetworkInputSystem(sendFn, ns.prediction, localNetID))
	ns.ecsWorld.AddSystem(systems.NewNetInterpSystem(localNetID))
	ns.ecsWorld.AddSystem(systems.UpdateCastFX)
	ns.ecsWorld.AddSystem(systems.NewNetCameraSystem(localNetID, arena))
	ns.ecsWorld.AddSystem(ns.diag.Update)

	ns.ecsWorld.AddRenderer(cfg.Default, systems.NewDrawArenaSystem(arena))
	ns.ecsWorld.AddRenderer(cfg.Default, systems.DrawCastFX)
	ns.ecsWorld.AddRenderer(cfg.Default, systems.DrawNetworkedPlayers)
	ns.ecsWorld.AddRenderer(cfg.Default, ns.diag.DrawHUD)
}

func (ns *NetworkedScene) applySnapshot(snap network.TimedSnapshot) {
	world := ns.ecsWorld.World
	myNetID := ns.netClient.NetworkID()

	clear(ns.presentIDs)

	for _, ent := range snap.Snapshot {
		ns.presentIDs[ent.Id] = true

		var compData []any
		for _, componentBytes := range ent.State {
			instance, err := esync.Mapper.Deserialize(componentBytes)
			if err != nil {
				continue
			}
			compData = append(compData, instance)
		}

		isLocal := ent.Id == myNetID

		entity := esync.FindByNetworkId(world, ent.Id)
		if !world.Valid(entity) {
			ctypes := componentTypesFromInstances(compData)
			if isLocal {
				ctypes = append(ctypes, components.LocalPlayer)
			} else {
				ctypes = append(ctypes, components.NetInterp)
			}
			entity = world.Create(ctypes...)

			entry := world.Entry(entity)
			entry.AddComponent(esync.NetworkIdComponent)
			esync.NetworkIdComponent.SetValue(entry, ent.Id)
		}

		entry := world.Entry(entity)

		if isLocal {
			ns.reconcileLocal(entry, compData, snap)
		} else {
			ns.applyRemote(entry, compData, snap)
		}
	}

	esync.NetworkEntityQuery.Each(world, func(entry *donburi.Entry) {
		id := esync.GetNetworkId(entry)
		if id == nil {
			return
		}
		if !ns.presentIDs[*id] {
			entry.Remove()
		}
	})
}

// reconcileLocal handles server state for the local player. The position is
// never overwritten wholesale after spawn; the reconciler blends toward the
// server's result for the acknowledged input instead.
func (ns *NetworkedScene) reconcileLocal(entry *donburi.Entry, compData []any, snap network.TimedSnapshot) {
	var serverTf *netcomponents.NetTransformData
	var serverState *netcomponents.NetPlayerStateData

	for _, data := range compData {
		switch v := data.(type) {
		case netcomponents.NetTransformData:
			cp := v
			serverTf = &cp
		case netcomponents.NetPlayerStateData:
			cp := v
			serverState = &cp
		}
	}

	if serverState != nil {
		if !entry.HasComponent(netcomponents.NetPlayerState) {
			entry.AddComponent(netcomponents.NetPlayerState)
		}
		local := netcomponents.NetPlayerState.Get(entry)
		local.Name = serverState.Name
		local.Health = serverState.Health
		local.LastSequence = serverState.LastSequence
		local.IsLocal = true
		// Animation stays client-authoritative for the local player.
	}

	if serverTf == nil {
		return
	}
	if !entry.HasComponent(netcomponents.NetTransform) {
		entry.AddComponent(netcomponents.NetTransform)
	}

	serverPos := serverTf.Pos()

	if !ns.prediction.Initialized || serverState == nil || serverState.LastSequence == 0 {
		// Spawn or pre-input snapshot: accept wholesale.
		ns.prediction.ApplySpawn(serverPos)
		tf := netcomponents.NetTransform.Get(entry)
		tf.SetPos(serverPos)
		if entry.HasComponent(components.LocalPlayer) {
			lp := components.LocalPlayer.Get(entry)
			lp.State = gamemath.MoveState{Pos: serverPos}
		}
		return
	}

	if ns.prediction.Reconcile(serverPos, serverState.LastSequence, snap.ReceivedAt) {
		tf := netcomponents.NetTransform.Get(entry)
		tf.SetPos(ns.prediction.State.Pos)
		if entry.HasComponent(components.LocalPlayer) {
			components.LocalPlayer.Get(entry).State = ns.prediction.State
		}
	}
}

// applyRemote buffers the transform for delayed interpolation and applies
// discrete state directly.
func (ns *NetworkedScene) applyRemote(entry *donburi.Entry, compData []any, snap network.TimedSnapshot) {
	for _, data := range compData {
		switch v := data.(type) {
		case netcomponents.NetTransformData:
			if !entry.HasComponent(netcomponents.NetTransform) {
				entry.AddComponent(netcomponents.NetTransform)
			}
			if entry.HasComponent(components.NetInterp) {
				interp := components.NetInterp.Get(entry)
				interp.Ring.Push(components.TimedPose{
					X:   v.X,
					Y:   v.Y,
					Z:   v.Z,
					Yaw: v.Yaw,
					At:  snap.ReceivedAt,
				})
				if !interp.Initialized {
					// First sight of this player: place them immediately
					// instead of easing in from the origin.
					netcomponents.NetTransform.SetValue(entry, v)
				}
			} else {
				netcomponents.NetTransform.SetValue(entry, v)
			}

		case netcomponents.NetPlayerStateData:
			if !entry.HasComponent(netcomponents.NetPlayerState) {
				entry.AddComponent(netcomponents.NetPlayerState)
			}
			v.IsLocal = false
			netcomponents.NetPlayerState.SetValue(entry, v)
		}
	}
}

func componentTypesFromInstances(compData []any) []donburi.IComponentType {
	var ctypes []donburi.IComponentType
	for _, data := range compData {
		switch data.(type) {
		case netcomponents.NetTransformData:
			ctypes = append(ctypes, netcomponents.NetTransform)
		case netcomponents.NetPlayerStateData:
			ctypes = append(ctypes, netcomponents.NetPlayerState)
		}
	}
	return ctypes
}
