package core

import (
	"log"
	"sync"

	"github.com/ferngale/spellarena-mp/shared/arenadata"
	"github.com/ferngale/spellarena-mp/shared/gamemath"
	"github.com/ferngale/spellarena-mp/shared/messages"
	"github.com/ferngale/spellarena-mp/shared/netcomponents"
	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/esync/srvsync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
	"github.com/yohamta/donburi"
	"golang.org/x/time/rate"
)

// Server owns the authoritative world: one entity and one movement session
// per joined client.
type Server struct {
	cfg   Config
	world donburi.World
	loop  *GameLoop
	arena *arenadata.Arena

	transport *transports.WsServerTransport

	sessions     map[*router.NetworkClient]*playerSession
	mu           sync.RWMutex
	spawnCounter int
}

// playerSession is per-client server-side state. It is never synced; only
// the derived NetTransform/NetPlayerState components are.
type playerSession struct {
	entity   donburi.Entity
	collider *arenadata.Collider

	state    gamemath.MoveState
	prevJump bool

	// Latched input: the last command received keeps applying every tick
	// until the next one arrives.
	input    messages.PlayerInput
	hasInput bool
	lastSeq  uint32

	prevAttack bool
	prevCast   bool

	name    string
	joined  bool
	limiter *rate.Limiter
}

// NewServer creates a new game server simulating the given arena.
func NewServer(cfg Config, arena *arenadata.Arena) *Server {
	world := donburi.NewWorld()

	s := &Server{
		cfg:      cfg,
		world:    world,
		arena:    arena,
		sessions: make(map[*router.NetworkClient]*playerSession),
	}
	s.loop = NewGameLoop(s, cfg.TickRate)

	srvsync.UseEsync(world)
	s.setupRouterCallbacks()

	return s
}

// Start begins the server on the configured port. Blocks.
func (s *Server) Start() error {
	go s.loop.Run()

	s.transport = transports.NewWsServerTransport(s.cfg.Port, "", nil)
	return s.transport.Start()
}

// Stop gracefully shuts down the server
func (s *Server) Stop() {
	s.loop.Stop()
}

func (s *Server) setupRouterCallbacks() {
	router.OnConnect(func(client *router.NetworkClient) {
		s.onConnect(client)
	})

	router.OnDisconnect(func(client *router.NetworkClient, err error) {
		s.onDisconnect(client, err)
	})

	router.On(func(client *router.NetworkClient, req messages.JoinRequest) {
		s.onJoinRequest(client, req)
	})

	router.On(func(client *router.NetworkClient, input messages.PlayerInput) {
		s.onPlayerInput(client, input)
	})

	router.OnError(func(client *router.NetworkClient, err error) {
		log.Printf("[server] client error: %v", err)
	})
}

func (s *Server) onConnect(client *router.NetworkClient) {
	log.Printf("[server] client connected: %s", client.Id())
	// The entity is not spawned until the join handshake completes.
}

func (s *Server) onJoinRequest(client *router.NetworkClient, req messages.JoinRequest) {
	if s.cfg.Version != "" && req.Version != s.cfg.Version {
		log.Printf("[server] rejecting %s: version %q, want %q", client.Id(), req.Version, s.cfg.Version)
		s.send(client, messages.JoinRejected{Reason: "version mismatch, server requires " + s.cfg.Version})
		return
	}

	s.mu.Lock()
	if _, exists := s.sessions[client]; exists {
		s.mu.Unlock()
		return
	}
	if len(s.sessions) >= s.cfg.MaxPlayers {
		s.mu.Unlock()
		s.send(client, messages.JoinRejected{Reason: "server full"})
		return
	}

	spawn := s.arena.SpawnFor(s.spawnCounter)
	s.spawnCounter++

	name := req.PlayerName
	if name == "" {
		name = "mage"
	}

	entity := s.world.Create(
		netcomponents.NetTransform,
		netcomponents.NetPlayerState,
	)
	entry := s.world.Entry(entity)

	netcomponents.NetTransform.Set(entry, &netcomponents.NetTransformData{
		X: spawn.X,
		Z: spawn.Z,
	})
	netcomponents.NetPlayerState.Set(entry, &netcomponents.NetPlayerStateData{
		Name:      name,
		Animation: "idle",
		Health:    100,
	})

	if err := srvsync.NetworkSync(s.world, &entity,
		srvsync.WithInterp(netcomponents.NetTransform),
		netcomponents.NetPlayerState,
	); err != nil {
		s.mu.Unlock()
		log.Printf("[server] failed to set up sync for %s: %v", client.Id(), err)
		s.send(client, messages.JoinRejected{Reason: "internal error"})
		return
	}

	session := &playerSession{
		entity:   entity,
		collider: arenadata.NewCollider(s.arena, spawn.X, spawn.Z),
		state:    gamemath.MoveState{Pos: gamemath.Vec3{X: spawn.X, Z: spawn.Z}},
		name:     name,
		joined:   true,
		limiter:  rate.NewLimiter(rate.Limit(s.cfg.InputRate), s.cfg.InputBurst),
	}
	s.sessions[client] = session
	s.mu.Unlock()

	var netID esync.NetworkId
	if id := esync.GetNetworkId(s.world.Entry(entity)); id != nil {
		netID = *id
	}

	log.Printf("[server] %s joined as %q (netID=%d, spawn %d at %.0f,%.0f)",
		client.Id(), name, netID, spawn.Index, spawn.X, spawn.Z)

	s.send(client, messages.JoinAccepted{
		NetworkID:  netID,
		ServerName: s.cfg.Name,
		TickRate:   s.cfg.TickRate,
		Arena:      s.arena.Name,
	})
}

func (s *Server) onDisconnect(client *router.NetworkClient, err error) {
	if err != nil {
		log.Printf("[server] client %s disconnected with error: %v", client.Id(), err)
	} else {
		log.Printf("[server] client %s disconnected", client.Id())
	}

	s.mu.Lock()
	session, exists := s.sessions[client]
	if exists {
		delete(s.sessions, client)
	}
	s.mu.Unlock()

	if !exists {
		return
	}

	session.collider.Remove()
	if s.world.Valid(session.entity) {
		s.world.Remove(session.entity)
	}
}

// onPlayerInput latches the newest command for the next ticks and broadcasts
// rising-edge combat events.
func (s *Server) onPlayerInput(client *router.NetworkClient, input messages.PlayerInput) {
	s.mu.Lock()
	session, exists := s.sessions[client]
	if !exists {
		s.mu.Unlock()
		return
	}

	if !session.limiter.Allow() {
		s.mu.Unlock()
		log.Printf("[server] dropping input from %s: rate limit exceeded", client.Id())
		return
	}

	// Stale or replayed command: the sequence must move forward.
	if session.hasInput && input.Sequence <= session.lastSeq {
		s.mu.Unlock()
		return
	}

	attackEdge := input.Attack && !session.prevAttack
	castEdge := input.Cast && !session.prevCast
	session.prevAttack = input.Attack
	session.prevCast = input.Cast

	session.input = input
	session.hasInput = true
	session.lastSeq = input.Sequence

	var netID esync.NetworkId
	if s.world.Valid(session.entity) {
		if id := esync.GetNetworkId(s.world.Entry(session.entity)); id != nil {
			netID = *id
		}
	}
	pos := session.state.Pos
	s.mu.Unlock()

	if attackEdge {
		s.broadcast(messages.AttackEvent{AttackerNetworkID: uint(netID), X: pos.X, Y: pos.Y, Z: pos.Z})
	}
	if castEdge {
		s.broadcast(messages.CastEvent{CasterNetworkID: uint(netID), X: pos.X, Y: pos.Y, Z: pos.Z})
	}
}

func (s *Server) send(client *router.NetworkClient, msg any) {
	if err := client.SendMessage(msg); err != nil {
		log.Printf("[server] send to %s failed: %v", client.Id(), err)
	}
}

func (s *Server) broadcast(msg any) {
	s.mu.RLock()
	clients := make([]*router.NetworkClient, 0, len(s.sessions))
	for client := range s.sessions {
		clients = append(clients, client)
	}
	s.mu.RUnlock()

	for _, client := range clients {
		s.send(client, msg)
	}
}

// ProcessCommands advances every player's movement for one server tick.
func (s *Server) ProcessCommands() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updateMovement()
}

// World returns the ECS world
func (s *Server) World() donburi.World {
	return s.world
}

// PlayerCount returns the number of joined players
func (s *Server) PlayerCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
