package network

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/ferngale/spellarena-mp/shared/messages"
	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
)

type ClientState int

const (
	StateDisconnected ClientState = iota
	StateConnecting
	StateConnected
	StateJoinedGame
	StateError
)

// TimedSnapshot is a world snapshot stamped with its client arrival time.
// The server clock is never trusted for ordering.
type TimedSnapshot struct {
	Snapshot   esync.WorldSnapshot
	ReceivedAt time.Time
}

// Client manages a WebSocket connection to the arena server.
// All shared fields are protected by mu (router callbacks run on necs
// goroutines). Callbacks only ever enqueue inbound data; nothing in here
// touches game state directly.
type Client struct {
	mu sync.RWMutex

	state      ClientState
	lastError  error
	networkID  esync.NetworkId
	serverName string
	tickRate   int
	arena      string
	conn       *websocket.Conn

	// Inbound queues, drained in arrival order once per update tick.
	snapshotCh chan TimedSnapshot
	castCh     chan messages.CastEvent
	attackCh   chan messages.AttackEvent
}

func NewClient() *Client {
	return &Client{
		state:      StateDisconnected,
		snapshotCh: make(chan TimedSnapshot, 64),
		castCh:     make(chan messages.CastEvent, 16),
		attackCh:   make(chan messages.AttackEvent, 16),
	}
}

// Connect dials the server in a background goroutine and initiates the join
// handshake.
func (c *Client) Connect(address, version, playerName string) {
	c.mu.Lock()
	c.state = StateConnecting
	c.lastError = nil
	c.mu.Unlock()

	router.OnConnect(func(_ *router.NetworkClient) {
		log.Println("[client] connected to server")
		c.mu.Lock()
		c.state = StateConnected
		c.mu.Unlock()

		payload, err := router.Serialize(messages.JoinRequest{
			Version:    version,
			PlayerName: playerName,
		})
		if err != nil {
			c.setError(fmt.Errorf("failed to serialize join request: %w", err))
			return
		}

		c.mu.RLock()
		conn := c.conn
		c.mu.RUnlock()

		if conn != nil {
			if err := conn.Write(context.Background(), websocket.MessageBinary, payload); err != nil {
				c.setError(fmt.Errorf("failed to send join request: %w", err))
			}
		}
	})

	router.On(func(_ *router.NetworkClient, msg messages.JoinAccepted) {
		log.Printf("[client] join accepted: networkID=%d server=%s tickRate=%d arena=%s",
			msg.NetworkID, msg.ServerName, msg.TickRate, msg.Arena)
		c.mu.Lock()
		c.networkID = msg.NetworkID
		c.serverName = msg.ServerName
		c.tickRate = msg.TickRate
		c.arena = msg.Arena
		c.state = StateJoinedGame
		c.mu.Unlock()
	})

	router.On(func(_ *router.NetworkClient, msg messages.JoinRejected) {
		log.Printf("[client] join rejected: %s", msg.Reason)
		c.setError(fmt.Errorf("join rejected: %s", msg.Reason))
	})

	router.On(func(_ *router.NetworkClient, snapshot esync.WorldSnapshot) {
		timed := TimedSnapshot{Snapshot: snapshot, ReceivedAt: time.Now()}
		select {
		case c.snapshotCh <- timed:
		default:
			// Queue full: drop the oldest so the newest always lands.
			select {
			case <-c.snapshotCh:
			default:
			}
			select {
			case c.snapshotCh <- timed:
			default:
			}
		}
	})

	router.On(func(_ *router.NetworkClient, evt messages.CastEvent) {
		select {
		case c.castCh <- evt:
		default:
		}
	})

	router.On(func(_ *router.NetworkClient, evt messages.AttackEvent) {
		select {
		case c.attackCh <- evt:
		default:
		}
	})

	router.OnDisconnect(func(_ *router.NetworkClient, err error) {
		log.Printf("[client] disconnected: %v", err)
		c.mu.Lock()
		if c.state != StateError {
			c.state = StateDisconnected
		}
		c.conn = nil
		c.mu.Unlock()
	})

	router.OnError(func(_ *router.NetworkClient, err error) {
		log.Printf("[client] error: %v", err)
	})

	go func() {
		transport := transports.NewWsClientTransport("ws://" + address)
		err := transport.Start(func(conn *websocket.Conn) {
			c.mu.Lock()
			c.conn = conn
			c.mu.Unlock()
		})
		if err != nil {
			c.setError(fmt.Errorf("connection failed: %w", err))
		}
	}()
}

func (c *Client) Disconnect() {
	c.mu.Lock()
	conn := c.conn
	c.state = StateDisconnected
	c.conn = nil
	c.mu.Unlock()

	if conn != nil {
		_ = conn.CloseNow()
	}

	router.ResetRouter()
}

func (c *Client) State() ClientState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Client) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastError
}

func (c *Client) NetworkID() esync.NetworkId {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.networkID
}

func (c *Client) ServerName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.serverName
}

func (c *Client) TickRate() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tickRate
}

func (c *Client) Arena() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.arena
}

// DrainSnapshots returns all pending snapshots in arrival order,
// non-blocking. The caller applies every one so entity lifecycle changes are
// never skipped.
func (c *Client) DrainSnapshots() []TimedSnapshot {
	return drainChan(c.snapshotCh)
}

// DrainCastEvents returns all pending cast events, non-blocking.
func (c *Client) DrainCastEvents() []messages.CastEvent {
	return drainChan(c.castCh)
}

// DrainAttackEvents returns all pending attack events, non-blocking.
func (c *Client) DrainAttackEvents() []messages.AttackEvent {
	return drainChan(c.attackCh)
}

func (c *Client) SendMessage(msg any) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	if conn == nil {
		return fmt.Errorf("not connected")
	}

	payload, err := router.Serialize(msg)
	if err != nil {
		return fmt.Errorf("serialize: %w", err)
	}

	return conn.Write(context.Background(), websocket.MessageBinary, payload)
}

func (c *Client) setError(err error) {
	c.mu.Lock()
	c.state = StateError
	c.lastError = err
	c.mu.Unlock()
}

func drainChan[T any](ch chan T) []T {
	var out []T
	for {
		select {
		case v := <-ch:
			out = append(out, v)
		default:
			return out
		}
	}
}
