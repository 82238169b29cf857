// Package world implements the world manager (C8): one World per dimension
// (a chunk store plus the set of players currently in it), EID allocation,
// and broadcast fan-out. It knows nothing about sockets or wire formats —
// PlayerHandle is the seam internal/player implements so this package never
// imports it back.
package world

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/vibeshit/mcserver/internal/chunk"
	"github.com/vibeshit/mcserver/internal/proto"
)

// PlayerHandle is the subset of a player session the world needs to drive
// broadcast and bookkeeping. internal/player.Session implements this.
type PlayerHandle interface {
	EntityID() int32
	UUID() uuid.UUID
	Username() string
	Version() proto.Version
	Position() (x, y, z float64, yaw, pitch float32)
	Send(pkt proto.Packet)
	Close()
}

// World holds one dimension's block state and the players currently in it.
type World struct {
	Name  string
	Store *chunk.Store

	mu      sync.RWMutex
	players map[int32]PlayerHandle // keyed by entity id
}

func NewWorld(name string, seed int64) *World {
	return &World{
		Name:    name,
		Store:   chunk.NewStore(seed),
		players: make(map[int32]PlayerHandle),
	}
}

// Join adds p to the world's player set, evicting any existing session with
// the same UUID first (a duplicate login replaces the stale connection
// rather than coexisting with it).
func (w *World) Join(p PlayerHandle) {
	w.mu.Lock()
	for eid, other := range w.players {
		if other.UUID() == p.UUID() {
			delete(w.players, eid)
			other.Close()
		}
	}
	w.players[p.EntityID()] = p
	w.mu.Unlock()
}

// Leave removes a player from the world's player map. Safe to call more
// than once for the same entity id.
func (w *World) Leave(eid int32) {
	w.mu.Lock()
	delete(w.players, eid)
	w.mu.Unlock()
}

// Players returns a snapshot of the currently joined players, safe to range
// over without holding the world's lock.
func (w *World) Players() []PlayerHandle {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]PlayerHandle, 0, len(w.players))
	for _, p := range w.players {
		out = append(out, p)
	}
	return out
}

// Player looks up a joined player by entity id.
func (w *World) Player(eid int32) (PlayerHandle, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	p, ok := w.players[eid]
	return p, ok
}

// Broadcast sends pkt to every joined player. except, if non-negative, is an
// entity id to skip (the player whose own action caused the broadcast
// usually predicts it client-side already).
func (w *World) Broadcast(pkt proto.Packet, except int32) {
	for _, p := range w.Players() {
		if p.EntityID() == except {
			continue
		}
		p.Send(pkt)
	}
}

// BroadcastNear sends pkt to every joined player within ViewDistance chunks
// of chunk cp, except the given entity id. The same ViewDistance radius
// applies to every player, whatever view distance the player requested.
func (w *World) BroadcastNear(pkt proto.Packet, cp chunk.ChunkPos, except int32) {
	for _, p := range w.Players() {
		if p.EntityID() == except {
			continue
		}
		px, _, pz, _, _ := p.Position()
		dx := int32(px) >> 4 - cp.X
		dz := int32(pz) >> 4 - cp.Z
		if dx < -ViewDistance || dx > ViewDistance || dz < -ViewDistance || dz > ViewDistance {
			continue
		}
		p.Send(pkt)
	}
}

// ViewDistance is the default number of chunks streamed around a player in
// each direction.
const ViewDistance = 10

// Manager owns every dimension and the atomic entity id counter shared
// across all of them, since entity ids must be globally unique for cross-
// world teleports to work cleanly even though this server only ships one
// dimension by default.
type Manager struct {
	nextEID atomic.Int32

	mu     sync.RWMutex
	worlds map[string]*World
}

func NewManager() *Manager {
	return &Manager{worlds: make(map[string]*World)}
}

// NextEntityID allocates a fresh, process-unique entity id.
func (m *Manager) NextEntityID() int32 {
	return m.nextEID.Add(1)
}

// AddWorld registers a world under its name, replacing any existing world
// of the same name.
func (m *Manager) AddWorld(w *World) {
	m.mu.Lock()
	m.worlds[w.Name] = w
	m.mu.Unlock()
}

// World looks up a registered world by name.
func (m *Manager) World(name string) (*World, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	w, ok := m.worlds[name]
	return w, ok
}

// Default returns the world named "overworld", the one every new session
// joins, creating it with the given seed on first use.
func (m *Manager) Default(seed int64) *World {
	const name = "overworld"
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.worlds[name]
	if !ok {
		w = NewWorld(name, seed)
		m.worlds[name] = w
	}
	return w
}
