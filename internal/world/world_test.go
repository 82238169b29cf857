package world

import (
	"testing"

	"github.com/google/uuid"
	"github.com/vibeshit/mcserver/internal/chunk"
	"github.com/vibeshit/mcserver/internal/proto"
)

type fakePlayer struct {
	eid            int32
	id             uuid.UUID
	name           string
	x, y, z        float64
	closed         bool
	sent           []proto.Packet
}

func (f *fakePlayer) EntityID() int32     { return f.eid }
func (f *fakePlayer) UUID() uuid.UUID     { return f.id }
func (f *fakePlayer) Username() string    { return f.name }
func (f *fakePlayer) Version() proto.Version { return proto.V1_16_5 }
func (f *fakePlayer) Position() (x, y, z float64, yaw, pitch float32) {
	return f.x, f.y, f.z, 0, 0
}
func (f *fakePlayer) Send(pkt proto.Packet) { f.sent = append(f.sent, pkt) }
func (f *fakePlayer) Close()                { f.closed = true }

func TestJoinEvictsDuplicateUUID(t *testing.T) {
	w := NewWorld("test", 1)
	id := uuid.New()
	first := &fakePlayer{eid: 1, id: id}
	second := &fakePlayer{eid: 2, id: id}

	w.Join(first)
	w.Join(second)

	if !first.closed {
		t.Fatalf("stale session with the same UUID should be closed")
	}
	if _, ok := w.Player(1); ok {
		t.Fatalf("evicted session should no longer be in the player map")
	}
	if _, ok := w.Player(2); !ok {
		t.Fatalf("new session should be registered")
	}
}

func TestBroadcastSkipsExcludedPlayer(t *testing.T) {
	w := NewWorld("test", 1)
	a := &fakePlayer{eid: 1, id: uuid.New()}
	b := &fakePlayer{eid: 2, id: uuid.New()}
	w.Join(a)
	w.Join(b)

	w.Broadcast(proto.KeepAliveCb{ID: 7}, a.EntityID())

	if len(a.sent) != 0 {
		t.Fatalf("excluded player should not receive the broadcast")
	}
	if len(b.sent) != 1 {
		t.Fatalf("other player should receive the broadcast")
	}
}

func TestBroadcastNearRespectsViewDistance(t *testing.T) {
	w := NewWorld("test", 1)
	near := &fakePlayer{eid: 1, id: uuid.New(), x: 0, z: 0}
	far := &fakePlayer{eid: 2, id: uuid.New(), x: 16 * (ViewDistance + 5), z: 0}
	w.Join(near)
	w.Join(far)

	w.BroadcastNear(proto.KeepAliveCb{ID: 1}, chunk.ChunkPos{X: 0, Z: 0}, -1)

	if len(near.sent) != 1 {
		t.Fatalf("nearby player should receive the packet")
	}
	if len(far.sent) != 0 {
		t.Fatalf("far player should not receive the packet")
	}
}

func TestNextEntityIDIsUnique(t *testing.T) {
	m := NewManager()
	seen := make(map[int32]bool)
	for i := 0; i < 100; i++ {
		id := m.NextEntityID()
		if seen[id] {
			t.Fatalf("duplicate entity id %d", id)
		}
		seen[id] = true
	}
}

func TestManagerDefaultWorldIsSingleton(t *testing.T) {
	m := NewManager()
	a := m.Default(1)
	b := m.Default(1)
	if a != b {
		t.Fatalf("Default should return the same world instance on repeated calls")
	}
}
