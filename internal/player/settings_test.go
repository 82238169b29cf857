package player

import (
	"net"
	"testing"

	"github.com/google/uuid"
	"github.com/vibeshit/mcserver/internal/netio"
	"github.com/vibeshit/mcserver/internal/plugin"
	"github.com/vibeshit/mcserver/internal/proto"
	"github.com/vibeshit/mcserver/internal/world"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	client, server := net.Pipe()
	t.Cleanup(func() { client.Close(); server.Close() })
	w := world.NewWorld("test", 1)
	return NewSession(server, netio.NewReader(server), netio.NewWriter(server), proto.V1_16_5, uuid.New(), "tester", w, plugin.NewRegistry(), 1)
}

func TestNewSessionDefaultsToServerViewRadius(t *testing.T) {
	s := newTestSession(t)
	if got := s.viewRadiusChunks(); got != viewRadius {
		t.Fatalf("viewRadiusChunks() = %d, want default %d", got, viewRadius)
	}
}

func TestClientSettingsNarrowsViewRadius(t *testing.T) {
	s := newTestSession(t)
	body := encodeTestClientSettings(t, s.version, proto.ClientSettings{
		Locale: "en_US", ViewDistance: 4, ChatMode: 0, ChatColors: true, SkinParts: 0x7f, MainHand: 1,
	})
	s.handlePacket(canonicalID(t, "ClientSettings"), body)

	if got := s.viewRadiusChunks(); got != 4 {
		t.Fatalf("viewRadiusChunks() = %d, want 4", got)
	}
	if got := s.Settings().SkinParts; got != 0x7f {
		t.Fatalf("SkinParts = %#x, want 0x7f", got)
	}
}

func TestClientSettingsClampsAboveServerViewRadius(t *testing.T) {
	s := newTestSession(t)
	body := encodeTestClientSettings(t, s.version, proto.ClientSettings{ViewDistance: 32})
	s.handlePacket(canonicalID(t, "ClientSettings"), body)

	if got := s.viewRadiusChunks(); got != viewRadius {
		t.Fatalf("viewRadiusChunks() = %d, want clamped default %d", got, viewRadius)
	}
}

func TestClientSettingsClampsBelowMinimum(t *testing.T) {
	s := newTestSession(t)
	body := encodeTestClientSettings(t, s.version, proto.ClientSettings{ViewDistance: 0})
	s.handlePacket(canonicalID(t, "ClientSettings"), body)

	if got := s.viewRadiusChunks(); got != 2 {
		t.Fatalf("viewRadiusChunks() = %d, want minimum 2", got)
	}
}

func encodeTestClientSettings(t *testing.T, v proto.Version, pkt proto.ClientSettings) []byte {
	t.Helper()
	return proto.EncodeBody(&pkt, v)
}

func canonicalID(t *testing.T, name string) int32 {
	t.Helper()
	id, ok := proto.CanonicalID(name)
	if !ok {
		t.Fatalf("no canonical id for %s", name)
	}
	return id
}
