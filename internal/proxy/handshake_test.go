package proxy

import (
	"testing"

	"github.com/vibeshit/mcserver/internal/varint"
)

func buildHandshakeBody(protocolVersion int32, addr string, port uint16, nextState int32) []byte {
	buf := varint.WriteVarInt(nil, protocolVersion)
	buf = varint.AppendString(buf, addr)
	buf = varint.AppendUint16(buf, port)
	buf = varint.WriteVarInt(buf, nextState)
	return buf
}

func TestDecodeHandshakeStatus(t *testing.T) {
	body := buildHandshakeBody(754, "localhost", 25565, nextStateStatus)
	version, next, err := decodeHandshake(body)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if version != 754 || next != nextStateStatus {
		t.Fatalf("got version=%d next=%d", version, next)
	}
}

func TestDecodeHandshakeLogin(t *testing.T) {
	body := buildHandshakeBody(47, "play.example.com", 25565, nextStateLogin)
	version, next, err := decodeHandshake(body)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if version != 47 || next != nextStateLogin {
		t.Fatalf("got version=%d next=%d", version, next)
	}
}

func TestDecodeHandshakeRejectsTruncated(t *testing.T) {
	body := buildHandshakeBody(754, "localhost", 25565, nextStateStatus)
	if _, _, err := decodeHandshake(body[:2]); err == nil {
		t.Fatalf("expected an error for a truncated handshake")
	}
}
