// Package proxy implements the protocol proxy's client-facing side: the
// handshake/status/login dance vanilla clients expect, terminating at the
// point a player is ready to be handed off to the world server. It reuses
// internal/netio for framing and internal/proto for the version enum, but
// parses the handshake/status/login packets directly since they happen
// before a Version is known and so can't go through internal/proto's
// per-version tables.
package proxy

import (
	"encoding/json"
	"errors"
	"net"
	"time"

	"github.com/google/uuid"
	"github.com/vibeshit/mcserver/internal/netio"
	"github.com/vibeshit/mcserver/internal/proto"
	"github.com/vibeshit/mcserver/internal/varint"
)

const (
	nextStateStatus = 1
	nextStateLogin  = 2
)

// StatusInfo is the data rendered into a server list ping response.
type StatusInfo struct {
	MOTD       string
	MaxPlayers int
	Online     int
}

// LoginResult is what a successful login handshake yields: a player ready
// to be hand off to the world server over internal/ipc.
type LoginResult struct {
	Username string
	UUID     uuid.UUID
	Version  proto.Version
}

var errUnsupportedVersion = errors.New("proxy: unsupported protocol version")

// HandleConnection runs the handshake/status/login state machine for one
// freshly accepted client connection. status is called for a status-state
// ping; on a successful login it returns the negotiated player and leaves
// conn positioned right after LoginSuccess, ready for the world server's
// play-state packets. Any other outcome (status-only connection, error,
// unsupported version) returns a zero LoginResult with ok false; the caller
// should close conn either way.
func HandleConnection(conn net.Conn, status func() StatusInfo) (LoginResult, bool) {
	r := netio.NewReader(conn)
	w := netio.NewWriter(conn)

	conn.SetReadDeadline(time.Now().Add(30 * time.Second))
	_, body, err := r.ReadPacket()
	if err != nil {
		return LoginResult{}, false
	}
	protocolVersion, nextState, err := decodeHandshake(body)
	if err != nil {
		return LoginResult{}, false
	}

	switch nextState {
	case nextStateStatus:
		handleStatus(r, w, status)
		return LoginResult{}, false
	case nextStateLogin:
		return handleLogin(r, w, protocolVersion)
	default:
		return LoginResult{}, false
	}
}

func decodeHandshake(body []byte) (protocolVersion int32, nextState int32, err error) {
	protocolVersion, n, err := varint.ReadVarInt(body)
	if err != nil || n == 0 {
		return 0, 0, errors.New("proxy: malformed handshake")
	}
	off := n
	_, n, err = varint.ReadString(body[off:], 0, 255)
	if err != nil {
		return 0, 0, err
	}
	off += n
	off += 2 // server port, u16
	nextState, n, err = varint.ReadVarInt(body[off:])
	if err != nil || n == 0 {
		return 0, 0, errors.New("proxy: malformed handshake")
	}
	return protocolVersion, nextState, nil
}

func handleStatus(r *netio.Reader, w *netio.Writer, status func() StatusInfo) {
	_, _, err := r.ReadPacket() // status request, no body
	if err != nil {
		return
	}
	info := status()
	resp := map[string]any{
		"version": map[string]any{"name": proto.Latest.String(), "protocol": proto.Latest.ProtocolNumber()},
		"players": map[string]any{"max": info.MaxPlayers, "online": info.Online, "sample": []any{}},
		"description": map[string]any{"text": info.MOTD},
	}
	payload, err := json.Marshal(resp)
	if err != nil {
		return
	}
	w.WritePacket(0x00, varint.AppendString(nil, string(payload)))

	_, body, err := r.ReadPacket() // ping
	if err != nil {
		return
	}
	w.WritePacket(0x01, body)
}

func handleLogin(r *netio.Reader, w *netio.Writer, protocolVersion int32) (LoginResult, bool) {
	_, body, err := r.ReadPacket()
	if err != nil {
		return LoginResult{}, false
	}
	username, _, err := varint.ReadString(body, 0, 16)
	if err != nil {
		return LoginResult{}, false
	}

	version, ok := proto.VersionByProtocolNumber(protocolVersion)
	if !ok {
		return LoginResult{}, false
	}

	id := uuid.NewMD5(uuid.Nil, []byte("OfflinePlayer:"+username))

	buf := varint.AppendString(nil, id.String())
	buf = varint.AppendString(buf, username)
	if err := w.WritePacket(0x02, buf); err != nil {
		return LoginResult{}, false
	}
	return LoginResult{Username: username, UUID: id, Version: version}, true
}
