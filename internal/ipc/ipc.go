// Package ipc implements the internal proxy<->world stream: a bidirectional
// stream of packet frames, length-prefixed the same way as the
// client-facing wire (internal/netio) but with no compression and no
// encryption. Each stream opens with a Login frame carrying
// (username, uuid, protocol_version), after which both sides hand off to
// ordinary netio.Reader/Writer framing. The frames are the client's own
// on-wire packets, relayed unchanged by cmd/proxy; nothing on this hop
// translates them to canonical ids, which the world server's player
// session does for the protocol version named in the Login frame.
//
// A single proxy process fronts many players over one multiplexed pipe to
// the world server: one yamux session per proxy<->world TCP connection, one
// yamux stream per logged-in player. This is a deliberate change from a
// one-TCP-connection-per-player deployment; a direct, unmultiplexed dial
// still works unmodified since the per-stream framing is identical either
// way.
package ipc

import (
	"net"

	"github.com/google/uuid"
	"github.com/hashicorp/yamux"
	"github.com/vibeshit/mcserver/internal/netio"
	"github.com/vibeshit/mcserver/internal/varint"
)

// Login is the frame that opens every proxy->world stream.
type Login struct {
	Username        string
	UUID            uuid.UUID
	ProtocolVersion int32
}

func encodeLogin(l Login) []byte {
	buf := varint.AppendString(nil, l.Username)
	buf = append(buf, l.UUID[:]...)
	buf = varint.WriteVarInt(buf, l.ProtocolVersion)
	return buf
}

func decodeLogin(buf []byte) (Login, error) {
	var l Login
	name, n, err := varint.ReadString(buf, 0, 16)
	if err != nil {
		return l, err
	}
	off := n
	if off+16 > len(buf) {
		return l, errShortLogin
	}
	copy(l.UUID[:], buf[off:off+16])
	off += 16
	version, _, err := varint.ReadVarInt(buf[off:])
	if err != nil {
		return l, err
	}
	l.Username, l.ProtocolVersion = name, version
	return l, nil
}

var errShortLogin = &loginError{"short login frame"}

type loginError struct{ reason string }

func (e *loginError) Error() string { return "ipc: " + e.reason }

// Session wraps one multiplexed proxy<->world TCP connection.
type Session struct {
	mux *yamux.Session
}

// Stream is one player's bidirectional packet-frame pipe inside a
// Session, framed identically to the client-facing wire minus compression
// and encryption.
type Stream struct {
	Conn   net.Conn
	Reader *netio.Reader
	Writer *netio.Writer
}

func (s *Stream) Close() error { return s.Conn.Close() }

// Listen opens a TCP listener on addr; the world server calls this once at
// startup and passes each accepted proxy connection to ServeSession.
func Listen(addr string) (net.Listener, error) {
	return net.Listen("tcp", addr)
}

// ServeSession turns one accepted TCP connection into a yamux server
// session, ready to Accept player streams.
func ServeSession(conn net.Conn) (*Session, error) {
	mux, err := yamux.Server(conn, nil)
	if err != nil {
		return nil, err
	}
	return &Session{mux: mux}, nil
}

// Dial opens a multiplexed client session to the world server; the proxy
// calls this once at startup and keeps the session open for the process
// lifetime, opening one new Stream per incoming player login.
func Dial(addr string) (*Session, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, err
	}
	mux, err := yamux.Client(conn, nil)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return &Session{mux: mux}, nil
}

func (s *Session) Close() error { return s.mux.Close() }

// Accept blocks for the next incoming player stream and reads its Login
// frame before returning the stream for ordinary packet-frame use.
func (s *Session) Accept() (*Stream, Login, error) {
	conn, err := s.mux.Accept()
	if err != nil {
		return nil, Login{}, err
	}
	r := netio.NewReader(conn)
	_, body, err := r.ReadPacket()
	if err != nil {
		conn.Close()
		return nil, Login{}, err
	}
	login, err := decodeLogin(body)
	if err != nil {
		conn.Close()
		return nil, Login{}, err
	}
	return &Stream{Conn: conn, Reader: r, Writer: netio.NewWriter(conn)}, login, nil
}

// Open opens a new stream for login and sends its Login frame, returning
// the stream ready for the world server's reply.
func (s *Session) Open(login Login) (*Stream, error) {
	conn, err := s.mux.Open()
	if err != nil {
		return nil, err
	}
	w := netio.NewWriter(conn)
	if err := w.WritePacket(0, encodeLogin(login)); err != nil {
		conn.Close()
		return nil, err
	}
	return &Stream{Conn: conn, Reader: netio.NewReader(conn), Writer: w}, nil
}
