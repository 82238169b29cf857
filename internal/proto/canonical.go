package proto

import "github.com/google/uuid"

// Canonical packet types. Each carries the fields needed by the widest
// supported version; fields only some versions populate are
// commented with which versions actually use them. Struct tags drive the
// reflective codec in codec.go for every packet whose shape is a flat
// sequence of simple reads; packets needing custom framing implement
// manualCodec in manual.go instead and carry no `mc` tags.

// --- Handshake ---

type Handshake struct {
	ProtocolVersion int32  `mc:"varint"`
	ServerAddress   string `mc:"string"`
	ServerPort      uint16 `mc:"u16"`
	NextState       int32  `mc:"varint"`
}

func (Handshake) PacketName() string { return "Handshake" }

// --- Status ---

type StatusRequest struct{}

func (StatusRequest) PacketName() string { return "StatusRequest" }

type StatusResponse struct {
	JSON string `mc:"string"`
}

func (StatusResponse) PacketName() string { return "StatusResponse" }

type PingPong struct {
	Payload int64 `mc:"i64"`
}

func (PingPong) PacketName() string { return "PingPong" }

// --- Login ---

type LoginStart struct {
	Username string `mc:"string"`
}

func (LoginStart) PacketName() string { return "LoginStart" }

type EncryptionRequest struct {
	ServerID    string `mc:"string"`
	PublicKey   []byte `mc:"bytearray"`
	VerifyToken []byte `mc:"bytearray"`
}

func (EncryptionRequest) PacketName() string { return "EncryptionRequest" }

type EncryptionResponse struct {
	SharedSecret []byte `mc:"bytearray"`
	VerifyToken  []byte `mc:"bytearray"`
}

func (EncryptionResponse) PacketName() string { return "EncryptionResponse" }

type SetCompression struct {
	Threshold int32 `mc:"varint"`
}

func (SetCompression) PacketName() string { return "SetCompression" }

type LoginSuccess struct {
	UUID     uuid.UUID `mc:"uuid"`
	Username string    `mc:"string"`
}

func (LoginSuccess) PacketName() string { return "LoginSuccess" }

type LoginDisconnect struct {
	Reason string `mc:"string"` // JSON chat component
}

func (LoginDisconnect) PacketName() string { return "LoginDisconnect" }

// --- Play: clientbound ---

type JoinGame struct {
	EntityID         int32  `mc:"i32"`
	GameMode         uint8  `mc:"u8"`
	Dimension        int32  `mc:"i32"` // encoded as 4 bytes on every version
	Difficulty       uint8  `mc:"u8"`
	MaxPlayers       uint8  `mc:"u8"`
	LevelType        string `mc:"string"`
	ReducedDebugInfo bool   `mc:"bool"`
}

func (JoinGame) PacketName() string { return "JoinGame" }

type SpawnPosition struct {
	X, Y, Z int32 // packed manually: see manual.go
}

func (SpawnPosition) PacketName() string { return "SpawnPosition" }

type PlayerAbilitiesCb struct {
	Flags        int8    `mc:"i8"`
	FlyingSpeed  float32 `mc:"f32"`
	WalkingSpeed float32 `mc:"f32"`
}

func (PlayerAbilitiesCb) PacketName() string { return "PlayerAbilitiesCb" }

type PlayDisconnect struct {
	Reason string `mc:"string"`
}

func (PlayDisconnect) PacketName() string { return "PlayDisconnect" }

type ChatMessageCb struct {
	JSON     string `mc:"string"`
	Position int8   `mc:"i8"`
}

func (ChatMessageCb) PacketName() string { return "ChatMessageCb" }

type KeepAliveCb struct {
	ID int64 `mc:"i64"`
}

func (KeepAliveCb) PacketName() string { return "KeepAliveCb" }

type PlayerListHeaderFooter struct {
	Header string `mc:"string"`
	Footer string `mc:"string"`
}

func (PlayerListHeaderFooter) PacketName() string { return "PlayerListHeaderFooter" }

type HeldItemChangeCb struct {
	Slot int8 `mc:"i8"`
}

func (HeldItemChangeCb) PacketName() string { return "HeldItemChangeCb" }

type BlockChange struct {
	X, Y, Z    int32
	BlockState int32
}

func (BlockChange) PacketName() string { return "BlockChange" }

// --- Play: serverbound ---

type KeepAliveSb struct {
	ID int64 `mc:"i64"`
}

func (KeepAliveSb) PacketName() string { return "KeepAliveSb" }

type ChatMessageSb struct {
	Message string `mc:"string"`
}

func (ChatMessageSb) PacketName() string { return "ChatMessageSb" }

type ClientSettings struct {
	Locale      string `mc:"string"`
	ViewDistance int8  `mc:"i8"`
	ChatMode    int32  `mc:"varint"`
	ChatColors  bool   `mc:"bool"`
	SkinParts   uint8  `mc:"u8"`
	MainHand    int32  `mc:"varint"` // only meaningful 1.9+
}

func (ClientSettings) PacketName() string { return "ClientSettings" }

type PlayerPositionSb struct {
	X, Y, Z  float64 `mc:"f64"`
	OnGround bool    `mc:"bool"`
}

func (PlayerPositionSb) PacketName() string { return "PlayerPositionSb" }

type PlayerLookSb struct {
	Yaw, Pitch float32 `mc:"f32"`
	OnGround   bool    `mc:"bool"`
}

func (PlayerLookSb) PacketName() string { return "PlayerLookSb" }

type PlayerPositionAndLookSb struct {
	X, Y, Z    float64 `mc:"f64"`
	Yaw, Pitch float32 `mc:"f32"`
	OnGround   bool    `mc:"bool"`
}

func (PlayerPositionAndLookSb) PacketName() string { return "PlayerPositionAndLookSb" }

type PlayerDigging struct {
	Status  int32
	X, Y, Z int32
	Face    int8
}

func (PlayerDigging) PacketName() string { return "PlayerDigging" }

type HeldItemChangeSb struct {
	Slot int16 `mc:"i16"`
}

func (HeldItemChangeSb) PacketName() string { return "HeldItemChangeSb" }

type PluginMessage struct {
	Channel string `mc:"string"`
	Data    []byte `mc:"restbytes"`
}

func (PluginMessage) PacketName() string { return "PluginMessage" }

// OpenWindow tells the client to display a container window backed by a
// server-side inventory (currently chests only). One shape is used for
// every version rather than vanilla's per-version window-type encoding
// (a string pre-1.14, a varint id from 1.14 on), the same
// one-format-for-every-version simplification internal/chunk/wire.go
// applies to chunk data.
type OpenWindow struct {
	WindowID   uint8  `mc:"u8"`
	WindowType string `mc:"string"`
	Title      string `mc:"string"`
	SlotCount  uint8  `mc:"u8"`
}

func (OpenWindow) PacketName() string { return "OpenWindow" }

// ClickWindow is the client's report of a click inside an open window. Only
// the window id and slot index are read; the action number, click mode, and
// the client's echoed clicked-item are present on the wire but ignored,
// since the server always computes the result itself rather than trusting
// the client's view of the slot. This collapses vanilla's click-mode
// matrix (shift-click, number-key swap, drag) down to one behavior: take
// the whole stack.
type ClickWindow struct {
	WindowID uint8 `mc:"u8"`
	Slot     int16 `mc:"i16"`
}

func (ClickWindow) PacketName() string { return "ClickWindow" }
