package proto

import "sort"

// Direction is which side originates a packet.
type Direction int

const (
	Serverbound Direction = iota
	Clientbound
)

// State is the connection state a packet belongs to, following the
// handshake -> {status | login} -> play state machine of the wire protocol
// of the wire protocol.
type State int

const (
	StateHandshake State = iota
	StateStatus
	StateLogin
	StatePlay
)

// entry describes one packet's registration: the state/direction it lives
// in, and its on-wire id for every version that supports it. A version
// absent from ByVersion means the packet does not exist on that version at
// all (distinct from sharing an id with a neighboring version).
type entry struct {
	name      string
	state     State
	direction Direction
	byVersion map[Version]int32
}

// sameFrom fills ids for every version from first onward with the given id,
// a convenience for the common case of a packet id staying stable across a
// run of versions.
func sameFrom(id int32, from Version) map[Version]int32 {
	m := make(map[Version]int32, len(AllVersions))
	started := false
	for _, v := range AllVersions {
		if v == from {
			started = true
		}
		if started {
			m[v] = id
		}
	}
	return m
}

// ids builds an explicit per-version table from (version, id) pairs, for
// packets whose id actually moved across the versions this table covers.
func ids(pairs ...any) map[Version]int32 {
	m := make(map[Version]int32, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		m[pairs[i].(Version)] = int32(pairs[i+1].(int))
	}
	return m
}

// registry lists every packet this server understands. Wire ids below
// follow the vanilla protocol as implemented from 1.8 through 1.16.5; a
// packet's id table starts at the version it was introduced on.
var registry = []entry{
	// Handshake
	{"Handshake", StateHandshake, Serverbound, sameFrom(0x00, V1_8)},

	// Status
	{"StatusRequest", StateStatus, Serverbound, sameFrom(0x00, V1_8)},
	{"StatusResponse", StateStatus, Clientbound, sameFrom(0x00, V1_8)},
	{"PingPong", StateStatus, Serverbound, sameFrom(0x01, V1_8)},
	{"PingPong", StateStatus, Clientbound, sameFrom(0x01, V1_8)},

	// Login
	{"LoginStart", StateLogin, Serverbound, sameFrom(0x00, V1_8)},
	{"EncryptionResponse", StateLogin, Serverbound, sameFrom(0x01, V1_8)},
	{"LoginDisconnect", StateLogin, Clientbound, sameFrom(0x00, V1_8)},
	{"EncryptionRequest", StateLogin, Clientbound, sameFrom(0x01, V1_8)},
	{"LoginSuccess", StateLogin, Clientbound, sameFrom(0x02, V1_8)},
	{"SetCompression", StateLogin, Clientbound, sameFrom(0x03, V1_8)},

	// Play: clientbound
	{"JoinGame", StatePlay, Clientbound, ids(
		V1_8, 0x01, V1_9, 0x23, V1_12_2, 0x23, V1_14, 0x25, V1_16, 0x25, V1_16_2, 0x24, V1_16_5, 0x24,
	)},
	{"ChatMessageCb", StatePlay, Clientbound, ids(
		V1_8, 0x02, V1_9, 0x0F, V1_12_2, 0x0F, V1_14, 0x0E, V1_16, 0x0E, V1_16_2, 0x0F, V1_16_5, 0x0F,
	)},
	{"SpawnPosition", StatePlay, Clientbound, ids(
		V1_8, 0x05, V1_9, 0x43, V1_12_2, 0x45, V1_14, 0x49, V1_16, 0x42, V1_16_2, 0x42, V1_16_5, 0x42,
	)},
	{"PlayerAbilitiesCb", StatePlay, Clientbound, ids(
		V1_8, 0x39, V1_9, 0x2B, V1_12_2, 0x2C, V1_14, 0x31, V1_16, 0x31, V1_16_2, 0x30, V1_16_5, 0x30,
	)},
	{"PlayDisconnect", StatePlay, Clientbound, ids(
		V1_8, 0x40, V1_9, 0x1A, V1_12_2, 0x1A, V1_14, 0x1B, V1_16, 0x19, V1_16_2, 0x19, V1_16_5, 0x19,
	)},
	{"KeepAliveCb", StatePlay, Clientbound, ids(
		V1_8, 0x00, V1_9, 0x1F, V1_12_2, 0x1F, V1_14, 0x20, V1_16, 0x1F, V1_16_2, 0x1F, V1_16_5, 0x1F,
	)},
	{"PlayerListHeaderFooter", StatePlay, Clientbound, ids(
		V1_8, 0x47, V1_9, 0x47, V1_12_2, 0x4A, V1_14, 0x53, V1_16, 0x5E, V1_16_2, 0x5E, V1_16_5, 0x5E,
	)},
	{"HeldItemChangeCb", StatePlay, Clientbound, ids(
		V1_8, 0x09, V1_9, 0x37, V1_12_2, 0x39, V1_14, 0x3F, V1_16, 0x3F, V1_16_2, 0x3F, V1_16_5, 0x3F,
	)},
	{"BlockChange", StatePlay, Clientbound, ids(
		V1_8, 0x23, V1_9, 0x0B, V1_12_2, 0x0B, V1_14, 0x0B, V1_16, 0x0B, V1_16_2, 0x0B, V1_16_5, 0x0B,
	)},
	{"MultiBlockChange", StatePlay, Clientbound, ids(
		V1_8, 0x22, V1_9, 0x10, V1_12_2, 0x10, V1_14, 0x0F, V1_16, 0x3F, V1_16_2, 0x3F, V1_16_5, 0x3F,
	)},
	{"MapChunk", StatePlay, Clientbound, ids(
		V1_8, 0x21, V1_9, 0x20, V1_12_2, 0x20, V1_14, 0x21, V1_16, 0x22, V1_16_2, 0x20, V1_16_5, 0x20,
	)},
	{"UnloadChunk", StatePlay, Clientbound, ids(
		// did not exist on 1.8: an unload is sent as an empty MapChunk there.
		V1_9, 0x1D, V1_12_2, 0x1F, V1_14, 0x1D, V1_16, 0x1C, V1_16_2, 0x1C, V1_16_5, 0x1C,
	)},
	{"PlayerPositionAndLookCb", StatePlay, Clientbound, ids(
		V1_8, 0x08, V1_9, 0x2E, V1_12_2, 0x2F, V1_14, 0x35, V1_16, 0x36, V1_16_2, 0x34, V1_16_5, 0x34,
	)},
	{"EntityTeleport", StatePlay, Clientbound, ids(
		V1_8, 0x18, V1_9, 0x4A, V1_12_2, 0x4A, V1_14, 0x56, V1_16, 0x57, V1_16_2, 0x56, V1_16_5, 0x56,
	)},
	{"RelEntityMove", StatePlay, Clientbound, ids(
		V1_8, 0x15, V1_9, 0x25, V1_12_2, 0x26, V1_14, 0x29, V1_16, 0x2A, V1_16_2, 0x29, V1_16_5, 0x29,
	)},
	{"EntityLook", StatePlay, Clientbound, ids(
		V1_8, 0x16, V1_9, 0x26, V1_12_2, 0x27, V1_14, 0x2A, V1_16, 0x2B, V1_16_2, 0x2A, V1_16_5, 0x2A,
	)},
	{"EntityMoveLook", StatePlay, Clientbound, ids(
		V1_8, 0x17, V1_9, 0x27, V1_12_2, 0x28, V1_14, 0x2B, V1_16, 0x2C, V1_16_2, 0x2B, V1_16_5, 0x2B,
	)},
	{"EntityHeadRotation", StatePlay, Clientbound, ids(
		V1_8, 0x19, V1_9, 0x36, V1_12_2, 0x39, V1_14, 0x3C, V1_16, 0x3D, V1_16_2, 0x3C, V1_16_5, 0x3C,
	)},
	{"SetSlot", StatePlay, Clientbound, ids(
		V1_8, 0x2F, V1_9, 0x17, V1_12_2, 0x16, V1_14, 0x17, V1_16, 0x17, V1_16_2, 0x16, V1_16_5, 0x16,
	)},
	{"WindowItems", StatePlay, Clientbound, ids(
		V1_8, 0x30, V1_9, 0x14, V1_12_2, 0x14, V1_14, 0x15, V1_16, 0x15, V1_16_2, 0x14, V1_16_5, 0x14,
	)},
	// OpenWindow has no vanilla id here: it backs a chest UI this server
	// supplements beyond the distilled protocol, so its id is this server's
	// own rather than a researched per-version vanilla number.
	{"OpenWindow", StatePlay, Clientbound, sameFrom(0x65, V1_8)},

	// Play: serverbound
	{"KeepAliveSb", StatePlay, Serverbound, ids(
		V1_8, 0x00, V1_9, 0x0B, V1_12_2, 0x0B, V1_14, 0x0E, V1_16, 0x10, V1_16_2, 0x0F, V1_16_5, 0x0F,
	)},
	{"ChatMessageSb", StatePlay, Serverbound, ids(
		V1_8, 0x01, V1_9, 0x02, V1_12_2, 0x02, V1_14, 0x03, V1_16, 0x03, V1_16_2, 0x03, V1_16_5, 0x03,
	)},
	{"ClientSettings", StatePlay, Serverbound, ids(
		V1_8, 0x15, V1_9, 0x04, V1_12_2, 0x04, V1_14, 0x05, V1_16, 0x05, V1_16_2, 0x05, V1_16_5, 0x05,
	)},
	{"PlayerPositionSb", StatePlay, Serverbound, ids(
		V1_8, 0x04, V1_9, 0x0D, V1_12_2, 0x0D, V1_14, 0x11, V1_16, 0x12, V1_16_2, 0x11, V1_16_5, 0x11,
	)},
	{"PlayerLookSb", StatePlay, Serverbound, ids(
		V1_8, 0x05, V1_9, 0x0F, V1_12_2, 0x0F, V1_14, 0x13, V1_16, 0x14, V1_16_2, 0x13, V1_16_5, 0x13,
	)},
	{"PlayerPositionAndLookSb", StatePlay, Serverbound, ids(
		V1_8, 0x06, V1_9, 0x0E, V1_12_2, 0x0E, V1_14, 0x12, V1_16, 0x13, V1_16_2, 0x12, V1_16_5, 0x12,
	)},
	{"PlayerDigging", StatePlay, Serverbound, ids(
		V1_8, 0x07, V1_9, 0x14, V1_12_2, 0x18, V1_14, 0x1B, V1_16, 0x1C, V1_16_2, 0x1B, V1_16_5, 0x1B,
	)},
	{"PlayerBlockPlacement", StatePlay, Serverbound, ids(
		V1_8, 0x08, V1_9, 0x1F, V1_12_2, 0x29, V1_14, 0x2E, V1_16, 0x30, V1_16_2, 0x2F, V1_16_5, 0x2F,
	)},
	{"HeldItemChangeSb", StatePlay, Serverbound, ids(
		V1_8, 0x09, V1_9, 0x17, V1_12_2, 0x1A, V1_14, 0x1F, V1_16, 0x21, V1_16_2, 0x20, V1_16_5, 0x20,
	)},
	{"PluginMessage", StatePlay, Serverbound, ids(
		V1_8, 0x17, V1_9, 0x09, V1_12_2, 0x09, V1_14, 0x0A, V1_16, 0x0A, V1_16_2, 0x0A, V1_16_5, 0x0A,
	)},
	// ClickWindow, like OpenWindow above, is this server's own id: there is
	// no researched vanilla number to carry since the chest UI is a
	// supplement, not part of the distilled protocol surface.
	{"ClickWindow", StatePlay, Serverbound, sameFrom(0x66, V1_8)},
}

// CanonicalID returns the cross-version canonical id for a packet name: its
// index into the sorted union of every packet name the registry defines
// — the union of packet names across all versions, sorted
// deterministically. Two packets that exist under the same name in
// different states (none do today) would collide; the registry is the
// single source of truth for avoiding that.
func CanonicalID(name string) (int32, bool) {
	id, ok := canonicalIDs[name]
	return id, ok
}

// CanonicalName is the inverse of CanonicalID.
func CanonicalName(id int32) (string, bool) {
	if id < 0 || int(id) >= len(canonicalNames) {
		return "", false
	}
	return canonicalNames[id], true
}

var (
	canonicalNames []string
	canonicalIDs   map[string]int32

	// wireToCanonical[state][direction][version][wireID] -> canonical id
	wireToCanonical map[State]map[Direction]map[Version]map[int32]int32
	// canonicalToWire[state][direction][version][canonicalID] -> wire id
	canonicalToWire map[State]map[Direction]map[Version]map[int32]int32
)

func init() {
	names := make(map[string]struct{})
	for _, e := range registry {
		names[e.name] = struct{}{}
	}
	canonicalNames = make([]string, 0, len(names))
	for n := range names {
		canonicalNames = append(canonicalNames, n)
	}
	sort.Strings(canonicalNames)

	canonicalIDs = make(map[string]int32, len(canonicalNames))
	for i, n := range canonicalNames {
		canonicalIDs[n] = int32(i)
	}

	wireToCanonical = make(map[State]map[Direction]map[Version]map[int32]int32)
	canonicalToWire = make(map[State]map[Direction]map[Version]map[int32]int32)
	for _, e := range registry {
		cid := canonicalIDs[e.name]
		for v, wireID := range e.byVersion {
			ensureDirMap(wireToCanonical, e.state, e.direction, v)[wireID] = cid
			ensureDirMap(canonicalToWire, e.state, e.direction, v)[cid] = wireID
		}
	}
}

func ensureDirMap(m map[State]map[Direction]map[Version]map[int32]int32, s State, d Direction, v Version) map[int32]int32 {
	if m[s] == nil {
		m[s] = make(map[Direction]map[Version]map[int32]int32)
	}
	if m[s][d] == nil {
		m[s][d] = make(map[Version]map[int32]int32)
	}
	if m[s][d][v] == nil {
		m[s][d][v] = make(map[int32]int32)
	}
	return m[s][d][v]
}

// WireToCanonical translates an on-wire packet id to its canonical id for
// the given state/direction/version. ok is false if the version does not
// define a packet at that wire id: undefined ids never silently map to 0.
func WireToCanonical(s State, d Direction, v Version, wireID int32) (int32, bool) {
	id, ok := wireToCanonical[s][d][v][wireID]
	return id, ok
}

// CanonicalToWire is the inverse of WireToCanonical: ok is false if the
// packet does not exist on the target version at all (e.g. UnloadChunk on
// 1.8), which the caller must handle by falling back to an equivalent
// packet (an empty-sections MapChunk on 1.8).
func CanonicalToWire(s State, d Direction, v Version, canonicalID int32) (int32, bool) {
	id, ok := canonicalToWire[s][d][v][canonicalID]
	return id, ok
}
