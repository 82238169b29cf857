package proto

import (
	"github.com/vibeshit/mcserver/internal/varint"
)

// Packets in this file implement manualCodec because their shape is one
// is not a straight-line sequence of simple reads:
// a packed position field, a version-dependent record loop, or a variable
// section payload produced by a side-effecting writer.
//
// Every encodeBody/decodeBody pair here uses a pointer receiver so that a
// single method set (*T) satisfies manualCodec; callers of EncodeBody must
// pass a *T for these types, the same way DecodeBody already hands one back.

// --- Position-packing packets ---

func (p *SpawnPosition) encodeBody(v Version) []byte {
	return varint.AppendInt64(nil, PackPosition(p.X, p.Y, p.Z, v))
}

func (p *SpawnPosition) decodeBody(v Version, body []byte) error {
	packed, err := varint.ReadInt64(body, 0)
	if err != nil {
		return err
	}
	p.X, p.Y, p.Z = UnpackPosition(packed, v)
	return nil
}

func (p *BlockChange) encodeBody(v Version) []byte {
	buf := varint.AppendInt64(nil, PackPosition(p.X, p.Y, p.Z, v))
	return varint.WriteVarInt(buf, p.BlockState)
}

func (p *BlockChange) decodeBody(v Version, body []byte) error {
	packed, err := varint.ReadInt64(body, 0)
	if err != nil {
		return err
	}
	p.X, p.Y, p.Z = UnpackPosition(packed, v)
	state, n, err := varint.ReadVarInt(body[8:])
	if err != nil || n == 0 {
		return errShort
	}
	p.BlockState = state
	return nil
}

func (p *PlayerDigging) encodeBody(v Version) []byte {
	buf := varint.WriteVarInt(nil, p.Status)
	buf = varint.AppendInt64(buf, PackPosition(p.X, p.Y, p.Z, v))
	return append(buf, byte(p.Face))
}

func (p *PlayerDigging) decodeBody(v Version, body []byte) error {
	status, n, err := varint.ReadVarInt(body)
	if err != nil || n == 0 {
		return errShort
	}
	p.Status = status
	packed, err := varint.ReadInt64(body, n)
	if err != nil {
		return err
	}
	p.X, p.Y, p.Z = UnpackPosition(packed, v)
	if n+8 >= len(body) {
		return errShort
	}
	p.Face = int8(body[n+8])
	return nil
}

// --- PlayerBlockPlacement (serverbound) ---

type PlayerBlockPlacement struct {
	X, Y, Z int32
	Face    int32
	CursorX float32
	CursorY float32
	CursorZ float32
}

func (PlayerBlockPlacement) PacketName() string { return "PlayerBlockPlacement" }

func (p *PlayerBlockPlacement) encodeBody(v Version) []byte {
	buf := varint.AppendInt64(nil, PackPosition(p.X, p.Y, p.Z, v))
	buf = varint.WriteVarInt(buf, p.Face)
	buf = varint.AppendFloat32(buf, p.CursorX)
	buf = varint.AppendFloat32(buf, p.CursorY)
	return varint.AppendFloat32(buf, p.CursorZ)
}

func (p *PlayerBlockPlacement) decodeBody(v Version, body []byte) error {
	packed, err := varint.ReadInt64(body, 0)
	if err != nil {
		return err
	}
	p.X, p.Y, p.Z = UnpackPosition(packed, v)
	face, n, err := varint.ReadVarInt(body[8:])
	if err != nil || n == 0 {
		return errShort
	}
	p.Face = face
	off := 8 + n
	if p.CursorX, err = varint.ReadFloat32(body, off); err != nil {
		return err
	}
	if p.CursorY, err = varint.ReadFloat32(body, off+4); err != nil {
		return err
	}
	if p.CursorZ, err = varint.ReadFloat32(body, off+8); err != nil {
		return err
	}
	return nil
}

// --- MapChunk (clientbound chunk data) ---

// MapChunk carries one fully-serialized chunk column. Data is already
// encoded by internal/chunk for the target version's section format
// this packet only frames it. GroundUp is always true here
// (the core never sends partial-column updates), matching §4.7's join
// handshake and streaming flow.
type MapChunk struct {
	ChunkX, ChunkZ int32
	GroundUp       bool
	PrimaryBitMask uint16
	Data           []byte
}

func (MapChunk) PacketName() string { return "MapChunk" }

func (p *MapChunk) encodeBody(v Version) []byte {
	var buf []byte
	buf = varint.AppendInt32(buf, p.ChunkX)
	buf = varint.AppendInt32(buf, p.ChunkZ)
	if p.GroundUp {
		buf = append(buf, 1)
	} else {
		buf = append(buf, 0)
	}
	if v >= V1_14 {
		buf = varint.WriteVarInt(buf, int32(p.PrimaryBitMask))
	} else {
		buf = varint.AppendUint16(buf, p.PrimaryBitMask)
	}
	buf = varint.WriteVarInt(buf, int32(len(p.Data)))
	return append(buf, p.Data...)
}

func (p *MapChunk) decodeBody(v Version, body []byte) error {
	x, err := varint.ReadInt32(body, 0)
	if err != nil {
		return err
	}
	z, err := varint.ReadInt32(body, 4)
	if err != nil {
		return err
	}
	p.ChunkX, p.ChunkZ = x, z
	if len(body) < 9 {
		return errShort
	}
	p.GroundUp = body[8] != 0
	off := 9
	var mask int32
	if v >= V1_14 {
		m, n, err := varint.ReadVarInt(body[off:])
		if err != nil || n == 0 {
			return errShort
		}
		mask = m
		off += n
	} else {
		u, err := varint.ReadUint16(body, off)
		if err != nil {
			return err
		}
		mask = int32(u)
		off += 2
	}
	p.PrimaryBitMask = uint16(mask)
	size, n, err := varint.ReadVarInt(body[off:])
	if err != nil || n == 0 {
		return errShort
	}
	off += n
	if off+int(size) > len(body) {
		return errShort
	}
	p.Data = append([]byte(nil), body[off:off+int(size)]...)
	return nil
}

// --- UnloadChunk (clientbound, 1.9+ only) ---

type UnloadChunk struct {
	ChunkX, ChunkZ int32
}

func (UnloadChunk) PacketName() string { return "UnloadChunk" }

func (p *UnloadChunk) encodeBody(Version) []byte {
	buf := varint.AppendInt32(nil, p.ChunkX)
	return varint.AppendInt32(buf, p.ChunkZ)
}

func (p *UnloadChunk) decodeBody(_ Version, body []byte) error {
	x, err := varint.ReadInt32(body, 0)
	if err != nil {
		return err
	}
	z, err := varint.ReadInt32(body, 4)
	if err != nil {
		return err
	}
	p.ChunkX, p.ChunkZ = x, z
	return nil
}

// --- MultiBlockChange ---

// BlockChangeRecord is one (x,z,y,state) entry of a MultiBlockChange.
type BlockChangeRecord struct {
	X, Z  int8 // chunk-relative 0..15
	Y     uint8
	State int32
}

type MultiBlockChange struct {
	ChunkX, ChunkZ int32
	Records        []BlockChangeRecord
}

func (MultiBlockChange) PacketName() string { return "MultiBlockChange" }

func (p *MultiBlockChange) encodeBody(Version) []byte {
	buf := varint.AppendInt32(nil, p.ChunkX)
	buf = varint.AppendInt32(buf, p.ChunkZ)
	buf = varint.WriteVarInt(buf, int32(len(p.Records)))
	for _, r := range p.Records {
		buf = append(buf, byte(r.X)<<4|byte(r.Z)&0x0F)
		buf = append(buf, r.Y)
		buf = varint.WriteVarInt(buf, r.State)
	}
	return buf
}

func (p *MultiBlockChange) decodeBody(_ Version, body []byte) error {
	x, err := varint.ReadInt32(body, 0)
	if err != nil {
		return err
	}
	z, err := varint.ReadInt32(body, 4)
	if err != nil {
		return err
	}
	p.ChunkX, p.ChunkZ = x, z
	count, n, err := varint.ReadVarInt(body[8:])
	if err != nil || n == 0 {
		return errShort
	}
	off := 8 + n
	p.Records = make([]BlockChangeRecord, 0, count)
	for i := int32(0); i < count; i++ {
		if off+2 > len(body) {
			return errShort
		}
		xz := body[off]
		y := body[off+1]
		off += 2
		state, n, err := varint.ReadVarInt(body[off:])
		if err != nil || n == 0 {
			return errShort
		}
		off += n
		p.Records = append(p.Records, BlockChangeRecord{
			X:     int8(xz >> 4),
			Z:     int8(xz & 0x0F),
			Y:     y,
			State: state,
		})
	}
	return nil
}

// --- Movement packets ---
//
// These encode the same (eid, delta-or-absolute, look) data differently per
// version: 1.8 scales deltas by 32 into an i8, 1.9+
// scales by 4096 into an i16. Encode chooses the packet kind (teleport vs.
// relative, move vs. look vs. both) the caller already decided by
// constructing the right Go type; see internal/player/movement.go for that
// decision.

type EntityTeleport struct {
	EntityID   int32
	X, Y, Z    float64
	Yaw, Pitch float32
	OnGround   bool
}

func (EntityTeleport) PacketName() string { return "EntityTeleport" }

func (p *EntityTeleport) encodeBody(v Version) []byte {
	buf := varint.WriteVarInt(nil, p.EntityID)
	if v == V1_8 {
		buf = varint.AppendInt32(buf, int32(p.X*32))
		buf = varint.AppendInt32(buf, int32(p.Y*32))
		buf = varint.AppendInt32(buf, int32(p.Z*32))
	} else {
		buf = varint.AppendFloat64(buf, p.X)
		buf = varint.AppendFloat64(buf, p.Y)
		buf = varint.AppendFloat64(buf, p.Z)
	}
	buf = append(buf, Angle(p.Yaw), Angle(p.Pitch))
	if p.OnGround {
		buf = append(buf, 1)
	} else {
		buf = append(buf, 0)
	}
	return buf
}

func (p *EntityTeleport) decodeBody(v Version, body []byte) error {
	eid, n, err := varint.ReadVarInt(body)
	if err != nil || n == 0 {
		return errShort
	}
	p.EntityID = eid
	off := n
	if v == V1_8 {
		x, err := varint.ReadInt32(body, off)
		if err != nil {
			return err
		}
		y, err := varint.ReadInt32(body, off+4)
		if err != nil {
			return err
		}
		z, err := varint.ReadInt32(body, off+8)
		if err != nil {
			return err
		}
		p.X, p.Y, p.Z = float64(x)/32, float64(y)/32, float64(z)/32
		off += 12
	} else {
		x, err := varint.ReadFloat64(body, off)
		if err != nil {
			return err
		}
		y, err := varint.ReadFloat64(body, off+8)
		if err != nil {
			return err
		}
		z, err := varint.ReadFloat64(body, off+16)
		if err != nil {
			return err
		}
		p.X, p.Y, p.Z = x, y, z
		off += 24
	}
	if off+3 > len(body) {
		return errShort
	}
	p.Yaw = float32(body[off]) / 256 * 360
	p.Pitch = float32(body[off+1]) / 256 * 360
	p.OnGround = body[off+2] != 0
	return nil
}

// RelEntityMove carries a position-only relative move.
type RelEntityMove struct {
	EntityID   int32
	DX, DY, DZ int32 // already scaled per version by the caller
	OnGround   bool
}

func (RelEntityMove) PacketName() string { return "RelEntityMove" }

func (p *RelEntityMove) encodeBody(v Version) []byte {
	buf := varint.WriteVarInt(nil, p.EntityID)
	if v == V1_8 {
		buf = append(buf, byte(int8(p.DX)), byte(int8(p.DY)), byte(int8(p.DZ)))
	} else {
		buf = varint.AppendInt16(buf, int16(p.DX))
		buf = varint.AppendInt16(buf, int16(p.DY))
		buf = varint.AppendInt16(buf, int16(p.DZ))
	}
	if p.OnGround {
		buf = append(buf, 1)
	} else {
		buf = append(buf, 0)
	}
	return buf
}

func (p *RelEntityMove) decodeBody(v Version, body []byte) error {
	eid, n, err := varint.ReadVarInt(body)
	if err != nil || n == 0 {
		return errShort
	}
	p.EntityID = eid
	off := n
	if v == V1_8 {
		if off+3 > len(body) {
			return errShort
		}
		p.DX, p.DY, p.DZ = int32(int8(body[off])), int32(int8(body[off+1])), int32(int8(body[off+2]))
		off += 3
	} else {
		dx, err := varint.ReadInt16(body, off)
		if err != nil {
			return err
		}
		dy, err := varint.ReadInt16(body, off+2)
		if err != nil {
			return err
		}
		dz, err := varint.ReadInt16(body, off+4)
		if err != nil {
			return err
		}
		p.DX, p.DY, p.DZ = int32(dx), int32(dy), int32(dz)
		off += 6
	}
	if off >= len(body) {
		return errShort
	}
	p.OnGround = body[off] != 0
	return nil
}

// EntityLook carries a look-only update.
type EntityLook struct {
	EntityID   int32
	Yaw, Pitch float32
	OnGround   bool
}

func (EntityLook) PacketName() string { return "EntityLook" }

func (p *EntityLook) encodeBody(Version) []byte {
	buf := varint.WriteVarInt(nil, p.EntityID)
	buf = append(buf, Angle(p.Yaw), Angle(p.Pitch))
	if p.OnGround {
		buf = append(buf, 1)
	} else {
		buf = append(buf, 0)
	}
	return buf
}

func (p *EntityLook) decodeBody(_ Version, body []byte) error {
	eid, n, err := varint.ReadVarInt(body)
	if err != nil || n == 0 {
		return errShort
	}
	p.EntityID = eid
	if n+3 > len(body) {
		return errShort
	}
	p.Yaw = float32(body[n]) / 256 * 360
	p.Pitch = float32(body[n+1]) / 256 * 360
	p.OnGround = body[n+2] != 0
	return nil
}

// EntityMoveLook carries both a relative move and a look update.
type EntityMoveLook struct {
	EntityID   int32
	DX, DY, DZ int32
	Yaw, Pitch float32
	OnGround   bool
}

func (EntityMoveLook) PacketName() string { return "EntityMoveLook" }

func (p *EntityMoveLook) encodeBody(v Version) []byte {
	buf := varint.WriteVarInt(nil, p.EntityID)
	if v == V1_8 {
		buf = append(buf, byte(int8(p.DX)), byte(int8(p.DY)), byte(int8(p.DZ)))
	} else {
		buf = varint.AppendInt16(buf, int16(p.DX))
		buf = varint.AppendInt16(buf, int16(p.DY))
		buf = varint.AppendInt16(buf, int16(p.DZ))
	}
	buf = append(buf, Angle(p.Yaw), Angle(p.Pitch))
	if p.OnGround {
		buf = append(buf, 1)
	} else {
		buf = append(buf, 0)
	}
	return buf
}

func (p *EntityMoveLook) decodeBody(v Version, body []byte) error {
	eid, n, err := varint.ReadVarInt(body)
	if err != nil || n == 0 {
		return errShort
	}
	p.EntityID = eid
	off := n
	if v == V1_8 {
		if off+3 > len(body) {
			return errShort
		}
		p.DX, p.DY, p.DZ = int32(int8(body[off])), int32(int8(body[off+1])), int32(int8(body[off+2]))
		off += 3
	} else {
		dx, err := varint.ReadInt16(body, off)
		if err != nil {
			return err
		}
		dy, err := varint.ReadInt16(body, off+2)
		if err != nil {
			return err
		}
		dz, err := varint.ReadInt16(body, off+4)
		if err != nil {
			return err
		}
		p.DX, p.DY, p.DZ = int32(dx), int32(dy), int32(dz)
		off += 6
	}
	if off+3 > len(body) {
		return errShort
	}
	p.Yaw = float32(body[off]) / 256 * 360
	p.Pitch = float32(body[off+1]) / 256 * 360
	p.OnGround = body[off+2] != 0
	return nil
}

// EntityHeadRotation accompanies EntityLook for clients that track head yaw
// separately from body yaw.
type EntityHeadRotation struct {
	EntityID int32
	HeadYaw  float32
}

func (EntityHeadRotation) PacketName() string { return "EntityHeadRotation" }

func (p *EntityHeadRotation) encodeBody(Version) []byte {
	buf := varint.WriteVarInt(nil, p.EntityID)
	return append(buf, Angle(p.HeadYaw))
}

func (p *EntityHeadRotation) decodeBody(_ Version, body []byte) error {
	eid, n, err := varint.ReadVarInt(body)
	if err != nil || n == 0 {
		return errShort
	}
	p.EntityID = eid
	if n >= len(body) {
		return errShort
	}
	p.HeadYaw = float32(body[n]) / 256 * 360
	return nil
}

// --- Player position and look (clientbound, with teleport confirm) ---

type PlayerPositionAndLookCb struct {
	X, Y, Z    float64
	Yaw, Pitch float32
	Flags      int8
	TeleportID int32 // 1.9+ only; ignored (and not written) on 1.8
}

func (PlayerPositionAndLookCb) PacketName() string { return "PlayerPositionAndLookCb" }

func (p *PlayerPositionAndLookCb) encodeBody(v Version) []byte {
	buf := varint.AppendFloat64(nil, p.X)
	buf = varint.AppendFloat64(buf, p.Y)
	buf = varint.AppendFloat64(buf, p.Z)
	buf = varint.AppendFloat32(buf, p.Yaw)
	buf = varint.AppendFloat32(buf, p.Pitch)
	buf = append(buf, byte(p.Flags))
	if v >= V1_9 {
		buf = varint.WriteVarInt(buf, p.TeleportID)
	}
	return buf
}

func (p *PlayerPositionAndLookCb) decodeBody(v Version, body []byte) error {
	var err error
	if p.X, err = varint.ReadFloat64(body, 0); err != nil {
		return err
	}
	if p.Y, err = varint.ReadFloat64(body, 8); err != nil {
		return err
	}
	if p.Z, err = varint.ReadFloat64(body, 16); err != nil {
		return err
	}
	yaw, err := varint.ReadFloat32(body, 24)
	if err != nil {
		return err
	}
	pitch, err := varint.ReadFloat32(body, 28)
	if err != nil {
		return err
	}
	p.Yaw, p.Pitch = yaw, pitch
	if len(body) < 33 {
		return errShort
	}
	p.Flags = int8(body[32])
	if v >= V1_9 {
		id, n, err := varint.ReadVarInt(body[33:])
		if err != nil || n == 0 {
			return errShort
		}
		p.TeleportID = id
	}
	return nil
}

// --- Inventory slots ---

// Slot is the 1.8-style item slot encoding: itemID == -1 means empty, with
// no NBT payload ever written (persistence is out of scope, and
// the core never attaches NBT to an item).
type Slot struct {
	ItemID int16
	Count  byte
	Damage int16
}

func encodeSlot(buf []byte, s Slot) []byte {
	buf = varint.AppendInt16(buf, s.ItemID)
	if s.ItemID == -1 {
		return buf
	}
	buf = append(buf, s.Count)
	buf = varint.AppendInt16(buf, s.Damage)
	return append(buf, 0x00) // NBT: TAG_End
}

func decodeSlot(body []byte, off int) (Slot, int, error) {
	id, err := varint.ReadInt16(body, off)
	if err != nil {
		return Slot{}, 0, err
	}
	if id == -1 {
		return Slot{ItemID: -1}, 2, nil
	}
	if off+6 > len(body) {
		return Slot{}, 0, errShort
	}
	count := body[off+2]
	damage, err := varint.ReadInt16(body, off+3)
	if err != nil {
		return Slot{}, 0, err
	}
	return Slot{ItemID: id, Count: count, Damage: damage}, 6, nil
}

type SetSlot struct {
	WindowID int8
	Slot     int16
	Item     Slot
}

func (SetSlot) PacketName() string { return "SetSlot" }

func (p *SetSlot) encodeBody(Version) []byte {
	buf := []byte{byte(p.WindowID)}
	buf = varint.AppendInt16(buf, p.Slot)
	return encodeSlot(buf, p.Item)
}

func (p *SetSlot) decodeBody(_ Version, body []byte) error {
	if len(body) < 3 {
		return errShort
	}
	p.WindowID = int8(body[0])
	slot, err := varint.ReadInt16(body, 1)
	if err != nil {
		return err
	}
	p.Slot = slot
	item, _, err := decodeSlot(body, 3)
	if err != nil {
		return err
	}
	p.Item = item
	return nil
}

type WindowItems struct {
	WindowID uint8
	Slots    []Slot
}

func (WindowItems) PacketName() string { return "WindowItems" }

func (p *WindowItems) encodeBody(Version) []byte {
	buf := []byte{p.WindowID}
	buf = varint.AppendInt16(buf, int16(len(p.Slots)))
	for _, s := range p.Slots {
		buf = encodeSlot(buf, s)
	}
	return buf
}

func (p *WindowItems) decodeBody(_ Version, body []byte) error {
	if len(body) < 3 {
		return errShort
	}
	p.WindowID = body[0]
	count, err := varint.ReadInt16(body, 1)
	if err != nil {
		return err
	}
	off := 3
	p.Slots = make([]Slot, 0, count)
	for i := int16(0); i < count; i++ {
		s, n, err := decodeSlot(body, off)
		if err != nil {
			return err
		}
		p.Slots = append(p.Slots, s)
		off += n
	}
	return nil
}
