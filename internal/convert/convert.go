// Package convert implements the type converter (C4): block, item, and
// entity id tables keyed by (block version, direction, id), so that a
// single in-memory world can serve clients speaking different wire
// protocols. The in-memory world always stores ids in the newest
// (BlockVersion1_16) numbering; older clients see translated ids wherever
// a packet carries one, e.g. internal/chunk translates each block id before
// packing a chunk into its single, version-independent wire format.
package convert

import "github.com/vibeshit/mcserver/internal/proto"

// itemKey identifies one legacy (pre-flattening) item stack shape: a
// numeric item id plus damage/metadata value, the two fields Minecraft
// used jointly to distinguish item variants before 1.13.
type itemKey struct {
	id     int16
	damage int16
}

// Tables holds, for one legacy block-version, the six id-translation maps:
// block, item and entity ids, each in both directions. BlockVersion1_16 (the latest) is never populated: its
// lookups are defined to be the identity, matching the invariant "passing
// the latest version returns the input unchanged".
type Tables struct {
	blockToNew map[int32]int32
	blockToOld map[int32]int32

	itemToNew map[itemKey]int16
	itemToOld map[int16]itemKey

	entityToNew map[byte]int32
	entityToOld map[int32]byte
}

var byVersion = map[proto.BlockVersion]*Tables{
	proto.BlockVersion1_8:      buildLegacyTables(),
	proto.BlockVersion1_9_1_12: buildLegacyTables(),
	// 1.14 block ids are already flattened and, for every block this server
	// models, identical to the 1.16 target numbering, so no table is built;
	// lookups fall through to the identity case below.
}

// BlockToNew maps a legacy block state (id<<4|damage for pre-flattening
// versions) to the current in-memory id. Air always maps to air; an id the
// table does not know about maps to 0.
func BlockToNew(v proto.BlockVersion, legacy int32) int32 {
	if legacy == 0 {
		return 0
	}
	t := byVersion[v]
	if t == nil {
		return legacy // 1.14 and 1.16 are identity targets.
	}
	return t.blockToNew[legacy] // zero value is 0 (air) for unknown ids.
}

// BlockToOld is the inverse of BlockToNew.
func BlockToOld(v proto.BlockVersion, current int32) int32 {
	if current == 0 {
		return 0
	}
	t := byVersion[v]
	if t == nil {
		return current
	}
	return t.blockToOld[current]
}

// ItemToNew maps a legacy (id, damage) item stack to the current item id.
func ItemToNew(v proto.BlockVersion, legacyID, damage int16) int16 {
	if legacyID < 0 {
		return -1
	}
	t := byVersion[v]
	if t == nil {
		return legacyID
	}
	return t.itemToNew[itemKey{legacyID, damage}]
}

// ItemToOld is the inverse of ItemToNew, also recovering the damage value
// the legacy wire format expects.
func ItemToOld(v proto.BlockVersion, current int16) (id int16, damage int16) {
	if current < 0 {
		return -1, 0
	}
	t := byVersion[v]
	if t == nil {
		return current, 0
	}
	k := t.itemToOld[current]
	return k.id, k.damage
}

// EntityToNew maps a legacy numeric mob type id to the current entity id.
func EntityToNew(v proto.BlockVersion, legacyType byte) int32 {
	t := byVersion[v]
	if t == nil {
		return int32(legacyType)
	}
	return t.entityToNew[legacyType]
}

// EntityToOld is the inverse of EntityToNew.
func EntityToOld(v proto.BlockVersion, current int32) byte {
	t := byVersion[v]
	if t == nil {
		return byte(current)
	}
	return t.entityToOld[current]
}
