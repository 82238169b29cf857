package light

// props describes how one canonical block id interacts with light: whether
// it passes light through at all, and how much it emits on its own.
type props struct {
	transparent bool
	emission    byte
}

// table is grounded on internal/convert's flattened ids (the newID column
// of blockTable); ids absent here default to opaque/non-emitting, which is
// correct for every solid block the generator places.
var table = map[int32]props{
	0:  {transparent: true},            // air
	19: {transparent: true},            // water
	31: {transparent: true},            // oak_leaves
	32: {transparent: true},            // spruce_leaves
	33: {transparent: true},            // birch_leaves
	34: {transparent: true},            // jungle_leaves
	35: {transparent: true},            // glass
	39: {transparent: true},            // dead_bush
	40: {transparent: true},            // dandelion
	41: {transparent: true},            // poppy
	42: {transparent: true, emission: 14}, // torch
	43: {transparent: true, emission: 15}, // fire
	44: {transparent: true},            // redstone_wire
	46: {transparent: true},            // cactus
	47: {emission: 15},                 // glowstone (opaque but lit)
	49: {emission: 13},                 // lit_furnace
	52: {transparent: true},            // dark_oak_leaves
}

func transparent(id int32) bool { return table[id].transparent }

func emission(id int32) byte { return table[id].emission }
