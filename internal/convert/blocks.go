package convert

// legacy packs a pre-flattening (id, damage) pair into the single int32 key
// internal/chunk and internal/worldgen already use for in-section storage:
// id in the high bits, damage in the low 4 (the 13-bit 1.8
// section format reflects the same packing).
func legacy(id int32, damage int32) int32 { return id<<4 | damage }

// ChestBlockID is the flattened id blockTable assigns to the chest block,
// exported so internal/player can recognize a chest at a position without
// duplicating the table entry.
const ChestBlockID int32 = 53

// blockEntry names one legacy block id/damage pair and the flattened id it
// maps to. The flattened numbering here is this server's own — it need not
// match any particular vanilla release, only be internally consistent and
// stable across versions, which is all that's required.
type blockEntry struct {
	name   string
	old    int32
	newID  int32
}

// blockTable is grounded on the legacy block ids pkg/world/world.go's
// BlockToItemID and pkg/world/generator.go actually produce and consume;
// ids that world generation or block breaking never reaches are out of
// scope rather than guessed at.
var blockTable = []blockEntry{
	{"stone", legacy(1, 0), 1},
	{"granite", legacy(1, 1), 2},
	{"polished_granite", legacy(1, 2), 3},
	{"diorite", legacy(1, 3), 4},
	{"polished_diorite", legacy(1, 4), 5},
	{"andesite", legacy(1, 5), 6},
	{"polished_andesite", legacy(1, 6), 7},
	{"grass_block", legacy(2, 0), 8},
	{"dirt", legacy(3, 0), 9},
	{"coarse_dirt", legacy(3, 1), 10},
	{"podzol", legacy(3, 2), 11},
	{"cobblestone", legacy(4, 0), 12},
	{"mossy_cobblestone", legacy(48, 0), 13},
	{"oak_planks", legacy(5, 0), 14},
	{"spruce_planks", legacy(5, 1), 15},
	{"birch_planks", legacy(5, 2), 16},
	{"jungle_planks", legacy(5, 3), 17},
	{"bedrock", legacy(7, 0), 18},
	{"water", legacy(8, 0), 19},
	{"water_flowing", legacy(9, 0), 19},
	{"lava", legacy(10, 0), 20},
	{"lava_flowing", legacy(11, 0), 20},
	{"sand", legacy(12, 0), 21},
	{"red_sand", legacy(12, 1), 22},
	{"gravel", legacy(13, 0), 23},
	{"gold_ore", legacy(14, 0), 24},
	{"iron_ore", legacy(15, 0), 25},
	{"coal_ore", legacy(16, 0), 26},
	{"oak_log", legacy(17, 0), 27},
	{"spruce_log", legacy(17, 1), 28},
	{"birch_log", legacy(17, 2), 29},
	{"jungle_log", legacy(17, 3), 30},
	{"oak_leaves", legacy(18, 0), 31},
	{"spruce_leaves", legacy(18, 1), 32},
	{"birch_leaves", legacy(18, 2), 33},
	{"jungle_leaves", legacy(18, 3), 34},
	{"glass", legacy(20, 0), 35},
	{"lapis_ore", legacy(21, 0), 36},
	{"lapis_block", legacy(22, 0), 37},
	{"sandstone", legacy(24, 0), 38},
	{"dead_bush", legacy(31, 0), 39},
	{"dandelion", legacy(37, 0), 40},
	{"poppy", legacy(38, 0), 41},
	{"torch", legacy(50, 0), 42},
	{"fire", legacy(51, 0), 43},
	{"redstone_wire", legacy(55, 0), 44},
	{"diamond_ore", legacy(56, 0), 45},
	{"cactus", legacy(81, 0), 46},
	{"glowstone", legacy(89, 0), 47},
	{"furnace", legacy(61, 0), 48},
	{"lit_furnace", legacy(62, 0), 49},
	{"redstone_ore", legacy(73, 0), 50},
	{"redstone_ore_lit", legacy(74, 0), 50},
	{"dark_oak_log", legacy(162, 1), 51},
	{"dark_oak_leaves", legacy(161, 1), 52},
	{"chest", legacy(54, 0), ChestBlockID},
	{"snow_block", legacy(80, 0), 54},
}
