package convert

// itemEntry names one legacy (id, damage) item stack shape and the
// flattened item id it maps to. Grounded on the item ids
// pkg/world/world.go's BlockToItemID hands back when a block breaks.
type itemEntry struct {
	name   string
	id     int16
	damage int16
	newID  int16
}

var itemTable = []itemEntry{
	{"cobblestone", 4, 0, 1},
	{"dirt", 3, 0, 2},
	{"dirt_coarse", 3, 1, 3},
	{"oak_planks", 5, 0, 4},
	{"oak_sapling", 6, 0, 5},
	{"stone", 1, 0, 6},
	{"granite", 1, 1, 7},
	{"andesite", 1, 5, 8},
	{"sand", 12, 0, 9},
	{"gravel", 13, 0, 10},
	{"oak_log", 17, 0, 11},
	{"coal", 263, 0, 12},
	{"diamond", 264, 0, 13},
	{"redstone", 331, 0, 14},
	{"lapis_lazuli", 351, 4, 15},
	{"emerald", 388, 0, 16},
	{"quartz", 406, 0, 17},
	{"clay_ball", 337, 0, 18},
	{"glowstone_dust", 348, 0, 19},
	{"prismarine_crystals", 410, 0, 20},
	{"wheat", 296, 0, 21},
	{"wheat_seeds", 295, 0, 22},
	{"white_wool", 35, 0, 23},
	{"oak_door", 324, 0, 24},
	{"iron_door", 330, 0, 25},
	{"torch", 50, 0, 26},
	{"redstone_torch", 76, 0, 27},
	{"chest", 54, 0, 28},
}
