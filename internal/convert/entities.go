package convert

// entityEntry names one legacy numeric mob type id (the byte
// pkg/server/entity.go's MobEntity.MobType carries) and the flattened
// entity id it maps to.
type entityEntry struct {
	name   string
	legacy byte
	newID  int32
}

var entityTable = []entityEntry{
	{"creeper", 50, 1},
	{"skeleton", 51, 2},
	{"spider", 52, 3},
	{"zombie", 54, 4},
	{"pig", 90, 5},
	{"cow", 92, 6},
	{"chicken", 93, 7},
	{"sheep", 91, 8},
	{"squid", 94, 9},
	{"wolf", 95, 10},
	{"villager", 120, 11},
}

func buildLegacyTables() *Tables {
	t := &Tables{
		blockToNew:  make(map[int32]int32, len(blockTable)),
		blockToOld:  make(map[int32]int32, len(blockTable)),
		itemToNew:   make(map[itemKey]int16, len(itemTable)),
		itemToOld:   make(map[int16]itemKey, len(itemTable)),
		entityToNew: make(map[byte]int32, len(entityTable)),
		entityToOld: make(map[int32]byte, len(entityTable)),
	}
	for _, e := range blockTable {
		t.blockToNew[e.old] = e.newID
		t.blockToOld[e.newID] = e.old
	}
	for _, e := range itemTable {
		k := itemKey{e.id, e.damage}
		t.itemToNew[k] = e.newID
		t.itemToOld[e.newID] = k
	}
	for _, e := range entityTable {
		t.entityToNew[e.legacy] = e.newID
		t.entityToOld[e.newID] = e.legacy
	}
	return t
}
