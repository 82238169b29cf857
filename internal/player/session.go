// Package player implements the player session (C7): the join handshake,
// the 20 Hz tick loop, chunk-ring streaming, and version-aware movement
// encoding. A Session owns one connection end to end and implements
// world.PlayerHandle so internal/world can drive broadcast without
// importing this package.
package player

import (
	"fmt"
	"log"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/vibeshit/mcserver/internal/chat"
	"github.com/vibeshit/mcserver/internal/chunk"
	"github.com/vibeshit/mcserver/internal/convert"
	"github.com/vibeshit/mcserver/internal/light"
	"github.com/vibeshit/mcserver/internal/netio"
	"github.com/vibeshit/mcserver/internal/plugin"
	"github.com/vibeshit/mcserver/internal/proto"
	"github.com/vibeshit/mcserver/internal/world"
)

const tickInterval = 50 * time.Millisecond
const keepAliveEveryTicks = 20
const viewRadius = world.ViewDistance

// Settings holds the client's ClientSettings packet: the requested view
// distance (clamped to the server's own viewRadius, never widened past it)
// and the chat and skin preferences, which are stored as sent; only
// ViewDistance affects what the session does.
type Settings struct {
	ViewDistance int8
	ChatMode     int32
	ChatColors   bool
	SkinParts    uint8
	MainHand     int32
}

// Session is one connected player: its network framing, its pose, and its
// view of the world.
type Session struct {
	conn   net.Conn
	reader *netio.Reader
	writer *netio.Writer
	writeMu sync.Mutex

	version proto.Version
	eid     int32
	id      uuid.UUID
	name    string

	world *world.World
	hooks *plugin.Registry

	mu         sync.Mutex
	x, y, z    float64
	yaw, pitch float32
	onGround   bool
	lastX, lastY, lastZ float64
	lastYaw, lastPitch  float32

	inv *Inventory

	viewCenter   chunk.ChunkPos
	loadedChunks map[chunk.ChunkPos]bool
	settings     atomic.Value // Settings

	openWindowID byte // 0 = no window open, 1 = chest
	openChestPos chunk.BlockPos

	closing atomic.Bool
	ticks   atomic.Int64

	keepAliveID   atomic.Int64
	keepAlivePending atomic.Bool

	mspt struct {
		mu     sync.Mutex
		window []time.Duration
	}
}

// NewSession constructs a session bound to an already-negotiated
// connection. version and username must already be known (Login has
// happened); the caller still owns sending LoginSuccess before calling
// Run's join handshake.
func NewSession(conn net.Conn, reader *netio.Reader, writer *netio.Writer, version proto.Version, id uuid.UUID, username string, w *world.World, hooks *plugin.Registry, eid int32) *Session {
	s := &Session{
		conn:         conn,
		reader:       reader,
		writer:       writer,
		version:      version,
		eid:          eid,
		id:           id,
		name:         username,
		world:        w,
		hooks:        hooks,
		inv:          NewInventory(),
		loadedChunks: make(map[chunk.ChunkPos]bool),
	}
	s.settings.Store(Settings{ViewDistance: int8(viewRadius), MainHand: 1})
	return s
}

// NewSessionFromConn builds a Session directly over conn's own framing, for
// the single-process deployment where no internal proxy<->world hop exists.
func NewSessionFromConn(conn net.Conn, version proto.Version, id uuid.UUID, username string, w *world.World, hooks *plugin.Registry, eid int32) *Session {
	return NewSession(conn, netio.NewReader(conn), netio.NewWriter(conn), version, id, username, w, hooks, eid)
}

func (s *Session) EntityID() int32        { return s.eid }
func (s *Session) UUID() uuid.UUID        { return s.id }
func (s *Session) Username() string       { return s.name }
func (s *Session) Version() proto.Version { return s.version }

// Settings returns the client's most recently reported ClientSettings.
func (s *Session) Settings() Settings { return s.settings.Load().(Settings) }

// viewRadiusChunks is the player's effective streaming radius: the client's
// requested view distance, clamped to [2, viewRadius] so a client can shrink
// its own radius but never grow past what the server is willing to stream.
func (s *Session) viewRadiusChunks() int32 {
	requested := int32(s.Settings().ViewDistance)
	if requested < 2 {
		return 2
	}
	if requested > viewRadius {
		return viewRadius
	}
	return requested
}

func (s *Session) Position() (x, y, z float64, yaw, pitch float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.x, s.y, s.z, s.yaw, s.pitch
}

// Send encodes pkt for this session's negotiated version and writes it.
// Errors are logged and otherwise swallowed: a write failure means the
// connection is dying and the reader loop will notice and close it.
func (s *Session) Send(pkt proto.Packet) {
	id, ok := wireID(s.version, pkt)
	if !ok {
		return
	}
	body := proto.EncodeBody(pkt, s.version)
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.writer.WritePacket(id, body); err != nil {
		log.Printf("player %s: write: %v", s.name, err)
	}
}

func wireID(v proto.Version, pkt proto.Packet) (int32, bool) {
	canon, ok := proto.CanonicalID(pkt.PacketName())
	if !ok {
		return 0, false
	}
	return proto.CanonicalToWire(proto.StatePlay, proto.Clientbound, v, canon)
}

// Close flips the cancellation flag and closes the socket; both the reader
// and ticker goroutines observe it on their next suspension point and exit,
// and the world's player map entry is removed once they've exited.
func (s *Session) Close() {
	if s.closing.CompareAndSwap(false, true) {
		s.conn.Close()
	}
}

// Run drives one session end to end: the join handshake, then the reader
// and ticker loops concurrently until the connection closes.
func (s *Session) Run() {
	defer s.world.Leave(s.eid)
	defer s.hooks.Fire("on_player_leave", s)

	s.joinHandshake()
	s.world.Join(s)
	s.hooks.Fire("on_player_join", s)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); s.readLoop() }()
	go func() { defer wg.Done(); s.tickLoop() }()
	wg.Wait()
}

func (s *Session) joinHandshake() {
	s.mu.Lock()
	s.x, s.z = 8, 8
	s.y = float64(surfaceHeightHint(s.world, 8, 8)) + 1
	s.lastX, s.lastY, s.lastZ = s.x, s.y, s.z
	cx, cz := int32(s.x)>>4, int32(s.z)>>4
	s.mu.Unlock()

	s.Send(&proto.JoinGame{
		EntityID: s.eid, GameMode: 0, Dimension: 0,
		Difficulty: 1, MaxPlayers: 100, LevelType: "default",
	})
	s.Send(&proto.SpawnPosition{X: int32(s.x), Y: int32(s.y), Z: int32(s.z)})

	s.viewCenter = chunk.ChunkPos{X: cx, Z: cz}
	r := s.viewRadiusChunks()
	for dx := -r; dx <= r; dx++ {
		for dz := -r; dz <= r; dz++ {
			s.sendChunk(chunk.ChunkPos{X: cx + dx, Z: cz + dz})
		}
	}

	s.Send(&proto.PlayerPositionAndLookCb{X: s.x, Y: s.y, Z: s.z, TeleportID: 1})
	s.Send(s.inv.WindowItems())
}

// surfaceHeightHint generates the spawn column (if needed) and returns the
// first non-air block's y, used to place the player above ground on join.
func surfaceHeightHint(w *world.World, x, z int32) int32 {
	for y := int32(chunk.Height - 1); y >= 0; y-- {
		if w.Store.GetBlock(chunk.BlockPos{X: x, Y: y, Z: z}) != 0 {
			return y
		}
	}
	return 64
}

func (s *Session) sendChunk(pos chunk.ChunkPos) {
	if s.loadedChunks[pos] {
		return
	}
	s.loadedChunks[pos] = true
	c := s.world.Store.Chunk(pos)
	data, mask := c.EncodeWire(s.version)
	s.Send(&proto.MapChunk{ChunkX: pos.X, ChunkZ: pos.Z, GroundUp: true, PrimaryBitMask: mask, Data: data})
}

func (s *Session) unloadChunk(pos chunk.ChunkPos) {
	if !s.loadedChunks[pos] {
		return
	}
	delete(s.loadedChunks, pos)
	if s.version == proto.V1_8 {
		s.Send(&proto.MapChunk{ChunkX: pos.X, ChunkZ: pos.Z, GroundUp: true, PrimaryBitMask: 0})
		return
	}
	s.Send(&proto.UnloadChunk{ChunkX: pos.X, ChunkZ: pos.Z})
}

// readLoop parses and dispatches incoming packets until the connection
// closes or a malformed packet forces a hard disconnect.
func (s *Session) readLoop() {
	defer s.Close()
	for !s.closing.Load() {
		id, body, err := s.reader.ReadPacket()
		if err != nil {
			return
		}
		canon, ok := proto.WireToCanonical(proto.StatePlay, proto.Serverbound, s.version, id)
		if !ok {
			continue // unknown packet for this version; ignore rather than disconnect
		}
		s.handlePacket(canon, body)
	}
}

func (s *Session) handlePacket(canon int32, body []byte) {
	name, ok := proto.CanonicalName(canon)
	if !ok {
		return
	}
	switch name {
	case "PlayerPositionSb":
		pkt, err := proto.DecodeBody(proto.PlayerPositionSb{}, s.version, body)
		if err != nil {
			return
		}
		p := pkt.(*proto.PlayerPositionSb)
		s.mu.Lock()
		s.x, s.y, s.z, s.onGround = p.X, p.Y, p.Z, p.OnGround
		s.mu.Unlock()
	case "PlayerLookSb":
		pkt, err := proto.DecodeBody(proto.PlayerLookSb{}, s.version, body)
		if err != nil {
			return
		}
		p := pkt.(*proto.PlayerLookSb)
		s.mu.Lock()
		s.yaw, s.pitch, s.onGround = p.Yaw, p.Pitch, p.OnGround
		s.mu.Unlock()
	case "PlayerPositionAndLookSb":
		pkt, err := proto.DecodeBody(proto.PlayerPositionAndLookSb{}, s.version, body)
		if err != nil {
			return
		}
		p := pkt.(*proto.PlayerPositionAndLookSb)
		s.mu.Lock()
		s.x, s.y, s.z = p.X, p.Y, p.Z
		s.yaw, s.pitch, s.onGround = p.Yaw, p.Pitch, p.OnGround
		s.mu.Unlock()
	case "KeepAliveSb":
		pkt, err := proto.DecodeBody(proto.KeepAliveSb{}, s.version, body)
		if err != nil {
			return
		}
		p := pkt.(*proto.KeepAliveSb)
		if p.ID == s.keepAliveID.Load() {
			s.keepAlivePending.Store(false)
		}
	case "ChatMessageSb":
		pkt, err := proto.DecodeBody(proto.ChatMessageSb{}, s.version, body)
		if err != nil {
			return
		}
		p := pkt.(*proto.ChatMessageSb)
		msg := chat.Message{Text: fmt.Sprintf("<%s> %s", s.name, p.Message)}
		s.mu.Lock()
		cp := chunk.ChunkPos{X: int32(s.x) >> 4, Z: int32(s.z) >> 4}
		s.mu.Unlock()
		s.world.BroadcastNear(&proto.ChatMessageCb{JSON: msg.String()}, cp, -1)
	case "PlayerDigging":
		pkt, err := proto.DecodeBody(proto.PlayerDigging{}, s.version, body)
		if err != nil {
			return
		}
		p := pkt.(*proto.PlayerDigging)
		const statusFinishedDigging = 2
		if p.Status != statusFinishedDigging {
			return
		}
		pos := chunk.BlockPos{X: p.X, Y: p.Y, Z: p.Z}
		prev := s.world.Store.SetBlock(pos, 0)
		if prev == 0 {
			return
		}
		light.UpdateBlockLight(s.world.Store, pos, 0)
		s.world.BroadcastNear(&proto.BlockChange{X: pos.X, Y: pos.Y, Z: pos.Z, BlockState: 0}, chunk.ChunkPos{X: pos.X >> 4, Z: pos.Z >> 4}, -1)
		s.hooks.Fire("on_block_break", s, pos)
	case "PlayerBlockPlacement":
		s.handleBlockPlacement(body)
	case "ClientSettings":
		pkt, err := proto.DecodeBody(proto.ClientSettings{}, s.version, body)
		if err != nil {
			return
		}
		p := pkt.(*proto.ClientSettings)
		s.settings.Store(Settings{
			ViewDistance: p.ViewDistance,
			ChatMode:     p.ChatMode,
			ChatColors:   p.ChatColors,
			SkinParts:    p.SkinParts,
			MainHand:     p.MainHand,
		})
	case "ClickWindow":
		pkt, err := proto.DecodeBody(proto.ClickWindow{}, s.version, body)
		if err != nil {
			return
		}
		p := pkt.(*proto.ClickWindow)
		s.handleClickWindow(p)
	}
}

// handleClickWindow takes the whole stack out of the clicked chest slot and
// into the player's own inventory, the one click behavior this server
// implements (see ClickWindow's doc comment for what's left out).
func (s *Session) handleClickWindow(p *proto.ClickWindow) {
	if s.openWindowID == 0 || p.WindowID != s.openWindowID || p.Slot < 0 || p.Slot >= int16(chestSlotCount) {
		return
	}
	be, ok := s.world.Store.BlockEntityAt(s.openChestPos)
	if !ok {
		return
	}
	stack := be.Slots[p.Slot]
	if stack.ItemID < 0 {
		return
	}
	item := proto.Slot{ItemID: stack.ItemID, Count: stack.Count, Damage: stack.Damage}
	if !s.inv.AddItem(item) {
		return
	}
	be.Slots[p.Slot] = chunk.ItemStack{ItemID: -1}
	s.world.Store.SetBlockEntity(s.openChestPos, be)
	s.Send(&proto.WindowItems{WindowID: s.openWindowID, Slots: chestSlots(be)})
	s.Send(s.inv.WindowItems())
}

// chestSlotCount is the number of slots a chest's BlockEntity carries,
// matching chunk.BlockEntity's Slots array size.
const chestSlotCount = 27

// chestSlots renders a chest's BlockEntity as the Slot list an OpenWindow's
// matching WindowItems packet carries.
func chestSlots(be *chunk.BlockEntity) []proto.Slot {
	slots := make([]proto.Slot, chestSlotCount)
	for i, item := range be.Slots {
		slots[i] = proto.Slot{ItemID: item.ItemID, Count: item.Count, Damage: item.Damage}
	}
	return slots
}

// openChest opens the chest at pos for s, creating its BlockEntity on first
// use, and sends the OpenWindow/WindowItems pair the client needs to
// render it.
func (s *Session) openChest(pos chunk.BlockPos) {
	be, ok := s.world.Store.BlockEntityAt(pos)
	if !ok {
		be = &chunk.BlockEntity{}
		for i := range be.Slots {
			be.Slots[i].ItemID = -1
		}
		s.world.Store.SetBlockEntity(pos, be)
	}
	s.openWindowID = 1
	s.openChestPos = pos
	s.Send(&proto.OpenWindow{
		WindowID: s.openWindowID, WindowType: "minecraft:chest",
		Title: chat.Text("Chest").String(), SlotCount: uint8(chestSlotCount),
	})
	s.Send(&proto.WindowItems{WindowID: s.openWindowID, Slots: chestSlots(be)})
}

func (s *Session) handleBlockPlacement(body []byte) {
	pkt, err := proto.DecodeBody(&proto.PlayerBlockPlacement{}, s.version, body)
	if err != nil {
		return
	}
	p := pkt.(*proto.PlayerBlockPlacement)
	clicked := chunk.BlockPos{X: p.X, Y: p.Y, Z: p.Z}
	if s.world.Store.GetBlock(clicked) == convert.ChestBlockID {
		s.openChest(clicked)
		return
	}
	placed := clicked
	switch p.Face {
	case 0:
		placed.Y--
	case 1:
		placed.Y++
	case 2:
		placed.Z--
	case 3:
		placed.Z++
	case 4:
		placed.X--
	case 5:
		placed.X++
	}
	mainHand := s.inv.MainHand()
	if mainHand.ItemID < 0 {
		return
	}
	blockID := convert.BlockToNew(s.version.BlockVersion(), legacyFromItem(mainHand.ItemID, mainHand.Damage))
	if blockID == 0 {
		return
	}
	if s.world.Store.SetBlock(placed, blockID) == blockID {
		return
	}
	light.UpdateBlockLight(s.world.Store, placed, blockID)
	s.world.BroadcastNear(&proto.BlockChange{X: placed.X, Y: placed.Y, Z: placed.Z, BlockState: blockID}, chunk.ChunkPos{X: placed.X >> 4, Z: placed.Z >> 4}, -1)
	s.hooks.Fire("on_block_place", s, placed)
}

func legacyFromItem(itemID, damage int16) int32 {
	return int32(itemID)<<4 | int32(damage&0xF)
}

// tickLoop runs the 50ms/20Hz per-player tick: commit pose, stream chunks,
// emit movement to observers, and keep-alive every 20 ticks.
func (s *Session) tickLoop() {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()
	for {
		if s.closing.Load() {
			return
		}
		start := <-ticker.C
		s.tick()
		s.recordMSPT(time.Since(start))
	}
}

// withinView reports whether observer is within world.ViewDistance chunks of
// cp on both axes, the same square test world.BroadcastNear applies.
func withinView(observer, cp chunk.ChunkPos) bool {
	dx := observer.X - cp.X
	dz := observer.Z - cp.Z
	return dx >= -world.ViewDistance && dx <= world.ViewDistance && dz >= -world.ViewDistance && dz <= world.ViewDistance
}

func (s *Session) tick() {
	n := s.ticks.Add(1)

	s.mu.Lock()
	fromX, fromY, fromZ := s.lastX, s.lastY, s.lastZ
	fromYaw, fromPitch := s.lastYaw, s.lastPitch
	toX, toY, toZ := s.x, s.y, s.z
	toYaw, toPitch := s.yaw, s.pitch
	onGround := s.onGround
	s.lastX, s.lastY, s.lastZ = toX, toY, toZ
	s.lastYaw, s.lastPitch = toYaw, toPitch
	s.mu.Unlock()

	posChanged := fromX != toX || fromY != toY || fromZ != toZ
	lookChanged := fromYaw != toYaw || fromPitch != toPitch

	if posChanged || lookChanged {
		fromChunk := chunk.ChunkPos{X: int32(fromX) >> 4, Z: int32(fromZ) >> 4}
		toChunk := chunk.ChunkPos{X: int32(toX) >> 4, Z: int32(toZ) >> 4}
		for _, p := range s.world.Players() {
			if p.EntityID() == s.eid {
				continue
			}
			px, _, pz, _, _ := p.Position()
			observer := chunk.ChunkPos{X: int32(px) >> 4, Z: int32(pz) >> 4}
			if !withinView(observer, fromChunk) && !withinView(observer, toChunk) {
				continue
			}
			for _, pkt := range encodeMovement(p.Version(), s.eid, fromX, fromY, fromZ, fromYaw, fromPitch, toX, toY, toZ, toYaw, toPitch, onGround, lookChanged, posChanged) {
				p.Send(pkt)
			}
		}
	}

	if posChanged {
		cur := chunk.ChunkPos{X: int32(toX) >> 4, Z: int32(toZ) >> 4}
		if cur != s.viewCenter {
			load, unload := ringDiff(s.viewCenter, cur, s.viewRadiusChunks())
			s.viewCenter = cur
			for _, p := range load {
				s.sendChunk(p)
			}
			for _, p := range unload {
				s.unloadChunk(p)
			}
		}
	}

	if n%keepAliveEveryTicks == 0 {
		id := n
		s.keepAliveID.Store(id)
		s.keepAlivePending.Store(true)
		s.Send(&proto.KeepAliveCb{ID: id})
		s.publishTabList()
	}
}

func (s *Session) recordMSPT(d time.Duration) {
	s.mspt.mu.Lock()
	s.mspt.window = append(s.mspt.window, d)
	if len(s.mspt.window) > keepAliveEveryTicks {
		s.mspt.window = s.mspt.window[1:]
	}
	s.mspt.mu.Unlock()
}

// publishTabList computes mean MSPT over the last second and sends a
// colored tab-list header/footer: >50ms red, >20ms gold, >10ms yellow,
// else bright green.
func (s *Session) publishTabList() {
	s.mspt.mu.Lock()
	var total time.Duration
	for _, d := range s.mspt.window {
		total += d
	}
	n := len(s.mspt.window)
	s.mspt.mu.Unlock()
	if n == 0 {
		return
	}
	mean := float64(total.Milliseconds()) / float64(n)

	color := "§a" // bright green
	switch {
	case mean > 50:
		color = "§c" // red
	case mean > 20:
		color = "§6" // gold
	case mean > 10:
		color = "§e" // yellow
	}
	footer := chat.Message{Text: fmt.Sprintf("%sMSPT: %.1f", color, mean)}.String()
	s.Send(&proto.PlayerListHeaderFooter{Header: "{\"text\":\"\"}", Footer: footer})
}
