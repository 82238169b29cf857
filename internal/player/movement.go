package player

import "github.com/vibeshit/mcserver/internal/proto"

// maxRelativeDelta1_9 is the largest per-axis delta (in blocks) a 1.9+
// relative move can carry before it must be sent as a teleport instead: the
// wire field is a signed i16 scaled by 4096, so ±8 blocks is the limit
// this module enforces: a position delta of magnitude <= 8 blocks on 1.9+
// (<=4 on 1.8) encodes as a relative move.
const maxRelativeDelta1_9 = 8.0
const maxRelativeDelta1_8 = 4.0

// encodeMovement builds the packet(s) an observer should receive for eid's
// move from (fromX,fromY,fromZ,fromYaw,fromPitch) to the current pose,
// following the per-version scaling and the teleport fallback for large
// deltas described above.
func encodeMovement(v proto.Version, eid int32, fromX, fromY, fromZ float64, fromYaw, fromPitch float32, toX, toY, toZ float64, toYaw, toPitch float32, onGround, lookChanged, posChanged bool) []proto.Packet {
	dx, dy, dz := toX-fromX, toY-fromY, toZ-fromZ

	limit := maxRelativeDelta1_9
	if v == proto.V1_8 {
		limit = maxRelativeDelta1_8
	}
	withinRange := abs(dx) <= limit && abs(dy) <= limit && abs(dz) <= limit

	if posChanged && !withinRange {
		pkts := []proto.Packet{&proto.EntityTeleport{
			EntityID: eid, X: toX, Y: toY, Z: toZ,
			Yaw: toYaw, Pitch: toPitch, OnGround: onGround,
		}}
		if lookChanged {
			pkts = append(pkts, &proto.EntityHeadRotation{EntityID: eid, HeadYaw: toYaw})
		}
		return pkts
	}

	scale := 4096.0
	if v == proto.V1_8 {
		scale = 32.0
	}
	sdx, sdy, sdz := int32(dx*scale), int32(dy*scale), int32(dz*scale)

	var pkts []proto.Packet
	switch {
	case posChanged && lookChanged:
		pkts = append(pkts, &proto.EntityMoveLook{
			EntityID: eid, DX: sdx, DY: sdy, DZ: sdz,
			Yaw: toYaw, Pitch: toPitch, OnGround: onGround,
		})
	case posChanged:
		pkts = append(pkts, &proto.RelEntityMove{
			EntityID: eid, DX: sdx, DY: sdy, DZ: sdz, OnGround: onGround,
		})
	case lookChanged:
		pkts = append(pkts, &proto.EntityLook{
			EntityID: eid, Yaw: toYaw, Pitch: toPitch, OnGround: onGround,
		})
	}
	if lookChanged {
		pkts = append(pkts, &proto.EntityHeadRotation{EntityID: eid, HeadYaw: toYaw})
	}
	return pkts
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
