package player

import (
	"testing"

	"github.com/vibeshit/mcserver/internal/proto"
)

func TestEncodeMovementSmallDeltaIsRelativeOn1_16(t *testing.T) {
	pkts := encodeMovement(proto.V1_16_5, 7,
		0, 64, 0, 0, 0,
		2, 65, 1, 90, 10,
		true, true, true)
	if len(pkts) != 2 {
		t.Fatalf("expected move+head-rotation, got %d packets", len(pkts))
	}
	move, ok := pkts[0].(*proto.EntityMoveLook)
	if !ok {
		t.Fatalf("expected *EntityMoveLook, got %T", pkts[0])
	}
	if move.DX != int32(2*4096) || move.DY != int32(1*4096) || move.DZ != int32(1*4096) {
		t.Fatalf("unexpected scaled deltas: %+v", move)
	}
	if _, ok := pkts[1].(*proto.EntityHeadRotation); !ok {
		t.Fatalf("expected *EntityHeadRotation, got %T", pkts[1])
	}
}

func TestEncodeMovementLargeDeltaIsTeleportOn1_16(t *testing.T) {
	pkts := encodeMovement(proto.V1_16_5, 7,
		0, 64, 0, 0, 0,
		50, 64, 0, 0, 0,
		true, false, true)
	if len(pkts) != 1 {
		t.Fatalf("expected a single teleport packet, got %d", len(pkts))
	}
	tp, ok := pkts[0].(*proto.EntityTeleport)
	if !ok {
		t.Fatalf("expected *EntityTeleport, got %T", pkts[0])
	}
	if tp.X != 50 {
		t.Fatalf("expected absolute X=50, got %v", tp.X)
	}
}

func TestEncodeMovement1_8UsesTighterRelativeLimit(t *testing.T) {
	// A delta of 5 blocks fits under 1.9+'s limit of 8 but exceeds 1.8's 4.
	pkts1_8 := encodeMovement(proto.V1_8, 7,
		0, 64, 0, 0, 0,
		5, 64, 0, 0, 0,
		false, false, true)
	if _, ok := pkts1_8[0].(*proto.EntityTeleport); !ok {
		t.Fatalf("expected 1.8 to fall back to teleport for a 5-block delta, got %T", pkts1_8[0])
	}

	pkts1_16 := encodeMovement(proto.V1_16_5, 7,
		0, 64, 0, 0, 0,
		5, 64, 0, 0, 0,
		false, false, true)
	if _, ok := pkts1_16[0].(*proto.RelEntityMove); !ok {
		t.Fatalf("expected 1.16 to encode the same delta as a relative move, got %T", pkts1_16[0])
	}
}

func TestEncodeMovementLookOnlySendsLookAndHeadRotation(t *testing.T) {
	pkts := encodeMovement(proto.V1_16_5, 7,
		0, 64, 0, 0, 0,
		0, 64, 0, 90, 0,
		true, true, false)
	if len(pkts) != 2 {
		t.Fatalf("expected look+head-rotation, got %d packets", len(pkts))
	}
	if _, ok := pkts[0].(*proto.EntityLook); !ok {
		t.Fatalf("expected *EntityLook, got %T", pkts[0])
	}
}

func TestEncodeMovementNoChangeProducesNoPackets(t *testing.T) {
	pkts := encodeMovement(proto.V1_16_5, 7,
		0, 64, 0, 0, 0,
		0, 64, 0, 0, 0,
		true, false, false)
	if len(pkts) != 0 {
		t.Fatalf("expected no packets when nothing changed, got %d", len(pkts))
	}
}

func TestEncodeMovement1_8ScalesBy32(t *testing.T) {
	pkts := encodeMovement(proto.V1_8, 7,
		0, 64, 0, 0, 0,
		1, 64, 0, 0, 0,
		true, false, true)
	move, ok := pkts[0].(*proto.RelEntityMove)
	if !ok {
		t.Fatalf("expected *RelEntityMove, got %T", pkts[0])
	}
	if move.DX != 32 {
		t.Fatalf("expected DX=32 for a 1-block move scaled by 32, got %d", move.DX)
	}
}
