package chunk

import (
	"testing"

	"github.com/vibeshit/mcserver/internal/proto"
)

// decodePackedLongs is the test-side inverse of appendPackedLongs, used to
// check round-trip fidelity without a client-side decoder in this repo.
func decodePackedLongs(buf []byte, bitsPerBlock, count int) []int32 {
	perLong := 64 / bitsPerBlock
	mask := uint64(1)<<uint(bitsPerBlock) - 1
	out := make([]int32, 0, count)
	for i := 0; i < len(buf) && len(out) < count; i += 8 {
		var word uint64
		for b := 0; b < 8; b++ {
			word |= uint64(buf[i+b]) << uint(8*(7-b))
		}
		for j := 0; j < perLong && len(out) < count; j++ {
			out = append(out, int32((word>>uint(j*bitsPerBlock))&mask))
		}
	}
	return out
}

func TestAppendPackedLongsRoundTrips(t *testing.T) {
	values := []int32{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 0, 1}
	buf := appendPackedLongs(nil, values, 4)
	got := decodePackedLongs(buf, 4, len(values))
	for i, v := range values {
		if got[i] != v {
			t.Fatalf("value %d: got %d, want %d", i, got[i], v)
		}
	}
}

func TestAppendPackedLongsPadsNonDivisibleLength(t *testing.T) {
	// perLong = 64/5 = 12, so 13 values spill one long into a second mostly
	// empty one; decodePackedLongs should still recover the first 13 values.
	values := make([]int32, 13)
	for i := range values {
		values[i] = int32(i % 20)
	}
	buf := appendPackedLongs(nil, values, 5)
	if len(buf)%8 != 0 {
		t.Fatalf("packed output must be a whole number of longs, got %d bytes", len(buf))
	}
	got := decodePackedLongs(buf, 5, len(values))
	for i, v := range values {
		if got[i] != v {
			t.Fatalf("value %d: got %d, want %d", i, got[i], v)
		}
	}
}

func TestEncodeWireBitMaskMatchesPresentSections(t *testing.T) {
	c := newChunk(ChunkPos{0, 0})
	c.SetBlock(0, 0, 0, 1)
	c.SetBlock(0, 40, 0, 1) // section 2

	_, mask := c.EncodeWire(proto.V1_16_5)
	if mask != c.PrimaryBitMask() {
		t.Fatalf("wire mask %b should match PrimaryBitMask %b", mask, c.PrimaryBitMask())
	}
	if mask&1 == 0 || mask&(1<<2) == 0 {
		t.Fatalf("expected bits 0 and 2 set, got %b", mask)
	}
}

func TestEncodeWireOmitsLightForPost1_14(t *testing.T) {
	c := newChunk(ChunkPos{0, 0})
	c.SetBlock(0, 0, 0, 1)
	c.SetBlockLight(0, 0, 0, 15)

	preLight, _ := c.EncodeWire(proto.V1_12_2)
	postLight, _ := c.EncodeWire(proto.V1_14)

	if len(postLight) >= len(preLight) {
		t.Fatalf("1.14 encoding (no light nibbles) should be shorter than 1.12.2's, got %d vs %d", len(postLight), len(preLight))
	}
}

func TestEncodeWireProducesNonEmptyDataForEveryVersion(t *testing.T) {
	c := newChunk(ChunkPos{0, 0})
	c.SetBlock(0, 0, 0, 1)

	for _, v := range proto.AllVersions {
		data, mask := c.EncodeWire(v)
		if mask == 0 {
			t.Fatalf("%s: expected a non-zero section mask", v)
		}
		if len(data) == 0 {
			t.Fatalf("%s: expected non-empty encoded data", v)
		}
	}
}
