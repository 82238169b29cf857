package chunk

import (
	"math/bits"

	"github.com/vibeshit/mcserver/internal/convert"
	"github.com/vibeshit/mcserver/internal/proto"
	"github.com/vibeshit/mcserver/internal/varint"
)

// EncodeWire serializes every present section of c for version v, in
// ascending section order, for a MapChunk packet body. It returns the
// encoded sections plus biome data and the presence bitmask.
//
// This uses one bit-packed, locally-paletted section format for every
// version rather than reproducing each version's exact byte layout (1.8's
// flat non-paletted shorts, 1.9-1.12's semi-direct palette, 1.14+'s growing
// palette with a separate biome encoding). Every version still gets its ids
// through internal/convert's BlockToOld for that version's BlockVersion, so
// a 1.8 client is reading 1.8-numbered ids even though the envelope framing
// is shared.
func (c *Chunk) EncodeWire(v proto.Version) ([]byte, uint16) {
	var buf []byte
	mask := c.PrimaryBitMask()
	bv := v.BlockVersion()

	for i := 0; i < SectionsPerChunk; i++ {
		if mask&(1<<uint(i)) == 0 {
			continue
		}
		buf = encodeSectionWire(buf, c.Sections[i], bv, includesLight(v), c, i)
	}

	if v >= proto.V1_14 {
		for _, b := range c.Biomes {
			buf = varint.WriteVarInt(buf, int32(b))
		}
	} else {
		buf = append(buf, c.Biomes[:]...)
	}
	return buf, mask
}

// includesLight reports whether light nibbles ride along in the chunk
// packet itself. Real 1.14+ moved light to a separate UpdateLight packet;
// that packet isn't modeled here, so 1.14+ clients simply render unlit
// until a future block update relights their surroundings locally.
func includesLight(v proto.Version) bool { return v < proto.V1_14 }

func encodeSectionWire(buf []byte, sec *Section, bv proto.BlockVersion, withLight bool, c *Chunk, secIdx int) []byte {
	wirePalette := make([]int32, len(sec.Palette))
	for i, id := range sec.Palette {
		wirePalette[i] = convert.BlockToOld(bv, id)
	}

	bitsPerBlock := bits.Len(uint(len(wirePalette) - 1))
	if bitsPerBlock < 4 {
		bitsPerBlock = 4
	}

	buf = append(buf, byte(bitsPerBlock))
	buf = varint.WriteVarInt(buf, int32(len(wirePalette)))
	for _, id := range wirePalette {
		buf = varint.WriteVarInt(buf, id)
	}

	values := make([]int32, len(sec.Indices))
	for i, idx := range sec.Indices {
		values[i] = int32(idx)
	}
	buf = appendPackedLongs(buf, values, bitsPerBlock)

	if withLight {
		base := secIdx * sectionVolume
		for i := 0; i < sectionVolume/2; i++ {
			lo := lightNibble(&c.blockLight, base+2*i)
			hi := lightNibble(&c.blockLight, base+2*i+1)
			buf = append(buf, lo|hi<<4)
		}
		for i := 0; i < sectionVolume/2; i++ {
			lo := lightNibble(&c.skyLight, base+2*i)
			hi := lightNibble(&c.skyLight, base+2*i+1)
			buf = append(buf, lo|hi<<4)
		}
	}
	return buf
}

// appendPackedLongs bit-packs values (each < 1<<bitsPerBlock) LSB-first into
// 8-byte big-endian longs, padding the last value of each long rather than
// letting a value span two longs (the 1.16+ layout; used uniformly here).
func appendPackedLongs(buf []byte, values []int32, bitsPerBlock int) []byte {
	perLong := 64 / bitsPerBlock
	for i := 0; i < len(values); i += perLong {
		var word uint64
		end := i + perLong
		if end > len(values) {
			end = len(values)
		}
		for j := i; j < end; j++ {
			word |= uint64(values[j]) << uint((j-i)*bitsPerBlock)
		}
		buf = varint.AppendInt64(buf, int64(word))
	}
	return buf
}
