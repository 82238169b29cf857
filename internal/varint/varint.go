// Package varint implements the length-prefixed framing primitives used by
// the Minecraft wire protocol: 7-bit little-endian variable-length integers
// with a continuation bit on the MSB, plus the fixed-width big-endian
// numeric and length-prefixed string helpers built on top of them.
package varint

import (
	"encoding/binary"
	"errors"
	"io"
	"math"
)

// ErrTooLong is returned when a varint exceeds the wire cap (5 bytes for a
// 32-bit value, 10 bytes for a 64-bit value). It is always a fatal protocol
// error for the caller, never a "need more bytes" condition.
var ErrTooLong = errors.New("varint: value too long")

// MaxVarIntLen and MaxVarLongLen are the wire caps from the Minecraft
// protocol: an i32 never needs more than 5 groups, an i64 never more than 10.
const (
	MaxVarIntLen  = 5
	MaxVarLongLen = 10
)

// ReadVarInt reads a VarInt from buf. It returns consumed == 0 if buf does
// not yet contain a complete varint (a short read, not an error — the
// caller should buffer more bytes and retry). It returns ErrTooLong if a
// complete varint would exceed MaxVarIntLen bytes.
func ReadVarInt(buf []byte) (value int32, consumed int, err error) {
	var result int32
	for i := 0; i < MaxVarIntLen; i++ {
		if i >= len(buf) {
			return 0, 0, nil
		}
		b := buf[i]
		result |= int32(b&0x7F) << (7 * i)
		if b&0x80 == 0 {
			return result, i + 1, nil
		}
	}
	return 0, -1, ErrTooLong
}

// WriteVarInt appends the VarInt encoding of v to buf and returns the
// extended slice.
func WriteVarInt(buf []byte, v int32) []byte {
	uv := uint32(v)
	for {
		b := byte(uv & 0x7F)
		uv >>= 7
		if uv != 0 {
			b |= 0x80
		}
		buf = append(buf, b)
		if uv == 0 {
			return buf
		}
	}
}

// PutVarInt encodes v into dst (which must have capacity for at least
// Size(v) bytes) and returns the number of bytes written.
func PutVarInt(dst []byte, v int32) int {
	uv := uint32(v)
	n := 0
	for {
		if uv&^uint32(0x7F) == 0 {
			dst[n] = byte(uv)
			return n + 1
		}
		dst[n] = byte(uv&0x7F) | 0x80
		n++
		uv >>= 7
	}
}

// Size returns the number of bytes WriteVarInt would produce for v.
func Size(v int32) int {
	uv := uint32(v)
	n := 1
	for uv&^uint32(0x7F) != 0 {
		uv >>= 7
		n++
	}
	return n
}

// ReadVarLong is the i64 equivalent of ReadVarInt, capped at 10 bytes.
func ReadVarLong(buf []byte) (value int64, consumed int, err error) {
	var result int64
	for i := 0; i < MaxVarLongLen; i++ {
		if i >= len(buf) {
			return 0, 0, nil
		}
		b := buf[i]
		result |= int64(b&0x7F) << (7 * i)
		if b&0x80 == 0 {
			return result, i + 1, nil
		}
	}
	return 0, -1, ErrTooLong
}

// WriteVarLong appends the VarLong encoding of v to buf.
func WriteVarLong(buf []byte, v int64) []byte {
	uv := uint64(v)
	for {
		b := byte(uv & 0x7F)
		uv >>= 7
		if uv != 0 {
			b |= 0x80
		}
		buf = append(buf, b)
		if uv == 0 {
			return buf
		}
	}
}

// ReadVarIntFrom reads one VarInt a byte at a time from r, for callers that
// already hold a stream rather than a buffered slice. A stream that ends
// before any byte is read returns io.EOF; one that ends partway through
// the VarInt surfaces io.ErrUnexpectedEOF.
func ReadVarIntFrom(r io.Reader) (int32, error) {
	var result int32
	var b [1]byte
	for i := 0; i < MaxVarIntLen; i++ {
		if _, err := io.ReadFull(r, b[:]); err != nil {
			if err == io.EOF && i > 0 {
				err = io.ErrUnexpectedEOF
			}
			return 0, err
		}
		result |= int32(b[0]&0x7F) << (7 * i)
		if b[0]&0x80 == 0 {
			return result, nil
		}
	}
	return 0, ErrTooLong
}

// WriteVarIntTo writes one VarInt directly to w.
func WriteVarIntTo(w io.Writer, v int32) error {
	var buf [MaxVarIntLen]byte
	n := PutVarInt(buf[:], v)
	_, err := w.Write(buf[:n])
	return err
}

// String reads a VarInt-length-prefixed UTF-8 string from buf starting at
// offset off, returning the string and the number of bytes consumed.
func ReadString(buf []byte, off int, maxLen int) (string, int, error) {
	l, n, err := ReadVarInt(buf[off:])
	if err != nil {
		return "", 0, err
	}
	if n == 0 {
		return "", 0, io.ErrShortBuffer
	}
	if l < 0 || (maxLen > 0 && int(l) > maxLen) {
		return "", 0, errors.New("varint: string length out of range")
	}
	start := off + n
	end := start + int(l)
	if end > len(buf) {
		return "", 0, io.ErrShortBuffer
	}
	return string(buf[start:end]), n + int(l), nil
}

// AppendString appends a VarInt length prefix followed by the UTF-8 bytes
// of s.
func AppendString(buf []byte, s string) []byte {
	buf = WriteVarInt(buf, int32(len(s)))
	return append(buf, s...)
}

// Big-endian fixed width helpers. All multi-byte numeric fields on the wire
// are big-endian.

func AppendUint16(buf []byte, v uint16) []byte {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	return append(buf, b[:]...)
}

func AppendInt16(buf []byte, v int16) []byte { return AppendUint16(buf, uint16(v)) }

func AppendInt32(buf []byte, v int32) []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(v))
	return append(buf, b[:]...)
}

func AppendInt64(buf []byte, v int64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(v))
	return append(buf, b[:]...)
}

func AppendFloat32(buf []byte, v float32) []byte {
	return AppendInt32(buf, int32(math.Float32bits(v)))
}

func AppendFloat64(buf []byte, v float64) []byte {
	return AppendInt64(buf, int64(math.Float64bits(v)))
}

func ReadUint16(buf []byte, off int) (uint16, error) {
	if off+2 > len(buf) {
		return 0, io.ErrShortBuffer
	}
	return binary.BigEndian.Uint16(buf[off:]), nil
}

func ReadInt16(buf []byte, off int) (int16, error) {
	u, err := ReadUint16(buf, off)
	return int16(u), err
}

func ReadInt32(buf []byte, off int) (int32, error) {
	if off+4 > len(buf) {
		return 0, io.ErrShortBuffer
	}
	return int32(binary.BigEndian.Uint32(buf[off:])), nil
}

func ReadInt64(buf []byte, off int) (int64, error) {
	if off+8 > len(buf) {
		return 0, io.ErrShortBuffer
	}
	return int64(binary.BigEndian.Uint64(buf[off:])), nil
}

func ReadFloat32(buf []byte, off int) (float32, error) {
	v, err := ReadInt32(buf, off)
	return math.Float32frombits(uint32(v)), err
}

func ReadFloat64(buf []byte, off int) (float64, error) {
	v, err := ReadInt64(buf, off)
	return math.Float64frombits(uint64(v)), err
}
