package varint

import (
	"math"
	"testing"
)

func TestVarIntRoundTrip(t *testing.T) {
	cases := []int32{0, 1, -1, 127, 128, 255, 25565, math.MaxInt32, math.MinInt32, -2097151, 2097151}
	for _, v := range cases {
		buf := WriteVarInt(nil, v)
		if len(buf) < 1 || len(buf) > MaxVarIntLen {
			t.Fatalf("WriteVarInt(%d) produced %d bytes, want 1..%d", v, len(buf), MaxVarIntLen)
		}
		got, n, err := ReadVarInt(buf)
		if err != nil {
			t.Fatalf("ReadVarInt(%v): %v", buf, err)
		}
		if got != v || n != len(buf) {
			t.Fatalf("round trip mismatch for %d: got %d, consumed %d, want consumed %d", v, got, n, len(buf))
		}
	}
}

func TestReadVarIntShortReadIsNotAnError(t *testing.T) {
	// 0x80 alone is an incomplete 2+ byte varint.
	v, n, err := ReadVarInt([]byte{0x80})
	if err != nil {
		t.Fatalf("short read should not be an error, got %v", err)
	}
	if n != 0 {
		t.Fatalf("short read should report consumed=0, got %d (value %d)", n, v)
	}
}

func TestReadVarIntTooLong(t *testing.T) {
	buf := []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}
	_, n, err := ReadVarInt(buf)
	if err != ErrTooLong || n != -1 {
		t.Fatalf("want ErrTooLong/-1, got n=%d err=%v", n, err)
	}
}

func TestStringRoundTrip(t *testing.T) {
	buf := AppendString(nil, "Alice")
	s, n, err := ReadString(buf, 0, 16)
	if err != nil {
		t.Fatalf("ReadString: %v", err)
	}
	if s != "Alice" || n != len(buf) {
		t.Fatalf("got %q/%d want Alice/%d", s, n, len(buf))
	}
}

func TestFixedWidthRoundTrip(t *testing.T) {
	buf := AppendInt32(nil, -12345)
	buf = AppendFloat64(buf, 3.25)
	i, err := ReadInt32(buf, 0)
	if err != nil || i != -12345 {
		t.Fatalf("ReadInt32: %d, %v", i, err)
	}
	f, err := ReadFloat64(buf, 4)
	if err != nil || f != 3.25 {
		t.Fatalf("ReadFloat64: %v, %v", f, err)
	}
}
