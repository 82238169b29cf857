package proto

import (
	"fmt"
	"reflect"

	"github.com/google/uuid"
	"github.com/vibeshit/mcserver/internal/varint"
)

// Packet is implemented by every canonical packet type. Name is the
// identifier used to build the cross-version canonical id union — the
// union of packet names across all versions, sorted deterministically.
type Packet interface {
	PacketName() string
}

// manualCodec is implemented by canonical packets whose wire shape is not
// invertible from simple field reads — loops with
// side effects" (a variable count of sub-chunk sections, a variable list of
// block-change records) or a dynamic switch. Those packets own their own
// encode/decode instead of going through the reflective tag codec.
type manualCodec interface {
	encodeBody(v Version) []byte
	decodeBody(v Version, body []byte) error
}

// encodeSimple renders a tagged struct's fields, in declaration order, to
// wire bytes. It is the automatic half: every buf.read_T
// call inverts to a buf.write_T with the same argument order.
func encodeSimple(pkt any, v Version) []byte {
	rv := reflect.ValueOf(pkt)
	for rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	rt := rv.Type()
	var buf []byte
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		kind := field.Tag.Get("mc")
		if kind == "" || kind == "-" {
			continue
		}
		buf = appendField(buf, kind, rv.Field(i))
	}
	return buf
}

// decodeSimple is the inverse of encodeSimple.
func decodeSimple(pkt any, v Version, body []byte) error {
	rv := reflect.ValueOf(pkt).Elem()
	rt := rv.Type()
	off := 0
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		kind := field.Tag.Get("mc")
		if kind == "" || kind == "-" {
			continue
		}
		n, err := readField(body[off:], kind, rv.Field(i))
		if err != nil {
			return fmt.Errorf("%s.%s: %w", rt.Name(), field.Name, err)
		}
		off += n
	}
	return nil
}

func appendField(buf []byte, kind string, fv reflect.Value) []byte {
	switch kind {
	case "bool":
		if fv.Bool() {
			return append(buf, 1)
		}
		return append(buf, 0)
	case "i8":
		return append(buf, byte(int8(fv.Int())))
	case "u8":
		return append(buf, byte(fv.Uint()))
	case "i16":
		return varint.AppendInt16(buf, int16(fv.Int()))
	case "u16":
		return varint.AppendUint16(buf, uint16(fv.Uint()))
	case "i32":
		return varint.AppendInt32(buf, int32(fv.Int()))
	case "i64":
		return varint.AppendInt64(buf, fv.Int())
	case "f32":
		return varint.AppendFloat32(buf, float32(fv.Float()))
	case "f64":
		return varint.AppendFloat64(buf, fv.Float())
	case "varint":
		return varint.WriteVarInt(buf, int32(fv.Int()))
	case "varlong":
		return varint.WriteVarLong(buf, fv.Int())
	case "string":
		return varint.AppendString(buf, fv.String())
	case "uuid":
		u := fv.Interface().(uuid.UUID)
		return append(buf, u[:]...)
	case "bytearray":
		b := fv.Bytes()
		buf = varint.WriteVarInt(buf, int32(len(b)))
		return append(buf, b...)
	case "restbytes":
		return append(buf, fv.Bytes()...)
	default:
		panic("proto: unknown field kind " + kind)
	}
}

func readField(buf []byte, kind string, fv reflect.Value) (int, error) {
	switch kind {
	case "bool":
		if len(buf) < 1 {
			return 0, errShort
		}
		fv.SetBool(buf[0] != 0)
		return 1, nil
	case "i8":
		if len(buf) < 1 {
			return 0, errShort
		}
		fv.SetInt(int64(int8(buf[0])))
		return 1, nil
	case "u8":
		if len(buf) < 1 {
			return 0, errShort
		}
		fv.SetUint(uint64(buf[0]))
		return 1, nil
	case "i16":
		u, err := varint.ReadUint16(buf, 0)
		if err != nil {
			return 0, err
		}
		fv.SetInt(int64(int16(u)))
		return 2, nil
	case "u16":
		u, err := varint.ReadUint16(buf, 0)
		if err != nil {
			return 0, err
		}
		fv.SetUint(uint64(u))
		return 2, nil
	case "i32":
		i, err := varint.ReadInt32(buf, 0)
		if err != nil {
			return 0, err
		}
		fv.SetInt(int64(i))
		return 4, nil
	case "i64":
		i, err := varint.ReadInt64(buf, 0)
		if err != nil {
			return 0, err
		}
		fv.SetInt(i)
		return 8, nil
	case "f32":
		f, err := varint.ReadFloat32(buf, 0)
		if err != nil {
			return 0, err
		}
		fv.SetFloat(float64(f))
		return 4, nil
	case "f64":
		f, err := varint.ReadFloat64(buf, 0)
		if err != nil {
			return 0, err
		}
		fv.SetFloat(f)
		return 8, nil
	case "varint":
		i, n, err := varint.ReadVarInt(buf)
		if err != nil || n == 0 {
			return 0, errShort
		}
		fv.SetInt(int64(i))
		return n, nil
	case "varlong":
		i, n, err := varint.ReadVarLong(buf)
		if err != nil || n == 0 {
			return 0, errShort
		}
		fv.SetInt(i)
		return n, nil
	case "string":
		s, n, err := varint.ReadString(buf, 0, 32767*4)
		if err != nil {
			return 0, err
		}
		fv.SetString(s)
		return n, nil
	case "uuid":
		if len(buf) < 16 {
			return 0, errShort
		}
		var u uuid.UUID
		copy(u[:], buf[:16])
		fv.Set(reflect.ValueOf(u))
		return 16, nil
	case "bytearray":
		l, n, err := varint.ReadVarInt(buf)
		if err != nil || n == 0 {
			return 0, errShort
		}
		start := n
		end := start + int(l)
		if end > len(buf) {
			return 0, errShort
		}
		out := make([]byte, l)
		copy(out, buf[start:end])
		fv.SetBytes(out)
		return end, nil
	case "restbytes":
		out := make([]byte, len(buf))
		copy(out, buf)
		fv.SetBytes(out)
		return len(buf), nil
	default:
		panic("proto: unknown field kind " + kind)
	}
}

var errShort = fmt.Errorf("proto: short buffer")

// EncodeBody renders pkt's body (everything after the on-wire packet id)
// for version v.
func EncodeBody(pkt Packet, v Version) []byte {
	if m, ok := pkt.(manualCodec); ok {
		return m.encodeBody(v)
	}
	return encodeSimple(pkt, v)
}

// DecodeBody parses body into a freshly-allocated instance of the same type
// as template, for version v.
func DecodeBody(template Packet, v Version, body []byte) (Packet, error) {
	rt := reflect.TypeOf(template)
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	ptr := reflect.New(rt)
	pkt := ptr.Interface().(Packet)
	if m, ok := pkt.(manualCodec); ok {
		return pkt, m.decodeBody(v, body)
	}
	return pkt, decodeSimple(pkt, v, body)
}
