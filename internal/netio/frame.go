// Package netio implements the per-socket frame pipeline (C2): read →
// decrypt → deframe → decompress → parse, and its inverse for writes.
// Reader/Writer are synchronous wrappers around a net.Conn;
// Go's blocking-I/O-plus-goroutine model plays the role the source's
// cooperative ring-buffer read loop plays — a short physical read just
// blocks the reader goroutine rather than needing an explicit "not enough
// bytes yet, try again" return, but the parse-time error semantics below
// (malformed varint, bad zlib, bad body → fatal; EOF before any bytes of a
// new packet → a distinguishable "connection aborted" condition) are the
// same observable contract.
package netio

import (
	"bufio"
	"bytes"
	"compress/zlib"
	"crypto/cipher"
	"errors"
	"fmt"
	"io"

	"github.com/vibeshit/mcserver/internal/varint"
)

// ErrConnectionAborted is returned by Reader.ReadPacket when the peer closed
// the connection cleanly between packets (a zero-byte read at a packet
// boundary).
var ErrConnectionAborted = errors.New("netio: connection aborted")

// ErrInvalidData wraps any malformed-varint, zlib-failure, or body-parse
// failure. This always closes the connection; callers must
// not attempt to resynchronize the stream.
type ErrInvalidData struct{ reason string }

func (e *ErrInvalidData) Error() string { return "netio: invalid data: " + e.reason }

func invalidData(format string, args ...any) error {
	return &ErrInvalidData{reason: fmt.Sprintf(format, args...)}
}

// MaxPacketLen bounds a single framed payload. The vanilla protocol never
// sends a packet anywhere near this size; it exists to stop a malicious or
// corrupt length prefix from causing an enormous allocation.
const MaxPacketLen = 2 * 1024 * 1024

// Reader decodes framed packets from a socket, undoing encryption,
// deframing, and decompression in that order.
type Reader struct {
	buf         *bufio.Reader
	threshold   int // 0 = compression disabled
	compression bool
}

// NewReader wraps conn for reading framed packets. Compression and
// encryption are both disabled until SetCompression/SetCipher is called.
func NewReader(r io.Reader) *Reader {
	return &Reader{buf: bufio.NewReader(r)}
}

// SetCipher enables decryption for all packets read after this call. Per
// this only ever applies going forward (the triggering packet
// itself is read in the clear).
func (r *Reader) SetCipher(stream cipher.Stream, underlying io.Reader) {
	r.buf = bufio.NewReader(&cipher.StreamReader{S: stream, R: underlying})
}

// SetCompression enables zlib compression with the given threshold for all
// packets read after this call. threshold == 0 disables compression.
func (r *Reader) SetCompression(threshold int) {
	r.threshold = threshold
	r.compression = threshold > 0
}

// ReadPacket reads one framed packet, returning the on-wire packet id and
// its raw (decompressed) body, ready for a version-specific reader in
// internal/proto to parse.
func (r *Reader) ReadPacket() (id int32, body []byte, err error) {
	length, err := r.readFrameVarInt(true)
	if err != nil {
		return 0, nil, err
	}
	if length < 1 {
		return 0, nil, invalidData("packet length too small: %d", length)
	}
	if length > MaxPacketLen {
		return 0, nil, invalidData("packet length too large: %d", length)
	}

	payload := make([]byte, length)
	if _, err := io.ReadFull(r.buf, payload); err != nil {
		return 0, nil, invalidData("short packet body: %v", err)
	}

	if r.compression {
		uncompressedLen, n, err := varint.ReadVarInt(payload)
		if err != nil || n == 0 {
			return 0, nil, invalidData("malformed compression header")
		}
		rest := payload[n:]
		if uncompressedLen == 0 {
			payload = rest
		} else {
			zr, err := zlib.NewReader(bytes.NewReader(rest))
			if err != nil {
				return 0, nil, invalidData("zlib: %v", err)
			}
			out := make([]byte, uncompressedLen)
			if _, err := io.ReadFull(zr, out); err != nil {
				return 0, nil, invalidData("zlib inflate: %v", err)
			}
			payload = out
		}
	}

	pid, n, err := varint.ReadVarInt(payload)
	if err != nil || n == 0 {
		return 0, nil, invalidData("malformed packet id")
	}
	return pid, payload[n:], nil
}

// readFrameVarInt reads the length-prefix varint at the start of a frame.
// When atBoundary is true, an immediate EOF (no bytes of a new frame yet
// read) is reported as ErrConnectionAborted rather than ErrInvalidData,
// matching the rule that a zero-byte read at a boundary means the
// connection closed cleanly.
func (r *Reader) readFrameVarInt(atBoundary bool) (int32, error) {
	var result int32
	for i := 0; i < varint.MaxVarIntLen; i++ {
		b, err := r.buf.ReadByte()
		if err != nil {
			if atBoundary && i == 0 && errors.Is(err, io.EOF) {
				return 0, ErrConnectionAborted
			}
			return 0, invalidData("short length prefix: %v", err)
		}
		result |= int32(b&0x7F) << (7 * i)
		if b&0x80 == 0 {
			return result, nil
		}
	}
	return 0, invalidData("varint too long")
}

// Writer encodes packets for the wire, applying compression then
// encryption in that order (the inverse of Reader).
type Writer struct {
	dst         io.Writer
	threshold   int
	compression bool
}

// NewWriter wraps w for writing framed packets.
func NewWriter(w io.Writer) *Writer {
	return &Writer{dst: w}
}

// SetCipher enables encryption for all packets written after this call.
func (w *Writer) SetCipher(stream cipher.Stream) {
	w.dst = &cipher.StreamWriter{S: stream, W: w.dst}
}

// SetCompression enables zlib compression with the given threshold for all
// packets written after this call.
func (w *Writer) SetCompression(threshold int) {
	w.threshold = threshold
	w.compression = threshold > 0
}

// WritePacket frames and writes one packet with on-wire id id and body.
func (w *Writer) WritePacket(id int32, body []byte) error {
	var idAndBody []byte
	idAndBody = varint.WriteVarInt(idAndBody, id)
	idAndBody = append(idAndBody, body...)

	var payload []byte
	if w.compression {
		if len(idAndBody) > w.threshold {
			compressed, err := deflate(idAndBody)
			if err != nil {
				return err
			}
			payload = varint.WriteVarInt(nil, int32(len(idAndBody)))
			payload = append(payload, compressed...)
		} else {
			payload = varint.WriteVarInt(nil, 0)
			payload = append(payload, idAndBody...)
		}
	} else {
		payload = idAndBody
	}

	framed := varint.WriteVarInt(nil, int32(len(payload)))
	framed = append(framed, payload...)
	_, err := w.dst.Write(framed)
	return err
}

func deflate(p []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(p); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
