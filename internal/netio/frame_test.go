package netio

import (
	"bytes"
	"crypto/aes"
	"testing"
)

func TestFrameRoundTripNoCompressionNoEncryption(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	if err := w.WritePacket(0x01, []byte("hello")); err != nil {
		t.Fatal(err)
	}

	r := NewReader(&buf)
	id, body, err := r.ReadPacket()
	if err != nil {
		t.Fatal(err)
	}
	if id != 0x01 || string(body) != "hello" {
		t.Fatalf("got id=%d body=%q", id, body)
	}
}

func TestFrameRoundTripCompressionBelowThreshold(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.SetCompression(256)
	body := bytes.Repeat([]byte{0x42}, 10)
	if err := w.WritePacket(0x02, body); err != nil {
		t.Fatal(err)
	}

	r := NewReader(&buf)
	r.SetCompression(256)
	id, got, err := r.ReadPacket()
	if err != nil {
		t.Fatal(err)
	}
	if id != 0x02 || !bytes.Equal(got, body) {
		t.Fatalf("got id=%d body=%x", id, got)
	}
}

func TestFrameRoundTripCompressionAboveThreshold(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.SetCompression(16)
	body := bytes.Repeat([]byte{0x99}, 4096)
	if err := w.WritePacket(0x03, body); err != nil {
		t.Fatal(err)
	}

	r := NewReader(&buf)
	r.SetCompression(16)
	id, got, err := r.ReadPacket()
	if err != nil {
		t.Fatal(err)
	}
	if id != 0x03 || !bytes.Equal(got, body) {
		t.Fatalf("got id=%d len(body)=%d", id, len(got))
	}
}

func TestFrameRoundTripEncryption(t *testing.T) {
	key := bytes.Repeat([]byte{0x07}, 16)
	block, err := aes.NewCipher(key)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.SetCipher(newCFB8Encrypter(block, key))
	if err := w.WritePacket(0x04, []byte("secret")); err != nil {
		t.Fatal(err)
	}

	r := NewReader(bytes.NewReader(buf.Bytes()))
	r.SetCipher(newCFB8Decrypter(block, key), bytes.NewReader(buf.Bytes()))

	id, body, err := r.ReadPacket()
	if err != nil {
		t.Fatal(err)
	}
	if id != 0x04 || string(body) != "secret" {
		t.Fatalf("got id=%d body=%q", id, body)
	}
}

func TestReadPacketConnectionAborted(t *testing.T) {
	r := NewReader(bytes.NewReader(nil))
	_, _, err := r.ReadPacket()
	if err != ErrConnectionAborted {
		t.Fatalf("want ErrConnectionAborted, got %v", err)
	}
}

func TestReadPacketInvalidData(t *testing.T) {
	// Length prefix says 0, which is below the minimum of 1.
	r := NewReader(bytes.NewReader([]byte{0x00}))
	_, _, err := r.ReadPacket()
	if _, ok := err.(*ErrInvalidData); !ok {
		t.Fatalf("want *ErrInvalidData, got %v (%T)", err, err)
	}
}
