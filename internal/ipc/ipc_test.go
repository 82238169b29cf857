package ipc

import (
	"testing"

	"github.com/google/uuid"
)

func TestLoginFrameRoundTrips(t *testing.T) {
	want := Login{Username: "Notch", UUID: uuid.New(), ProtocolVersion: 754}
	got, err := decodeLogin(encodeLogin(want))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestDecodeLoginRejectsTruncatedFrame(t *testing.T) {
	full := encodeLogin(Login{Username: "Notch", UUID: uuid.New(), ProtocolVersion: 754})
	if _, err := decodeLogin(full[:len(full)-10]); err == nil {
		t.Fatalf("expected an error decoding a truncated frame")
	}
}
