package chat

import (
	"encoding/json"
	"testing"
)

func TestMessageRoundTripsThroughJSON(t *testing.T) {
	m := Colored("hello", "red")
	var decoded Message
	if err := json.Unmarshal([]byte(m.String()), &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Text != "hello" || decoded.Color != "red" {
		t.Fatalf("got %+v", decoded)
	}
}

func TestTextOmitsEmptyFields(t *testing.T) {
	s := Text("plain").String()
	if s != `{"text":"plain"}` {
		t.Fatalf("expected minimal JSON, got %s", s)
	}
}
