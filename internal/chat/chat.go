// Package chat builds the JSON chat component payloads the protocol's
// string-typed chat fields carry (ChatMessageCb.JSON, the tab-list
// header/footer).
package chat

import "encoding/json"

// Message is a Minecraft JSON chat component.
type Message struct {
	Text          string    `json:"text"`
	Bold          bool      `json:"bold,omitempty"`
	Italic        bool      `json:"italic,omitempty"`
	Underlined    bool      `json:"underlined,omitempty"`
	Strikethrough bool      `json:"strikethrough,omitempty"`
	Obfuscated    bool      `json:"obfuscated,omitempty"`
	Color         string    `json:"color,omitempty"`
	Extra         []Message `json:"extra,omitempty"`
}

// String serializes the message to JSON. Marshal failure is impossible for
// this struct shape, so the error is discarded.
func (m Message) String() string {
	b, _ := json.Marshal(m)
	return string(b)
}

func Text(text string) Message { return Message{Text: text} }

func Colored(text, color string) Message { return Message{Text: text, Color: color} }
