package roomchat

import (
	"encoding/json"
	"time"
)

// ChatMessage is one inbound chat record produced by the remote service.
// Messages are immutable once received; the session only appends them.
type ChatMessage struct {
	UserName  string    `json:"user_name"`
	Text      string    `json:"text"`
	TimeStamp time.Time `json:"time_stamp"`
}

// decodeFrame parses the wire representation of an inbound frame.
func decodeFrame(data []byte) (ChatMessage, error) {
	var msg ChatMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return ChatMessage{}, WrapError(ErrorDecode, "malformed inbound frame", err)
	}
	return msg, nil
}
