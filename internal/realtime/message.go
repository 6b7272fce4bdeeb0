package realtime

import "encoding/json"

// Message is the wire format for events pushed to connected clients.
type Message struct {
	Event   string `json:"event"`
	Payload any    `json:"payload,omitempty"`
}

// Encode marshals the message, falling back to a bare event on marshal
// failure so the hub never drops an event for an unserializable payload.
func (m Message) Encode() []byte {
	data, err := json.Marshal(m)
	if err != nil {
		data, _ = json.Marshal(Message{Event: m.Event})
	}
	return data
}
