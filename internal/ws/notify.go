package ws

import (
	"encoding/json"
	"time"

	"middlebeat/internal/domain/message"
)

const (
	EventMessageReceived = "message_received"
	EventSessionChanged  = "session_changed"
)

type Event struct {
	Type      string `json:"type"`
	Data      any    `json:"data,omitempty"`
	Timestamp string `json:"timestamp"`
}

// Notifier turns domain events into hub messages addressed by user id.
type Notifier struct {
	hub *Hub
	now func() time.Time
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub, now: time.Now}
}

func (n *Notifier) MessageReceived(m message.Message) {
	n.publish(m.ReceiverID, EventMessageReceived, m)
}

// SessionChanged tells the user's other connections that a session signed
// in or out.
func (n *Notifier) SessionChanged(userID, status string) {
	n.publish(userID, EventSessionChanged, map[string]string{"status": status})
}

func (n *Notifier) publish(topic, typ string, data any) {
	if n == nil || n.hub == nil || topic == "" {
		return
	}
	b, err := json.Marshal(Event{Type: typ, Data: data, Timestamp: n.now().UTC().Format(time.RFC3339)})
	if err != nil {
		return
	}
	n.hub.Broadcast(topic, b)
}
