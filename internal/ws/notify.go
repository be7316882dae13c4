package ws

import (
	"encoding/json"
	"time"
)

type Event struct {
	Type      string `json:"type"`
	Payload   any    `json:"payload,omitempty"`
	Timestamp string `json:"timestamp"`
}

// Publisher adapts the hub to the usecases' event interface.
type Publisher struct {
	hub *Hub
}

func NewPublisher(hub *Hub) *Publisher {
	return &Publisher{hub: hub}
}

func (p *Publisher) Publish(event string, payload any) {
	if p == nil || p.hub == nil || event == "" {
		return
	}

	evt := Event{
		Type:      event,
		Payload:   payload,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	p.hub.Broadcast(b)
}
