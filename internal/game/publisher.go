package game

import (
	"context"
	"time"
)

// EventKind names something that happened in the world.
type EventKind string

const (
	EventConnected EventKind = "connected"
	EventRejected  EventKind = "rejected"
	EventJoined    EventKind = "joined"
	EventLeft      EventKind = "left"
	EventSay       EventKind = "say"
	EventTell      EventKind = "tell"
	EventMoved     EventKind = "moved"
	EventShutdown  EventKind = "shutdown"
)

// Event describes a notable world change for observers outside the server.
type Event struct {
	Kind    EventKind `json:"kind"`
	Time    time.Time `json:"time"`
	Player  string    `json:"player,omitempty"`
	Target  string    `json:"target,omitempty"`
	Room    int       `json:"room,omitempty"`
	Address string    `json:"address,omitempty"`
	Text    string    `json:"text,omitempty"`
}

// Publisher delivers events. Implementations must not block the caller.
type Publisher interface {
	PublishEvent(ctx context.Context, ev Event) error
}

// NopPublisher discards every event.
type NopPublisher struct{}

func (NopPublisher) PublishEvent(context.Context, Event) error { return nil }
