// Package pubsub fans out typed events to any number of subscribers.
// The viewer uses it to hear about source file changes, theme switches
// and log entries without polling.
package pubsub

import (
	"context"
	"time"
)

// EventType names what happened.
type EventType string

const (
	// FileChangedEvent carries the path of a watched source file that changed.
	FileChangedEvent EventType = "file_changed"
	// RestyledEvent is published after a styling pass completes.
	RestyledEvent EventType = "restyled"
	// ThemeChangedEvent is published when the registry applies a new theme.
	ThemeChangedEvent EventType = "theme_changed"
	// LogEvent carries one formatted log entry.
	LogEvent EventType = "log"
)

// Event is a published payload stamped with its type and publish time.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber provides a subscription channel for events.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher publishes events with a typed payload.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
