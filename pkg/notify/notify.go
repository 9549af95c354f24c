package notify

import (
	"context"
	"sync"

	"github.com/olgakuznetsova/minimarket-core/pkg/enums"
	"github.com/olgakuznetsova/minimarket-core/pkg/logger"
)

// Event is a discrete, best-effort user-facing notification. The shell may
// render, coalesce, or drop it; publishing never fails the operation that
// produced it.
type Event struct {
	Name    string
	Message string
	Level   enums.NotificationLevel
}

// Notifier receives events emitted by core operations.
type Notifier interface {
	Publish(ctx context.Context, event Event)
}

// Log writes every event to the structured logger.
type Log struct {
	logg *logger.Logger
}

// NewLog builds a logger-backed notifier.
func NewLog(logg *logger.Logger) *Log {
	return &Log{logg: logg}
}

func (l *Log) Publish(ctx context.Context, event Event) {
	if l == nil || l.logg == nil {
		return
	}
	ctx = l.logg.WithFields(ctx, map[string]any{
		"event": event.Name,
		"level": event.Level.String(),
	})
	switch event.Level {
	case enums.NotificationLevelError:
		l.logg.Warn(ctx, event.Message)
	default:
		l.logg.Info(ctx, event.Message)
	}
}

// Nop discards every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) {}

// Collector retains published events for inspection in tests.
type Collector struct {
	mu     sync.Mutex
	events []Event
}

func (c *Collector) Publish(_ context.Context, event Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
}

// Events returns a copy of everything published so far.
func (c *Collector) Events() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Event, len(c.events))
	copy(out, c.events)
	return out
}
