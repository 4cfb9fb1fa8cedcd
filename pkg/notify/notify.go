// Package notify dispatches transient, non-blocking user notifications.
// Components receive a Notifier through their configuration; there is no
// package-level instance.
package notify

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind classifies a notification for presentation.
type Kind string

// Notification kinds.
const (
	Success Kind = "success"
	Info    Kind = "info"
	Error   Kind = "error"
)

// Notification is a single transient message.
type Notification struct {
	ID      uuid.UUID `json:"id"`
	Kind    Kind      `json:"kind"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

// New creates a notification stamped with a fresh ID and the current time.
func New(kind Kind, message string) Notification {
	return Notification{
		ID:      uuid.New(),
		Kind:    kind,
		Message: message,
		Time:    time.Now(),
	}
}

// Notifier accepts notifications for display.
type Notifier interface {
	Enqueue(kind Kind, message string)
}

// Discard is a Notifier that drops every notification.
var Discard Notifier = discard{}

type discard struct{}

func (discard) Enqueue(Kind, string) {}

// Func adapts a function to the Notifier interface.
type Func func(kind Kind, message string)

// Enqueue calls f(kind, message).
func (f Func) Enqueue(kind Kind, message string) {
	f(kind, message)
}

// Errorf enqueues a formatted error notification.
func Errorf(n Notifier, format string, args ...any) {
	n.Enqueue(Error, fmt.Sprintf(format, args...))
}

// Logged decorates a Notifier so every notification is also logged.
func Logged(next Notifier, logger *slog.Logger) Notifier {
	return Func(func(kind Kind, message string) {
		if kind == Error {
			logger.Warn("notification", "kind", kind, "message", message)
		} else {
			logger.Debug("notification", "kind", kind, "message", message)
		}
		next.Enqueue(kind, message)
	})
}

// Recorder keeps every notification in memory. It is safe for concurrent use.
type Recorder struct {
	mu    sync.Mutex
	items []Notification
}

// Enqueue records the notification.
func (r *Recorder) Enqueue(kind Kind, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, New(kind, message))
}

// All returns a copy of the recorded notifications.
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.items...)
}

// Count returns the number of recorded notifications of the given kind.
func (r *Recorder) Count(kind Kind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, item := range r.items {
		if item.Kind == kind {
			n++
		}
	}
	return n
}
