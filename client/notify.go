package client

import (
	"sync"
	"time"

	"talentgate/internal/utils/uid"
)

// DefaultToastDuration is how long a notification stays up before
// removing itself.
const DefaultToastDuration = 4 * time.Second

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
)

type Notification struct {
	ID      int64
	Level   Level
	Message string
}

// Bus is the toast notification channel: any caller pushes, subscribers
// get the full stack on every change. Each notification carries its own
// expiry timer, cancelled on manual dismissal.
type Bus struct {
	mu          sync.Mutex
	duration    time.Duration
	active      []Notification
	timers      map[int64]*time.Timer
	subscribers map[int64]func([]Notification)
}

func NewBus() *Bus {
	return &Bus{
		duration:    DefaultToastDuration,
		timers:      make(map[int64]*time.Timer),
		subscribers: make(map[int64]func([]Notification)),
	}
}

// SetDuration overrides the auto-dismiss delay. Mostly for tests.
func (b *Bus) SetDuration(d time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.duration = d
}

// Subscribe registers a listener and returns its unsubscribe function.
// The listener immediately receives the current stack.
func (b *Bus) Subscribe(fn func([]Notification)) func() {
	b.mu.Lock()
	id := uid.Generate()
	b.subscribers[id] = fn
	snapshot := b.snapshot()
	b.mu.Unlock()

	fn(snapshot)
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subscribers, id)
	}
}

// Push adds a notification, schedules its auto-dismiss, and returns its
// id for manual dismissal.
func (b *Bus) Push(level Level, message string) int64 {
	b.mu.Lock()
	id := uid.Generate()
	b.active = append(b.active, Notification{ID: id, Level: level, Message: message})
	b.timers[id] = time.AfterFunc(b.duration, func() {
		b.Dismiss(id)
	})
	b.notifyLocked()
	b.mu.Unlock()
	return id
}

func (b *Bus) Success(message string) int64 { return b.Push(LevelSuccess, message) }
func (b *Bus) Error(message string) int64   { return b.Push(LevelError, message) }

// Dismiss removes one notification and cancels its expiry timer. A
// second dismissal of the same id is a no-op.
func (b *Bus) Dismiss(id int64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if timer, ok := b.timers[id]; ok {
		timer.Stop()
		delete(b.timers, id)
	}

	for i, n := range b.active {
		if n.ID == id {
			b.active = append(b.active[:i], b.active[i+1:]...)
			b.notifyLocked()
			return
		}
	}
}

// Active returns the current stack, newest last.
func (b *Bus) Active() []Notification {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshot()
}

func (b *Bus) snapshot() []Notification {
	out := make([]Notification, len(b.active))
	copy(out, b.active)
	return out
}

func (b *Bus) notifyLocked() {
	snapshot := b.snapshot()
	for _, fn := range b.subscribers {
		go fn(snapshot)
	}
}
