// Package notify holds short-lived user notifications in a bounded queue
// with explicit expiry.
package notify

import (
	"sync"
	"time"
)

// Kind is the severity of a notification.
type Kind string

// Notification kinds.
const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindWarning Kind = "warning"
	KindInfo    Kind = "info"
)

const (
	// DefaultDuration is how long a notification is shown.
	DefaultDuration = 3 * time.Second
	// DismissDuration is the length of the dismiss animation after expiry.
	DismissDuration = 300 * time.Millisecond
	// DefaultCapacity is the number of notifications kept at once.
	DefaultCapacity = 5
)

// Notifier is implemented by anything that accepts fire-and-forget
// notifications.
type Notifier interface {
	Notify(message string, kind Kind)
}

// Notification is one queued message.
type Notification struct {
	ID        uint64
	Message   string
	Kind      Kind
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Dismissing reports whether the notification is in its dismiss animation.
func (n Notification) Dismissing(now time.Time) bool {
	return !now.Before(n.ExpiresAt)
}

// gone reports whether the notification should be removed.
func (n Notification) gone(now time.Time) bool {
	return !now.Before(n.ExpiresAt.Add(DismissDuration))
}

// Center is a bounded notification queue. When full, the oldest
// notification is dropped. It is safe for concurrent use.
type Center struct {
	mu       sync.Mutex
	capacity int
	duration time.Duration
	now      func() time.Time
	items    []Notification
	nextID   uint64
	subs     map[int]func()
	nextSub  int
}

// Option configures a Center.
type Option func(*Center)

// WithCapacity bounds the queue length.
func WithCapacity(n int) Option {
	return func(c *Center) {
		if n > 0 {
			c.capacity = n
		}
	}
}

// WithDuration sets how long notifications are shown.
func WithDuration(d time.Duration) Option {
	return func(c *Center) {
		if d > 0 {
			c.duration = d
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Center) {
		c.now = now
	}
}

// NewCenter returns an empty Center.
func NewCenter(opts ...Option) *Center {
	c := &Center{
		capacity: DefaultCapacity,
		duration: DefaultDuration,
		now:      time.Now,
		subs:     make(map[int]func()),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Notify queues a message.
func (c *Center) Notify(message string, kind Kind) {
	if kind == "" {
		kind = KindInfo
	}

	c.mu.Lock()
	now := c.now()
	c.nextID++
	c.items = append(c.items, Notification{
		ID:        c.nextID,
		Message:   message,
		Kind:      kind,
		CreatedAt: now,
		ExpiresAt: now.Add(c.duration),
	})
	if over := len(c.items) - c.capacity; over > 0 {
		c.items = append([]Notification(nil), c.items[over:]...)
	}
	subs := c.subscribers()
	c.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}

// Active prunes finished notifications and returns the rest, oldest first.
func (c *Center) Active() []Notification {
	c.Prune()

	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Notification(nil), c.items...)
}

// Prune removes notifications whose dismiss animation has finished and
// returns how many were removed.
func (c *Center) Prune() int {
	c.mu.Lock()
	now := c.now()
	kept := c.items[:0]
	for _, n := range c.items {
		if !n.gone(now) {
			kept = append(kept, n)
		}
	}
	removed := len(c.items) - len(kept)
	c.items = kept
	var subs []func()
	if removed > 0 {
		subs = c.subscribers()
	}
	c.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
	return removed
}

// Dismiss removes a notification immediately.
func (c *Center) Dismiss(id uint64) {
	c.mu.Lock()
	for i, n := range c.items {
		if n.ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			break
		}
	}
	subs := c.subscribers()
	c.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}

// NextDeadline returns the next time the visible state changes: the
// earliest expiry or removal among queued notifications.
func (c *Center) NextDeadline() (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	var next time.Time
	for _, n := range c.items {
		deadline := n.ExpiresAt
		if n.Dismissing(now) {
			deadline = n.ExpiresAt.Add(DismissDuration)
		}
		if next.IsZero() || deadline.Before(next) {
			next = deadline
		}
	}
	return next, !next.IsZero()
}

// Subscribe registers fn to be called after every change. The returned
// function unregisters it.
func (c *Center) Subscribe(fn func()) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

func (c *Center) subscribers() []func() {
	out := make([]func(), 0, len(c.subs))
	for _, fn := range c.subs {
		out = append(out, fn)
	}
	return out
}
