// Package notify implements the single-slot transient notification used to
// surface copy feedback. A new message replaces the current one; it is not
// a real queue.
package notify

import (
	"sync"
	"time"
)

// DefaultDuration is how long a notification stays visible when the caller
// does not pick a duration.
const DefaultDuration = 2 * time.Second

// Notifier holds at most one visible message at a time and hides it after
// its countdown elapses.
type Notifier struct {
	mu      sync.Mutex
	message string
	visible bool
	timer   *time.Timer
	seq     uint64
}

// New returns an empty, hidden Notifier.
func New() *Notifier {
	return &Notifier{}
}

// Show replaces the current message, marks it visible, and arms a countdown
// that hides it after duration. A non-positive duration selects
// DefaultDuration. Any countdown pending from an earlier Show is cancelled
// first, so an old timer can never hide a newer message.
func (n *Notifier) Show(message string, duration time.Duration) {
	if duration <= 0 {
		duration = DefaultDuration
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if n.timer != nil {
		n.timer.Stop()
	}
	n.seq++
	seq := n.seq
	n.message = message
	n.visible = true
	n.timer = time.AfterFunc(duration, func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		// A Stop can lose the race with the timer firing; the sequence
		// check keeps a stale countdown from hiding a newer message.
		if n.seq == seq {
			n.visible = false
		}
	})
}

// Dismiss hides the current message early and cancels its countdown.
func (n *Notifier) Dismiss() {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	n.seq++
	n.visible = false
}

// Message returns the current message text, which may belong to an already
// hidden notification.
func (n *Notifier) Message() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.message
}

// Visible reports whether the current message is still showing.
func (n *Notifier) Visible() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.visible
}
