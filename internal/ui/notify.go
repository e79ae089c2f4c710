package ui

import (
	"sync"
	"time"
)

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notification is the single transient message slot of the client. At most
// one is visible at a time.
type Notification struct {
	Message   string
	Severity  Severity
	Visible   bool
	ExpiresAt time.Time
}

// Notifier owns the notification slot and its auto-hide timer. A new
// notification replaces the current one and restarts the timer; the stale
// timer can never hide the newer message.
type Notifier struct {
	mu       sync.Mutex
	ttl      time.Duration
	current  Notification
	seq      uint64
	timer    *time.Timer
	onChange func(Notification)
}

// NewNotifier creates a notifier with the given auto-hide duration. onChange
// is invoked on every visible-state change and may be nil.
func NewNotifier(ttl time.Duration, onChange func(Notification)) *Notifier {
	if onChange == nil {
		onChange = func(Notification) {}
	}
	return &Notifier{ttl: ttl, onChange: onChange}
}

func (n *Notifier) Notify(message string, severity Severity) {
	n.mu.Lock()
	n.seq++
	seq := n.seq
	if n.timer != nil {
		n.timer.Stop()
	}
	n.current = Notification{
		Message:   message,
		Severity:  severity,
		Visible:   true,
		ExpiresAt: time.Now().Add(n.ttl),
	}
	n.timer = time.AfterFunc(n.ttl, func() { n.hide(seq) })
	current := n.current
	n.mu.Unlock()

	n.onChange(current)
}

// hide only takes effect if no newer notification was issued since the timer
// was armed.
func (n *Notifier) hide(seq uint64) {
	n.mu.Lock()
	if seq != n.seq || !n.current.Visible {
		n.mu.Unlock()
		return
	}
	n.current.Visible = false
	current := n.current
	n.mu.Unlock()

	n.onChange(current)
}

func (n *Notifier) Current() Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}
