package ui

import (
	"sync"
	"testing"
	"time"
)

func TestNotifier_ShowsMessageWithExpiry(t *testing.T) {
	n := NewNotifier(time.Minute, nil)

	before := time.Now()
	n.Notify("Patient registered successfully!", SeveritySuccess)

	cur := n.Current()
	if !cur.Visible {
		t.Fatal("expected notification visible")
	}
	if cur.Message != "Patient registered successfully!" || cur.Severity != SeveritySuccess {
		t.Errorf("unexpected notification %+v", cur)
	}
	if cur.ExpiresAt.Before(before.Add(time.Minute - time.Second)) {
		t.Error("expiry not measured from issuance")
	}
}

func TestNotifier_SecondReplacesFirst(t *testing.T) {
	n := NewNotifier(time.Minute, nil)

	n.Notify("first", SeveritySuccess)
	n.Notify("second", SeverityError)

	cur := n.Current()
	if cur.Message != "second" || cur.Severity != SeverityError {
		t.Errorf("expected most recent notification visible, got %+v", cur)
	}
}

func TestNotifier_AutoHides(t *testing.T) {
	n := NewNotifier(40*time.Millisecond, nil)

	n.Notify("transient", SeverityError)
	time.Sleep(120 * time.Millisecond)

	if n.Current().Visible {
		t.Error("expected notification hidden after ttl")
	}
}

// A stale timer from a replaced notification must never hide the newer one
// early: the hide deadline restarts on every issuance.
func TestNotifier_StaleTimerDoesNotHideNewerMessage(t *testing.T) {
	n := NewNotifier(60*time.Millisecond, nil)

	n.Notify("first", SeveritySuccess)
	time.Sleep(40 * time.Millisecond)
	n.Notify("second", SeverityError)

	// The first timer would have fired by now; the second must still show.
	time.Sleep(40 * time.Millisecond)
	cur := n.Current()
	if !cur.Visible {
		t.Fatal("second notification hidden too early")
	}
	if cur.Message != "second" {
		t.Errorf("expected second message, got %q", cur.Message)
	}

	time.Sleep(60 * time.Millisecond)
	if n.Current().Visible {
		t.Error("second notification should have expired by now")
	}
}

func TestNotifier_ObserverSeesChanges(t *testing.T) {
	var mu sync.Mutex
	var seen []Notification
	n := NewNotifier(30*time.Millisecond, func(notif Notification) {
		mu.Lock()
		seen = append(seen, notif)
		mu.Unlock()
	})

	n.Notify("hello", SeveritySuccess)
	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 2 {
		t.Fatalf("expected show and hide events, got %d", len(seen))
	}
	if !seen[0].Visible || seen[1].Visible {
		t.Errorf("expected visible then hidden, got %+v", seen)
	}
}
