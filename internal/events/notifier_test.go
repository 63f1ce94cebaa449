package events

import (
	"context"
	"testing"
	"time"
)

func TestNotifier_DebouncesBurst(t *testing.T) {
	url := startTestNATS(t)

	pub, err := NewNATSPublisher(url)
	if err != nil {
		t.Fatalf("creating publisher: %v", err)
	}
	defer pub.Close()

	sub, err := NewNATSSubscriber(url)
	if err != nil {
		t.Fatalf("creating subscriber: %v", err)
	}
	defer sub.Close()

	fired := make(chan struct{}, 16)
	n := NewNotifier(sub, func() { fired <- struct{}{} })
	if err := n.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer n.Stop()

	ctx := context.Background()
	for range 10 {
		if err := pub.Publish(ctx, TopicIssueUpdated, IssueUpdated{}); err != nil {
			t.Fatalf("publish: %v", err)
		}
	}
	pub.conn.Flush()

	select {
	case <-fired:
	case <-time.After(3 * time.Second):
		t.Fatal("notifier never fired after events")
	}

	// The burst should have collapsed into a single callback.
	select {
	case <-fired:
		t.Error("burst of events produced more than one callback")
	case <-time.After(500 * time.Millisecond):
	}
}

func TestNotifier_StartStopIdempotent(t *testing.T) {
	url := startTestNATS(t)

	sub, err := NewNATSSubscriber(url)
	if err != nil {
		t.Fatalf("creating subscriber: %v", err)
	}
	defer sub.Close()

	n := NewNotifier(sub, func() {})
	if err := n.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := n.Start(); err != nil {
		t.Errorf("second Start: %v", err)
	}
	n.Stop()
	n.Stop()
}
