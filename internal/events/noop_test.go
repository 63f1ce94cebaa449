package events

import (
	"context"
	"testing"
)

func TestNoopPublisher_DiscardsEvents(t *testing.T) {
	var pub Publisher = &NoopPublisher{}
	if err := pub.Publish(context.Background(), TopicIssueCreated, IssueCreated{}); err != nil {
		t.Errorf("Publish: %v", err)
	}
	if err := pub.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}
