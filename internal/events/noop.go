package events

import "context"

// NoopPublisher discards events. It stands in for the bus when no NATS
// URL is configured.
type NoopPublisher struct{}

func (n *NoopPublisher) Publish(ctx context.Context, topic string, event any) error {
	return nil
}

func (n *NoopPublisher) Close() error {
	return nil
}
