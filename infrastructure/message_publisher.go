package infrastructure

import "context"

// MessagePublisher sends encoded ledger events to a broker subject.
// NATSClient is the production implementation.
type MessagePublisher interface {
	// Publish delivers payload on subject. The JetStream ack is awaited before returning.
	Publish(ctx context.Context, subject string, payload []byte) error
}

var _ MessagePublisher = (*NATSClient)(nil)
