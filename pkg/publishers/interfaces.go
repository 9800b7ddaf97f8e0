package publishers

import "context"

// Publisher sends call events to a downstream sink (SQS, SNS, Pub/Sub, HTTP, log).
type Publisher interface {
	ID() string
	Type() string
	Publish(ctx context.Context, evt CallEvent) error
}

// closer is implemented by publishers that hold client connections.
type closer interface {
	Close() error
}
