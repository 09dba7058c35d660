package out

import "context"

// Publisher delivers retained messages to a broker topic.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload []byte) error
	Close()
}
