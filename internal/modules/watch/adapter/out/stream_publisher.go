package out

import (
	"context"
	"fmt"
	"io"
	"sync"

	watchout "poolwatch/internal/modules/watch/port/out"
)

// StreamPublisher writes "<topic> <payload>" lines instead of talking to a
// broker. Used for dry runs.
type StreamPublisher struct {
	mu sync.Mutex
	w  io.Writer
}

func NewStreamPublisher(w io.Writer) watchout.Publisher {
	return &StreamPublisher{w: w}
}

func (p *StreamPublisher) Publish(_ context.Context, topic string, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, err := fmt.Fprintf(p.w, "%s %s\n", topic, payload)
	return err
}

func (p *StreamPublisher) Close() {}
