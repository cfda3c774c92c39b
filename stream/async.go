package stream

import (
	"context"
	"log"
	"sync/atomic"
)

// AsyncSink hands frames to a wrapped Sink on its own goroutine. When the
// wrapped sink falls behind, frames beyond the buffer are dropped rather than
// holding back the frame loop.
type AsyncSink struct {
	sink    Sink
	frames  chan *Frame
	dropped atomic.Uint64
}

// NewAsyncSink creates an instance of an AsyncSink queueing up to buffer
// frames. Run must be started for frames to be delivered.
func NewAsyncSink(sink Sink, buffer int) *AsyncSink {
	if buffer < 1 {
		buffer = 1
	}
	a := new(AsyncSink)
	a.sink = sink
	a.frames = make(chan *Frame, buffer)
	return a
}

// Draw queues the frame without blocking.
func (a *AsyncSink) Draw(f *Frame) error {
	select {
	case a.frames <- f:
	default:
		a.dropped.Add(1)
	}
	return nil
}

// Dropped returns the number of frames discarded because the queue was full.
func (a *AsyncSink) Dropped() uint64 {
	return a.dropped.Load()
}

// Run delivers queued frames until ctx is cancelled.
func (a *AsyncSink) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case f := <-a.frames:
			if err := a.sink.Draw(f); err != nil {
				log.Printf("sink %T: %v", a.sink, err)
			}
		}
	}
}
