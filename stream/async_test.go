package stream

import (
	"context"
	"testing"
	"time"
)

type gateSink struct {
	gate   chan struct{}
	frames chan *Frame
}

func (s *gateSink) Draw(f *Frame) error {
	<-s.gate
	s.frames <- f
	return nil
}

func TestAsyncSinkDropsWhenFull(t *testing.T) {
	inner := &gateSink{gate: make(chan struct{}), frames: make(chan *Frame, 4)}
	a := NewAsyncSink(inner, 1)

	for seq := uint64(1); seq <= 3; seq++ {
		if err := a.Draw(NewFrame(seq, nil)); err != nil {
			t.Fatal(err)
		}
	}
	if a.Dropped() != 2 {
		t.Errorf("dropped = %d, want 2", a.Dropped())
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		a.Run(ctx)
		close(done)
	}()

	close(inner.gate)
	select {
	case f := <-inner.frames:
		if f.Seq != 1 {
			t.Errorf("delivered frame %d, want 1", f.Seq)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("frame not delivered")
	}

	cancel()
	<-done
}

type stallSink chan struct{}

func (s stallSink) Draw(*Frame) error {
	<-s
	return nil
}

func TestAsyncSinkDoesNotBlockLoop(t *testing.T) {
	inner := make(stallSink)
	a := NewAsyncSink(inner, 2)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	defer close(inner)
	go a.Run(ctx)

	config := DefaultConfig()
	config.FrameRate = 200
	c, err := NewController(config, a)
	if err != nil {
		t.Fatal(err)
	}
	loopCtx, stop := context.WithCancel(context.Background())
	defer stop()
	go c.Run(loopCtx)

	// The wrapped sink never returns, yet edits still reach the loop.
	editCtx, editCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer editCancel()
	for i := 0; i < 3; i++ {
		if err := c.Select(editCtx, "chain"); err != nil {
			t.Fatalf("edit %d: %v", i, err)
		}
		time.Sleep(20 * time.Millisecond)
	}
	if a.Dropped() == 0 {
		t.Error("expected frames to be dropped behind a stalled sink")
	}
}
