package stream

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/matt-g-everett/linefractal/fractal"
)

// ErrUnknownVariant is returned when a fractal variant name is not recognised.
var ErrUnknownVariant = errors.New("stream: unknown fractal variant")

// A Sink consumes rendered frames.
type Sink interface {
	Draw(f *Frame) error
}

type edit struct {
	fn   func() error
	done chan error
}

// Controller that owns the active fractal and runs the frame loop. All state
// changes happen on the goroutine running Run; other goroutines queue them
// through Edit and Select.
type Controller struct {
	config    Config
	fractal   fractal.Fractal
	viewport  fractal.Viewport
	frameRate float64
	cycleTime time.Duration
	sinks     []Sink
	edits     chan edit
	seq       uint64
}

// NewController creates an instance of a Controller showing the configured
// variant.
func NewController(config Config, sinks ...Sink) (*Controller, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	c := new(Controller)
	c.config = config
	c.viewport = config.Viewport
	c.frameRate = config.FrameRate
	c.cycleTime = config.Cycle
	c.sinks = sinks
	c.edits = make(chan edit)

	kind, _ := fractal.ParseKind(config.Variant)
	if err := c.selectKind(kind); err != nil {
		return nil, err
	}

	return c, nil
}

// CalculateFrame runs one frame: re-centre on the viewport, advance the clock
// by dt seconds and generate the segments.
func (c *Controller) CalculateFrame(dt float64) *Frame {
	c.fractal.Recentre(c.viewport)
	c.fractal.Advance(dt)
	c.seq++
	return NewFrame(c.seq, c.fractal.Segments())
}

// Kind returns the active variant. Only safe on the loop goroutine or before
// Run starts.
func (c *Controller) Kind() fractal.Kind {
	return c.fractal.Kind()
}

func (c *Controller) selectKind(kind fractal.Kind) error {
	f, err := c.config.starting(kind)
	if err != nil {
		return err
	}
	c.fractal = f
	return nil
}

func (c *Controller) cycleAnimation() {
	next := fractal.Kinds[0]
	for i, k := range fractal.Kinds {
		if k == c.fractal.Kind() {
			next = fractal.Kinds[(i+1)%len(fractal.Kinds)]
			break
		}
	}
	log.Printf("cycling fractal: %s -> %s", c.fractal.Kind(), next)
	if err := c.selectKind(next); err != nil {
		log.Printf("cycle: %v", err)
	}
}

func (c *Controller) do(ctx context.Context, fn func() error) error {
	e := edit{fn: fn, done: make(chan error, 1)}
	select {
	case c.edits <- e:
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-e.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Edit runs fn against the active fractal between frames. The fractal must
// not be retained after fn returns.
func (c *Controller) Edit(ctx context.Context, fn func(f fractal.Fractal) error) error {
	return c.do(ctx, func() error {
		return fn(c.fractal)
	})
}

// Select replaces the active fractal with the starting configuration of kind.
func (c *Controller) Select(ctx context.Context, kind fractal.Kind) error {
	if _, err := fractal.ParseKind(string(kind)); err != nil {
		return fmt.Errorf("%w: %q", ErrUnknownVariant, kind)
	}
	return c.do(ctx, func() error {
		log.Printf("selecting fractal: %s", kind)
		return c.selectKind(kind)
	})
}

// publish runs each sink on the loop goroutine, so a slow sink delays the
// next frame and queued edits. Wrap such sinks in an AsyncSink.
func (c *Controller) publish(f *Frame) {
	for _, s := range c.sinks {
		if err := s.Draw(f); err != nil {
			log.Printf("sink %T: %v", s, err)
		}
	}
}

// Run drives the frame loop until ctx is cancelled.
func (c *Controller) Run(ctx context.Context) error {
	frameTimer := time.NewTicker(time.Duration(float64(time.Second) / c.frameRate))
	defer frameTimer.Stop()

	var cycle <-chan time.Time
	if c.cycleTime > 0 {
		cycleTimer := time.NewTicker(c.cycleTime)
		defer cycleTimer.Stop()
		cycle = cycleTimer.C
	}

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-frameTimer.C:
			dt := now.Sub(last).Seconds()
			last = now
			c.publish(c.CalculateFrame(dt))
		case <-cycle:
			c.cycleAnimation()
		case e := <-c.edits:
			e.done <- e.fn()
		}
	}
}
