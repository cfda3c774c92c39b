// Package render rasterises segment frames with gogpu/gg.
package render

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/gogpu/gg"
	"github.com/matt-g-everett/linefractal/fractal"
	"github.com/matt-g-everett/linefractal/stream"
)

// paint draws the frame's segments over a black background. The caller
// closes the returned context.
func paint(f *stream.Frame, v fractal.Viewport) (*gg.Context, error) {
	dc := gg.NewContext(int(math.Ceil(v.Width)), int(math.Ceil(v.Height)))
	if err := draw(dc, f); err != nil {
		dc.Close()
		return nil, err
	}
	return dc, nil
}

func draw(dc *gg.Context, f *stream.Frame) error {
	dc.ClearWithColor(gg.Black)
	dc.SetLineCap(gg.LineCapRound)
	for _, s := range f.Segments {
		c := s.Colour.Clamped()
		dc.SetRGB(c.R, c.G, c.B)
		dc.SetLineWidth(s.Width)
		dc.DrawLine(s.Start.X, s.Start.Y, s.End.X, s.End.Y)
		if err := dc.Stroke(); err != nil {
			return fmt.Errorf("stroke segment: %w", err)
		}
	}
	return nil
}

// PNG is a sink that saves every n-th frame as a PNG file.
type PNG struct {
	dir      string
	every    uint64
	viewport fractal.Viewport
}

// NewPNG creates an instance of a PNG sink writing into dir.
func NewPNG(dir string, every int, v fractal.Viewport) (*PNG, error) {
	if every < 1 {
		every = 1
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create png dir: %w", err)
	}

	p := new(PNG)
	p.dir = dir
	p.every = uint64(every)
	p.viewport = v
	return p, nil
}

// Path returns the file name used for frame seq.
func (p *PNG) Path(seq uint64) string {
	return filepath.Join(p.dir, fmt.Sprintf("frame-%06d.png", seq))
}

// Draw writes the frame if its sequence number falls on the sampling interval.
func (p *PNG) Draw(f *stream.Frame) error {
	if f.Seq%p.every != 0 {
		return nil
	}

	dc, err := paint(f, p.viewport)
	if err != nil {
		return err
	}
	defer dc.Close()

	if err := dc.SavePNG(p.Path(f.Seq)); err != nil {
		return fmt.Errorf("save frame %d: %w", f.Seq, err)
	}
	return nil
}
