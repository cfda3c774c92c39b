package stream

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/linefractal/fractal"
)

const (
	headerSize  = 12
	segmentSize = 5*4 + 3
)

// ErrShortFrame is returned when binary frame data is truncated.
var ErrShortFrame = errors.New("stream: short frame")

// Frame represents one frame of line segments to hand to a rendering sink.
type Frame struct {
	Seq      uint64
	Segments []fractal.Segment
}

// NewFrame creates a new Frame instance.
func NewFrame(seq uint64, segments []fractal.Segment) *Frame {
	f := new(Frame)
	f.Seq = seq
	f.Segments = segments
	return f
}

// MarshalBinary converts a Frame into binary data: a little-endian sequence
// number and segment count, then per segment x1, y1, x2, y2 and width as
// float32 followed by the colour as three bytes.
func (f *Frame) MarshalBinary() (data []byte, err error) {
	if uint64(len(f.Segments)) > math.MaxUint32 {
		return nil, fmt.Errorf("stream: %d segments do not fit in a frame", len(f.Segments))
	}

	data = make([]byte, headerSize, headerSize+len(f.Segments)*segmentSize)
	binary.LittleEndian.PutUint64(data, f.Seq)
	binary.LittleEndian.PutUint32(data[8:], uint32(len(f.Segments)))
	for _, s := range f.Segments {
		for _, v := range [...]float64{s.Start.X, s.Start.Y, s.End.X, s.End.Y, s.Width} {
			data = binary.LittleEndian.AppendUint32(data, math.Float32bits(float32(v)))
		}
		r, g, b := s.Colour.Clamped().RGB255()
		data = append(data, r, g, b)
	}

	return data, nil
}

// UnmarshalBinary decodes data produced by MarshalBinary.
func (f *Frame) UnmarshalBinary(data []byte) error {
	if len(data) < headerSize {
		return ErrShortFrame
	}
	seq := binary.LittleEndian.Uint64(data)
	count := binary.LittleEndian.Uint32(data[8:])
	body := data[headerSize:]
	if uint64(len(body)) < uint64(count)*segmentSize {
		return ErrShortFrame
	}

	segments := make([]fractal.Segment, count)
	for i := range segments {
		var v [5]float64
		for j := range v {
			v[j] = float64(math.Float32frombits(binary.LittleEndian.Uint32(body[j*4:])))
		}
		segments[i] = fractal.Segment{
			Start:  fractal.Point{X: v[0], Y: v[1]},
			End:    fractal.Point{X: v[2], Y: v[3]},
			Width:  v[4],
			Colour: colorful.Color{R: float64(body[20]) / 255, G: float64(body[21]) / 255, B: float64(body[22]) / 255},
		}
		body = body[segmentSize:]
	}

	f.Seq = seq
	f.Segments = segments
	return nil
}
