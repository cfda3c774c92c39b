package stream

import (
	"errors"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/linefractal/fractal"
)

func TestFrameBinary(t *testing.T) {
	in := NewFrame(42, []fractal.Segment{
		{Start: fractal.Point{X: 1, Y: 2}, End: fractal.Point{X: 3.5, Y: -4}, Width: 0.5, Colour: colorful.Color{R: 1}},
		{Start: fractal.Point{X: 10, Y: 20}, End: fractal.Point{X: 30, Y: 40}, Width: 2, Colour: colorful.Color{R: 1, G: 1, B: 1}},
	})

	data, err := in.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	if want := headerSize + 2*segmentSize; len(data) != want {
		t.Fatalf("len = %d, want %d", len(data), want)
	}

	var out Frame
	if err := out.UnmarshalBinary(data); err != nil {
		t.Fatal(err)
	}
	if out.Seq != 42 || len(out.Segments) != 2 {
		t.Fatalf("decoded %+v", out)
	}
	for i := range in.Segments {
		if in.Segments[i] != out.Segments[i] {
			t.Errorf("segment %d = %+v, want %+v", i, out.Segments[i], in.Segments[i])
		}
	}
}

func TestFrameEmpty(t *testing.T) {
	data, err := NewFrame(1, nil).MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	var out Frame
	if err := out.UnmarshalBinary(data); err != nil {
		t.Fatal(err)
	}
	if len(out.Segments) != 0 {
		t.Errorf("got %d segments", len(out.Segments))
	}
}

func TestFrameShort(t *testing.T) {
	data, _ := NewFrame(1, make([]fractal.Segment, 3)).MarshalBinary()
	var out Frame
	for _, n := range []int{0, headerSize - 1, len(data) - 1} {
		if err := out.UnmarshalBinary(data[:n]); !errors.Is(err, ErrShortFrame) {
			t.Errorf("len %d: err = %v, want ErrShortFrame", n, err)
		}
	}
}
