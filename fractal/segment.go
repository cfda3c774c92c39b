package fractal

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Segment is one line handed to a rendering sink.
type Segment struct {
	Start  Point
	End    Point
	Width  float64
	Colour colorful.Color
}

// Colour wraps a colorful.Color so it reads and writes as a hex string in
// YAML and JSON.
type Colour struct {
	colorful.Color
}

// MustHex parses a hex colour, panicking on malformed input. Only used for
// fixed starting configurations.
func MustHex(s string) Colour {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return Colour{c}
}

// MarshalText implements encoding.TextMarshaler.
func (c Colour) MarshalText() ([]byte, error) {
	return []byte(c.Clamped().Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Colour) UnmarshalText(text []byte) error {
	col, err := colorful.Hex(string(text))
	if err != nil {
		return fmt.Errorf("colour %q: %w", text, err)
	}
	c.Color = col
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (c Colour) MarshalYAML() (interface{}, error) {
	return c.Clamped().Hex(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Colour) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	return c.UnmarshalText([]byte(s))
}

// Stroke describes how segments are drawn. When Tail is set, the colour
// ramps from Colour at the first depth level to Tail at the last.
type Stroke struct {
	Width  float64 `json:"width" yaml:"width"`
	Colour Colour  `json:"colour" yaml:"colour"`
	Tail   *Colour `json:"tail,omitempty" yaml:"tail,omitempty"`
}
