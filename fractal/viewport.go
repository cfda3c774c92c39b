package fractal

// Viewport is the size of the host drawing surface.
type Viewport struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// DefaultViewport matches the starting configurations' origin.
var DefaultViewport = Viewport{Width: 2000, Height: 1000}

// Centre returns the middle of the viewport.
func (v Viewport) Centre() Point {
	return Point{X: v.Width / 2, Y: v.Height / 2}
}
