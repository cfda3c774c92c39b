package stream

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/matt-g-everett/linefractal/fractal"
	"gopkg.in/yaml.v2"
)

// Config is the YAML configuration of the fractal host.
type Config struct {
	Mqtt struct {
		URL      string `yaml:"url"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		Qos      byte   `yaml:"qos"`
		Topics   struct {
			Stream string `yaml:"stream"`
		} `yaml:"topics"`
	} `yaml:"mqtt"`
	HTTP struct {
		Addr string `yaml:"addr"`
	} `yaml:"http"`
	Png struct {
		Dir   string `yaml:"dir"`
		Every int    `yaml:"every"`
	} `yaml:"png"`
	Viewport  fractal.Viewport     `yaml:"viewport"`
	FrameRate float64              `yaml:"frameRate"`
	Variant   string               `yaml:"variant"`
	Cycle     time.Duration        `yaml:"cycle"`
	Wrap      string               `yaml:"wrap"`
	Chain     *fractal.ChainParams `yaml:"chain"`
	Tree      *fractal.TreeParams  `yaml:"tree"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	var c Config
	c.Mqtt.Topics.Stream = "fractal/stream"
	c.HTTP.Addr = ":3000"
	c.Png.Every = 30
	c.Viewport = fractal.DefaultViewport
	c.FrameRate = 30
	c.Variant = string(fractal.KindTree)
	c.Wrap = string(fractal.WrapSnap)
	chain := fractal.DefaultChainParams()
	tree := fractal.DefaultTreeParams()
	c.Chain = &chain
	c.Tree = &tree
	return c
}

// ReadConfig decodes the YAML file at path over DefaultConfig. A missing file
// yields the defaults.
func ReadConfig(path string) (Config, error) {
	c := DefaultConfig()
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return c, nil
	} else if err != nil {
		return c, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return c, fmt.Errorf("decode config %s: %w", path, err)
	}
	return c, c.Validate()
}

// Validate checks the values the frame loop depends on.
func (c *Config) Validate() error {
	if _, err := fractal.ParseKind(c.Variant); err != nil {
		return fmt.Errorf("%w: %q", ErrUnknownVariant, c.Variant)
	}
	if _, err := fractal.ParseWrapMode(c.Wrap); err != nil {
		return err
	}
	if !(c.FrameRate > 0) {
		return fmt.Errorf("frameRate must be positive, got %v", c.FrameRate)
	}
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return fmt.Errorf("viewport must be positive, got %vx%v", c.Viewport.Width, c.Viewport.Height)
	}
	if c.Chain != nil {
		if err := c.Chain.Validate(); err != nil {
			return fmt.Errorf("chain: %w", err)
		}
	}
	if c.Tree != nil {
		if err := c.Tree.Validate(); err != nil {
			return fmt.Errorf("tree: %w", err)
		}
	}
	return nil
}

// starting returns a fresh fractal in the configured starting state.
func (c *Config) starting(kind fractal.Kind) (fractal.Fractal, error) {
	wrap, err := fractal.ParseWrapMode(c.Wrap)
	if err != nil {
		return nil, err
	}

	switch kind {
	case fractal.KindChain:
		p := fractal.DefaultChainParams()
		if c.Chain != nil {
			p = *c.Chain
			p.Stroke = p.Stroke.Clone()
		}
		return fractal.NewChain(p, wrap), nil
	case fractal.KindTree:
		p := fractal.DefaultTreeParams()
		if c.Tree != nil {
			p = *c.Tree
			p.Stroke = p.Stroke.Clone()
		}
		return fractal.NewTree(p, wrap), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, kind)
}
