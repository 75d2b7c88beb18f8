package background

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/lao-tseu-is-alive/go-network-background/pkg/field"
	"github.com/lao-tseu-is-alive/go-network-background/pkg/render"
	"github.com/santhosh-tekuri/jsonschema/v5"
	golog "github.com/tochemey/goakt/v3/log"
)

//go:embed config.schema.json
var schemaJSON string

// Color is an RGB color with a float alpha in [0, 1].
type Color struct {
	R uint8   `json:"r" toml:"r"`
	G uint8   `json:"g" toml:"g"`
	B uint8   `json:"b" toml:"b"`
	A float64 `json:"a" toml:"a"`
}

// RGBA converts to the render color.
func (c Color) RGBA() render.RGBA {
	return render.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

type Config struct {
	// Population
	SmallCount            int `json:"smallCount" toml:"smallCount"`
	LargeCount            int `json:"largeCount" toml:"largeCount"`
	SmallScreenBreakpoint int `json:"smallScreenBreakpoint" toml:"smallScreenBreakpoint"` // viewport width in px

	// Drift and size
	MaxSpeed  float64 `json:"maxSpeed" toml:"maxSpeed"` // px per frame, per axis
	MinRadius float64 `json:"minRadius" toml:"minRadius"`
	MaxRadius float64 `json:"maxRadius" toml:"maxRadius"`

	// Links
	LinkDistance   float64 `json:"linkDistance" toml:"linkDistance"`
	LinkMaxOpacity float64 `json:"linkMaxOpacity" toml:"linkMaxOpacity"`
	LinkWidth      float64 `json:"linkWidth" toml:"linkWidth"`
	SpatialGrid    bool    `json:"spatialGrid" toml:"spatialGrid"` // bucket particles instead of checking every pair

	// Colors
	ParticleColor Color `json:"particleColor" toml:"particleColor"`
	LinkColor     Color `json:"linkColor" toml:"linkColor"` // alpha ignored, links use their own opacity
	Background    Color `json:"background" toml:"background"`

	// Runtime
	Seed         uint64 `json:"seed" toml:"seed"` // 0 picks a random seed
	LogLevel     string `json:"logLevel" toml:"logLevel"`
	ShowStats    bool   `json:"showStats" toml:"showStats"`
	WindowWidth  int    `json:"windowWidth" toml:"windowWidth"`
	WindowHeight int    `json:"windowHeight" toml:"windowHeight"`
}

func DefaultConfig() *Config {
	return &Config{
		SmallCount:            40,
		LargeCount:            70,
		SmallScreenBreakpoint: 768,
		MaxSpeed:              0.15,
		MinRadius:             1.0,
		MaxRadius:             2.5,
		LinkDistance:          120,
		LinkMaxOpacity:        0.15,
		LinkWidth:             0.8,
		SpatialGrid:           false,
		ParticleColor:         Color{R: 255, G: 255, B: 255, A: 0.2},
		LinkColor:             Color{R: 255, G: 255, B: 255, A: 1},
		Background:            Color{R: 10, G: 10, B: 30, A: 1},
		Seed:                  0,
		LogLevel:              "info",
		ShowStats:             false,
		WindowWidth:           1024,
		WindowHeight:          640,
	}
}

// Params extracts the population parameters.
func (c *Config) Params() field.Params {
	return field.Params{
		SmallCount:            c.SmallCount,
		LargeCount:            c.LargeCount,
		SmallScreenBreakpoint: c.SmallScreenBreakpoint,
		MaxSpeed:              c.MaxSpeed,
		MinRadius:             c.MinRadius,
		MaxRadius:             c.MaxRadius,
	}
}

// Style extracts the drawing style.
func (c *Config) Style() render.Style {
	return render.Style{
		ParticleColor: c.ParticleColor.RGBA(),
		LinkColor:     c.LinkColor.RGBA(),
		LinkWidth:     c.LinkWidth,
	}
}

// Linker builds the link finder.
func (c *Config) Linker() *field.Linker {
	return field.NewLinker(c.LinkDistance, c.LinkMaxOpacity, c.SpatialGrid)
}

// Check validates the rules the schema cannot express.
func (c *Config) Check() error {
	if c.MinRadius > c.MaxRadius {
		return fmt.Errorf("minRadius %.2f is greater than maxRadius %.2f", c.MinRadius, c.MaxRadius)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// LoadConfig loads a configuration file over DefaultConfig and validates it
// against the embedded schema. JSON files are validated as written, TOML
// files once decoded.
func LoadConfig(configFile string) (*Config, error) {
	// 1. Compile Schema
	sch, err := jsonschema.CompileString("config.schema.json", schemaJSON)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	// 2. Read Config File
	b, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}

	cfg := DefaultConfig()
	switch strings.ToLower(filepath.Ext(configFile)) {
	case ".toml":
		if _, err := toml.Decode(string(b), cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config toml: %w", err)
		}
		// validate what was decoded, in its JSON shape
		if b, err = json.Marshal(cfg); err != nil {
			return nil, fmt.Errorf("failed to encode config: %w", err)
		}
		if err := validate(sch, b); err != nil {
			return nil, err
		}
	case ".json", "":
		if err := validate(sch, b); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", filepath.Ext(configFile))
	}

	if err := cfg.Check(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func validate(sch *jsonschema.Schema, b []byte) error {
	var v interface{}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("failed to decode config json: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// ParseLevel maps a config log level to a logger level. It accepts the same
// lowercase names as the schema; empty means info.
func ParseLevel(s string) (golog.Level, error) {
	switch s {
	case "debug":
		return golog.DebugLevel, nil
	case "info", "":
		return golog.InfoLevel, nil
	case "warn":
		return golog.WarningLevel, nil
	case "error":
		return golog.ErrorLevel, nil
	}
	return golog.InfoLevel, errors.New("unknown log level " + s)
}

// NewLogger builds the logger described by the configuration.
func (c *Config) NewLogger(w io.Writer) golog.Logger {
	level, err := ParseLevel(c.LogLevel)
	if err != nil {
		level = golog.InfoLevel
	}
	return golog.New(level, w)
}
