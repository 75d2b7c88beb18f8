// Package report describes a rendered snapshot as JSON through the
// protobuf well-known Struct type.
package report

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/lao-tseu-is-alive/go-network-background/pkg/background"
	"github.com/lao-tseu-is-alive/go-network-background/pkg/render"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// Snapshot is what the snapshot command knows after rendering.
type Snapshot struct {
	Width, Height int
	Frames        uint64
	Last          render.Stats
	FrameAvgMs    float64
	Image         string
	Config        *background.Config
}

// Build converts s into a Struct. The configuration is embedded with its
// JSON field names.
func Build(s Snapshot) (*structpb.Struct, error) {
	m := map[string]interface{}{
		"width":      s.Width,
		"height":     s.Height,
		"frames":     float64(s.Frames),
		"generation": float64(s.Last.Generation),
		"particles":  s.Last.Particles,
		"links":      s.Last.Links,
		"reflected":  s.Last.Reflected,
		"frameAvgMs": s.FrameAvgMs,
	}
	if s.Image != "" {
		m["image"] = s.Image
	}
	if s.Config != nil {
		b, err := json.Marshal(s.Config)
		if err != nil {
			return nil, fmt.Errorf("failed to encode config: %w", err)
		}
		var cfg map[string]interface{}
		if err := json.Unmarshal(b, &cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config: %w", err)
		}
		m["config"] = cfg
	}
	st, err := structpb.NewStruct(m)
	if err != nil {
		return nil, fmt.Errorf("failed to build report: %w", err)
	}
	return st, nil
}

// Marshal renders the report as indented JSON.
func Marshal(st *structpb.Struct) ([]byte, error) {
	return protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(st)
}

// Write builds the report for s and stores it at path.
func Write(path string, s Snapshot) error {
	st, err := Build(s)
	if err != nil {
		return err
	}
	b, err := Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
