package main

import (
	"flag"
	"log"
	"os"

	"github.com/lao-tseu-is-alive/go-network-background/internal/report"
	"github.com/lao-tseu-is-alive/go-network-background/pkg/background"
	"github.com/lao-tseu-is-alive/go-network-background/pkg/host/manual"
	"github.com/lao-tseu-is-alive/go-network-background/pkg/surface/ggsurface"
)

func main() {
	configFile := flag.String("config", "", "JSON or TOML configuration file (defaults when empty)")
	frames := flag.Int("frames", 120, "frames to simulate before the snapshot")
	width := flag.Int("width", 0, "surface width (windowWidth when 0)")
	height := flag.Int("height", 0, "surface height (windowHeight when 0)")
	viewport := flag.Int("viewport", 0, "viewport width for the particle count (surface width when 0)")
	out := flag.String("out", "background.png", "PNG output")
	reportFile := flag.String("report", "", "optional JSON frame report")
	flag.Parse()

	cfg := background.DefaultConfig()
	if *configFile != "" {
		var err error
		if cfg, err = background.LoadConfig(*configFile); err != nil {
			log.Fatal(err)
		}
	}
	if *width > 0 {
		cfg.WindowWidth = *width
	}
	if *height > 0 {
		cfg.WindowHeight = *height
	}
	logger := cfg.NewLogger(os.Stderr)

	surface := ggsurface.New(cfg.WindowWidth, cfg.WindowHeight, cfg.Background.RGBA())
	host := manual.New(surface)
	host.SetViewportWidth(*viewport)

	bg := background.New(cfg, logger)
	if err := bg.Mount(host); err != nil {
		log.Fatal(err)
	}
	host.Run(max(*frames, 1))
	bg.Unmount()

	if err := surface.SavePNG(*out); err != nil {
		log.Fatal(err)
	}
	loop := bg.Loop()
	logger.Infof("wrote %s: %d frames, %d particles, %d links", *out, loop.Frames(), loop.Stats().Particles, loop.Stats().Links)

	if *reportFile != "" {
		err := report.Write(*reportFile, report.Snapshot{
			Width:      cfg.WindowWidth,
			Height:     cfg.WindowHeight,
			Frames:     loop.Frames(),
			Last:       loop.Stats(),
			FrameAvgMs: float64(loop.FrameAvg().Microseconds()) / 1000,
			Image:      *out,
			Config:     cfg,
		})
		if err != nil {
			log.Fatal(err)
		}
	}
}
