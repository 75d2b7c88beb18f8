package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"github.com/lao-tseu-is-alive/go-network-background/pkg/background"
	"github.com/lao-tseu-is-alive/go-network-background/pkg/host/termhost"
)

func main() {
	configFile := flag.String("config", "", "JSON or TOML configuration file (defaults when empty)")
	logFile := flag.String("log", "", "log file; the terminal belongs to the screen")
	fps := flag.Int("fps", 30, "frames per second")
	gain := flag.Float64("gain", 3, "alpha multiplier applied to particles and links")
	flag.Parse()

	cfg := background.DefaultConfig()
	if *configFile != "" {
		var err error
		if cfg, err = background.LoadConfig(*configFile); err != nil {
			log.Fatal(err)
		}
	}

	var out io.Writer = io.Discard
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		out = f
	}
	logger := cfg.NewLogger(out)

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}

	host := termhost.New(screen,
		termhost.WithLogger(logger),
		termhost.WithFPS(*fps),
		termhost.WithGain(*gain),
		termhost.WithBackground(cfg.Background.RGBA()),
	)
	bg := background.New(cfg, logger)
	if err := bg.Mount(host); err != nil {
		screen.Fini()
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	host.Run(ctx)
	stop()

	bg.Unmount()
	screen.Fini()
	logger.Infof("terminal background stopped after %d frames", bg.Loop().Frames())
}
