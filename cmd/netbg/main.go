package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lao-tseu-is-alive/go-network-background/pkg/background"
	"github.com/lao-tseu-is-alive/go-network-background/pkg/host/ebitenhost"
)

func main() {
	configFile := flag.String("config", "", "JSON or TOML configuration file (defaults when empty)")
	stats := flag.Bool("stats", false, "show the statistics panel")
	flag.Parse()

	cfg := background.DefaultConfig()
	if *configFile != "" {
		var err error
		if cfg, err = background.LoadConfig(*configFile); err != nil {
			log.Fatal(err)
		}
	}
	if *stats {
		cfg.ShowStats = true
	}
	logger := cfg.NewLogger(os.Stderr)

	bg := background.New(cfg, logger)
	game := ebitenhost.NewGame(bg, logger)

	ebiten.SetWindowSize(cfg.WindowWidth, cfg.WindowHeight)
	ebiten.SetWindowTitle("Network background")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	logger.Infof("starting %dx%d window", cfg.WindowWidth, cfg.WindowHeight)
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
	bg.Unmount()
}
