// glyphcrawl is a terminal dungeon crawler.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"glyphcrawl/internal/config"
	"glyphcrawl/internal/game"
	"glyphcrawl/internal/logging"
)

func main() {
	cfgPath := flag.String("config", "", "path to a TOML config file")
	logPath := flag.String("log", "", "write logs to this file (the screen owns stdout)")
	seed := flag.String("seed", "", "dungeon seed (overrides config)")
	flag.Parse()

	if err := run(*cfgPath, *logPath, *seed); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfgPath, logPath, seed string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if seed != "" {
		cfg.Game.Seed = seed
	}

	log, err := logging.ToFile(cfg.Logging, logPath)
	if err != nil {
		return err
	}
	defer log.Sync()

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}

	if err := game.New(screen, cfg, log).Run(); err != nil {
		log.Error("game ended with error", zap.Error(err))
		return err
	}
	return nil
}
