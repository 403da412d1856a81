// Package main throws the dice headlessly in the physics world and logs the
// results.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/carved-dice/internal/config"
	"github.com/Faultbox/carved-dice/internal/dice/geometry"
	"github.com/Faultbox/carved-dice/internal/game"
	"github.com/Faultbox/carved-dice/internal/logger"
)

var (
	flagThrows     = flag.Int("throws", 1, "Number of throws")
	flagSaveConfig = flag.String("save-config", "", "Write the effective config to this path and exit")
	flagSaveUser   = flag.Bool("save-user-config", false, "Write the effective config to the user config directory and exit")
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging, true); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if *flagSaveConfig != "" {
		if err := cfg.SaveTo(*flagSaveConfig); err != nil {
			logger.Error("failed to save config", zap.Error(err))
			os.Exit(1)
		}
		logger.Info("config saved", zap.String("path", *flagSaveConfig))
		return
	}

	if *flagSaveUser {
		if err := cfg.Save(); err != nil {
			logger.Error("failed to save config", zap.Error(err))
			os.Exit(1)
		}
		logger.Info("config saved", zap.String("path", config.UserConfigFile()))
		return
	}

	logger.Info("=== Carved Dice ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	g, err := game.New(game.Config{
		Shape: cfg.Shape,
		Roll:  cfg.Roll,
		Sim:   cfg.Sim,
	}, geometry.NewCache(logger.Named("geometry")), nil, logger.Named("table"))
	if err != nil {
		logger.Error("failed to create table", zap.Error(err))
		os.Exit(1)
	}

	for i := 0; i < *flagThrows; i++ {
		id, results, err := g.Roll()
		if err != nil {
			logger.Error("throw failed", zap.Error(err))
			os.Exit(1)
		}

		faces := make([]string, len(results))
		total := 0
		for j, r := range results {
			faces[j] = fmt.Sprint(int(r.Face))
			total += int(r.Face)
		}
		logger.Info("throw",
			zap.Int("n", i+1),
			zap.Stringer("id", id),
			zap.String("faces", strings.Join(faces, " ")),
			zap.Int("total", total))
	}
}
