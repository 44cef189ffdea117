// Package main is the entry point for the spinscene demo.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/spinscene/internal/app"
	"github.com/Faultbox/spinscene/internal/config"
	"github.com/Faultbox/spinscene/internal/logger"
	"github.com/Faultbox/spinscene/internal/scenario"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		return 1
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		return 1
	}
	defer logger.Sync()

	logger.Info("=== spinscene ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if config.SaveRequested() {
		if err := cfg.Save(); err != nil {
			logger.Error("failed to save config", zap.Error(err))
			return 1
		}
		logger.Info("config saved", zap.String("dir", config.ConfigDir()))
		return 0
	}

	s, err := loadScenario(cfg)
	if err != nil {
		return fail(cfg, "failed to load scenario", err)
	}

	a := app.New(cfg, s)
	if err := a.Init(); err != nil {
		return fail(cfg, "failed to initialize", err)
	}
	defer a.Dispose()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.Run(ctx); err != nil {
		return fail(cfg, "render loop failed", err)
	}

	logger.Info("closed normally", zap.Int("frames", a.Frames()))
	return 0
}

func loadScenario(cfg *config.Config) (*scenario.Scenario, error) {
	if cfg.Scene.ScenarioFile != "" {
		return scenario.LoadFile(cfg.Scene.ScenarioFile)
	}
	return scenario.Load(cfg.Scene.Scenario)
}

// fail logs a fatal error and shows it in a message box when a desktop
// session is in use.
func fail(cfg *config.Config, msg string, err error) int {
	logger.Error(msg, zap.Error(err))
	if !cfg.Scene.Headless {
		dialog.Message("%s: %v", msg, err).Title("spinscene").Error()
	}
	return 1
}
