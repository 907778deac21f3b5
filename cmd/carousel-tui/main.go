// Package main runs the carousel in the terminal: the models are decoded and
// the animator is driven frame by frame, with poses printed instead of drawn.
package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/Faultbox/carousel3d/internal/assets"
	"github.com/Faultbox/carousel3d/internal/carousel"
	"github.com/Faultbox/carousel3d/internal/config"
	"github.com/Faultbox/carousel3d/internal/engine/model"
	"github.com/Faultbox/carousel3d/internal/logger"
	"github.com/Faultbox/carousel3d/internal/tui"
)

const defaultLogFile = "carousel-tui.log"

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// The terminal belongs to the UI, so logs only go to file.
	logFile := cfg.Logging.LogFile
	if logFile == "" {
		logFile = defaultLogFile
	}
	if err := logger.InitWithOptions(logger.Options{
		Level: cfg.Logging.Level,
		File:  logger.DefaultFileConfig(logFile),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Error("carousel-tui error", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	strategy, err := carousel.StrategyByName(cfg.Carousel)
	if err != nil {
		return err
	}

	loader := assets.NewLoader(
		assets.GLTFDecoder{Options: model.BuildOptions{Scale: cfg.Carousel.ModelScale, Center: true}},
		assets.WithWorkers(cfg.Carousel.Workers),
		assets.WithTimeout(cfg.Carousel.LoadTimeout),
		assets.WithLogger(logger.Named("assets")),
	)

	fmt.Fprintf(os.Stderr, "loading %d model(s)...\n", len(cfg.Carousel.Models))
	res, err := loader.Load(context.Background(), cfg.Carousel.Models)
	if err != nil {
		return fmt.Errorf("loading models: %w", err)
	}

	m, err := tui.New(
		tui.EntriesFromAssets(res.Loaded()),
		len(res.Failed()),
		cfg.Carousel.DurationFrames,
		strategy,
		cfg.Graphics.FPSLimit,
		carousel.WithLogger(logger.Named("carousel")),
	)
	if err != nil {
		return err
	}

	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running terminal ui: %w", err)
	}

	logger.Info("carousel-tui closed normally", zap.Int("frames", m.Frames()))
	return nil
}
