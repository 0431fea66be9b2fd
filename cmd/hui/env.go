package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/hui-playground/internal/config"
	"github.com/vovakirdan/hui-playground/internal/core"
	"github.com/vovakirdan/hui-playground/internal/platform/tui"
	"github.com/vovakirdan/hui-playground/internal/storage"
)

// env is everything a terminal command needs to run sketches.
type env struct {
	cfg    config.Config
	rt     core.RuntimeConfig
	logger *log.Logger
	store  *storage.Store
	closer io.Closer
}

// setup loads configuration, opens the log file and the runs database.
// A missing database is not fatal; runs are simply not recorded.
func setup() (*env, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}

	logger, closer, err := tui.OpenLog(cfg.Log)
	if err != nil {
		return nil, err
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	rt := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: cfg.Terminal.TickRate,
		Seed:     flagSeed,
		Debug:    flagDebug || cfg.Engine.Debug,
	}
	if flagFPS > 0 {
		rt.TickRate = flagFPS
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		logger.Warn("runs database unavailable", "path", flagDBPath, "error", err)
		store = nil
	}

	return &env{cfg: cfg, rt: rt, logger: logger, store: store, closer: closer}, nil
}

func (e *env) Close() {
	if e.store != nil {
		e.store.Close()
	}
	e.closer.Close()
}
