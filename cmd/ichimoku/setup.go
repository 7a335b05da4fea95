package main

import (
	"fmt"

	"github.com/newthinker/ichimoku-dashboard/internal/config"
	"github.com/newthinker/ichimoku-dashboard/internal/metrics"
	"github.com/newthinker/ichimoku-dashboard/internal/snapshot"
	"github.com/newthinker/ichimoku-dashboard/internal/storage/source"
	"go.uber.org/zap"
)

// loadConfig reads --config, or falls back to defaults, and validates it.
func loadConfig(log *zap.Logger) (*config.Config, error) {
	var cfg *config.Config
	if cfgFile != "" {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	} else {
		cfg = config.Defaults()
		log.Debug("no config file specified, using defaults")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// newReader builds the snapshot reader. reg may be nil.
func newReader(cfg *config.Config, log *zap.Logger, reg *metrics.Registry) (*snapshot.Reader, error) {
	src, err := source.New(cfg.Snapshot.Source)
	if err != nil {
		return nil, fmt.Errorf("creating snapshot source: %w", err)
	}

	var opts []snapshot.Option
	if reg != nil {
		opts = append(opts, snapshot.WithRecorder(reg))
	}
	return snapshot.NewReader(src, cfg.Snapshot.Key, log, opts...), nil
}
