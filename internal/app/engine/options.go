package engine

import (
	"time"

	"github.com/muhammadchandra19/stockmarket/pkg/config"
)

// Options represents configuration options for the Engine.
type Options struct {
	MatchInterval       time.Duration
	SnapshotInterval    time.Duration
	SnapshotOffsetDelta int64
}

// DefaultEngineOptions returns the default engine options.
func DefaultEngineOptions() *Options {
	return &Options{
		MatchInterval:       time.Second,
		SnapshotInterval:    30 * time.Second,
		SnapshotOffsetDelta: 1000,
	}
}

// OptionsFromConfig builds Options from the engine configuration, falling
// back to the defaults for unset values.
func OptionsFromConfig(cfg config.EngineConfig) *Options {
	options := DefaultEngineOptions()
	if cfg.MatchInterval > 0 {
		options.MatchInterval = cfg.MatchInterval
	}
	if cfg.SnapshotInterval > 0 {
		options.SnapshotInterval = cfg.SnapshotInterval
	}
	if cfg.SnapshotOffsetDelta > 0 {
		options.SnapshotOffsetDelta = cfg.SnapshotOffsetDelta
	}
	return options
}
