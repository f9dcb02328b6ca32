// Package config holds the driver's configuration as a plain struct with
// a defaulting constructor.
package config

import "orderbook/internal/ring"

// Config is the resolved set of knobs the driver needs. None of these are
// read from environment variables.
type Config struct {
	InputPath    string
	RingCapacity int
	LogLevel     string
	StrategyLog  bool
}

// New returns cfg with a zero-valued InputPath, RingCapacity or LogLevel
// defaulted. StrategyLog is kept as given; its default of true comes from
// the driver's --strategy-log flag.
func New(cfg Config) Config {
	if cfg.InputPath == "" {
		cfg.InputPath = "btc_orderbook_updates.csv"
	}
	if cfg.RingCapacity == 0 {
		cfg.RingCapacity = ring.DefaultCapacity
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	return cfg
}
