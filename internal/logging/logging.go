// Package logging builds the structured logger used by the driver and the
// strategy loop's gated debug line. The ingest adapter, the orderbook engine
// and the ring never log.
package logging

import "go.uber.org/zap"

// New builds a production zap.Logger at the given level ("debug", "info",
// "warn", or "error"; unrecognized values fall back to "info").
func New(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		lvl = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	cfg.Level = lvl
	cfg.Encoding = "console"
	cfg.EncoderConfig.TimeKey = ""
	return cfg.Build()
}
