// logger.go - structured logging setup, in the idiom of
// iamNilotpal/ignite's internal/engine: one zap.SugaredLogger
// constructed at the entry point and threaded through every
// subsystem rather than a package-level global.
//
// (c) 2026

package bootstrap

import "go.uber.org/zap"

// NewLogger builds a SugaredLogger writing to stderr; verbose enables
// debug-level output.
func NewLogger(verbose bool) (*zap.SugaredLogger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}
