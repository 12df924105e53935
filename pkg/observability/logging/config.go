// Package logging builds the zap loggers used across the invocation core
// from a schema-friendly configuration that can live inside the settings
// file.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggingConfig provides a JSON-schema friendly configuration for logging
// that can be converted to a zap.Config when needed.
type LoggingConfig struct {
	// Level is the minimum enabled logging level (debug, info, warn, error, dpanic, panic, fatal)
	Level string `json:"level,omitempty"`
	// Development puts the logger in development mode
	Development bool `json:"development,omitempty"`
	// DisableCaller stops annotating logs with the calling function's file name and line number
	DisableCaller bool `json:"disableCaller,omitempty"`
	// DisableStacktrace completely disables automatic stacktrace capturing
	DisableStacktrace bool `json:"disableStacktrace,omitempty"`
	// Encoding sets the logger's encoding ("json" or "console")
	Encoding string `json:"encoding,omitempty"`
	// OutputPaths is a list of URLs or file paths to write logging output to
	OutputPaths []string `json:"outputPaths,omitempty"`
	// ErrorOutputPaths is a list of URLs to write internal logger errors to
	ErrorOutputPaths []string `json:"errorOutputPaths,omitempty"`
	// InitialFields is a collection of fields to add to the root logger
	InitialFields map[string]interface{} `json:"initialFields,omitempty"`
}

// toZapConfig converts the schema-friendly LoggingConfig to a zap.Config
func (lc *LoggingConfig) toZapConfig() (zap.Config, error) {
	var config zap.Config

	// Set defaults if not specified
	switch lc.Encoding {
	case "console":
		config = zap.NewDevelopmentConfig()
	default:
		config = zap.NewProductionConfig()
	}

	// Override with specified values
	if lc.Level != "" {
		level, err := zapcore.ParseLevel(lc.Level)
		if err != nil {
			return config, fmt.Errorf("invalid log level %q: %w", lc.Level, err)
		}
		config.Level = zap.NewAtomicLevelAt(level)
	}

	if lc.Encoding != "" {
		config.Encoding = lc.Encoding
	}

	config.Development = lc.Development
	config.DisableCaller = lc.DisableCaller
	config.DisableStacktrace = lc.DisableStacktrace

	if len(lc.OutputPaths) > 0 {
		config.OutputPaths = lc.OutputPaths
	}

	if len(lc.ErrorOutputPaths) > 0 {
		config.ErrorOutputPaths = lc.ErrorOutputPaths
	}

	if lc.InitialFields != nil {
		config.InitialFields = lc.InitialFields
	}

	return config, nil
}

// BuildBase creates a base logger from the configuration. This should be
// called once at process startup and the resulting logger reused throughout
// the process's lifetime.
func (lc *LoggingConfig) BuildBase() (*zap.Logger, error) {
	config, err := lc.toZapConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to convert to zap config: %w", err)
	}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build base zap logger: %w", err)
	}
	return logger, nil
}
