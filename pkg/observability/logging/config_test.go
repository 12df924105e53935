package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestBuildBase(t *testing.T) {
	t.Run("defaults to production json logger", func(t *testing.T) {
		cfg := &LoggingConfig{}
		logger, err := cfg.BuildBase()
		require.NoError(t, err)
		defer func() { _ = logger.Sync() }()

		assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("honors the configured level", func(t *testing.T) {
		cfg := &LoggingConfig{Level: "debug", Encoding: "console"}
		logger, err := cfg.BuildBase()
		require.NoError(t, err)
		defer func() { _ = logger.Sync() }()

		assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("rejects an invalid level", func(t *testing.T) {
		cfg := &LoggingConfig{Level: "shouting"}
		_, err := cfg.BuildBase()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})
}
