// Package config loads the invocation core's settings file: where the tool
// definitions, registry index, agent manifest and credentials live, how to
// log, and how calls are bounded.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"sigs.k8s.io/yaml"

	"github.com/bmadhq/toolcore/pkg/executor"
	"github.com/bmadhq/toolcore/pkg/observability/logging"
)

const (
	KindSettings  = "BMadSettings"
	SchemaVersion = "1.0.0"
)

// Paths locates the files and directories the invocation core reads.
type Paths struct {
	// Directory of individual tool definition files.
	DefinitionsDir string `json:"definitionsDir"`

	// Central registry index, consulted when the directory scan misses.
	RegistryFile string `json:"registryFile,omitempty"`

	// Agent capability manifest.
	AgentsFile string `json:"agentsFile"`

	// MCP server credential store.
	CredentialsFile string `json:"credentialsFile,omitempty"`
}

// PolicyConfig is the serialized form of the executor policy; durations are
// Go duration strings ("30s", "1m").
type PolicyConfig struct {
	LocalTimeout   string `json:"localTimeout,omitempty"`
	RemoteTimeout  string `json:"remoteTimeout,omitempty"`
	MCPTimeout     string `json:"mcpTimeout,omitempty"`
	MaxAttempts    int    `json:"maxAttempts,omitempty"`
	InitialBackoff string `json:"initialBackoff,omitempty"`
}

// ToPolicy converts the serialized policy, starting from the defaults.
func (pc *PolicyConfig) ToPolicy() (executor.Policy, error) {
	policy := executor.DefaultPolicy()
	if pc == nil {
		return policy, nil
	}

	var err error
	set := func(dst *time.Duration, raw, field string) {
		if raw == "" || err != nil {
			return
		}
		var d time.Duration
		if d, err = time.ParseDuration(raw); err != nil {
			err = fmt.Errorf("invalid %s %q: %w", field, raw, err)
			return
		}
		*dst = d
	}

	set(&policy.LocalTimeout, pc.LocalTimeout, "localTimeout")
	set(&policy.RemoteTimeout, pc.RemoteTimeout, "remoteTimeout")
	set(&policy.MCPTimeout, pc.MCPTimeout, "mcpTimeout")
	set(&policy.InitialBackoff, pc.InitialBackoff, "initialBackoff")
	if err != nil {
		return policy, err
	}

	if pc.MaxAttempts > 0 {
		policy.MaxAttempts = pc.MaxAttempts
	}

	return policy, nil
}

// Settings is the root of the settings file.
type Settings struct {
	Kind          string `json:"kind"`
	SchemaVersion string `json:"schemaVersion"`

	Paths   Paths                  `json:"paths"`
	Logging *logging.LoggingConfig `json:"logging,omitempty"`
	Policy  *PolicyConfig          `json:"policy,omitempty"`

	baseLogger     *zap.Logger
	initLoggerOnce sync.Once
}

// ParseSettingsFile parses a settings file, resolving relative paths against
// the file's own directory.
func ParseSettingsFile(path string) (*Settings, error) {
	path, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path to settings file: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %v", err)
	}

	settings := &Settings{}
	if err = yaml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings file: %v", err)
	}

	base := filepath.Dir(path)
	settings.Paths.DefinitionsDir = resolvePath(base, settings.Paths.DefinitionsDir)
	settings.Paths.RegistryFile = resolvePath(base, settings.Paths.RegistryFile)
	settings.Paths.AgentsFile = resolvePath(base, settings.Paths.AgentsFile)
	settings.Paths.CredentialsFile = resolvePath(base, settings.Paths.CredentialsFile)

	return settings, nil
}

func resolvePath(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

func (s *Settings) UnmarshalJSON(data []byte) error {
	type Doppleganger Settings

	tmp := (*Doppleganger)(s)

	if err := json.Unmarshal(data, tmp); err != nil {
		return err
	}

	if s.Kind == "" {
		return fmt.Errorf("kind field is required, expected %s", KindSettings)
	}
	if s.Kind != KindSettings {
		return fmt.Errorf("invalid kind %s, expected %s", s.Kind, KindSettings)
	}

	if s.SchemaVersion != SchemaVersion {
		return fmt.Errorf("invalid schema version %s, expected %s", s.SchemaVersion, SchemaVersion)
	}

	if s.Paths.DefinitionsDir == "" {
		return fmt.Errorf("paths.definitionsDir is required")
	}
	if s.Paths.AgentsFile == "" {
		return fmt.Errorf("paths.agentsFile is required")
	}

	return nil
}

// GetBaseLogger returns the process logger built from the logging section,
// falling back to a console logger when the section is missing or invalid.
func (s *Settings) GetBaseLogger() *zap.Logger {
	if s == nil {
		return zap.NewNop()
	}

	s.initLoggerOnce.Do(func() {
		cfg := s.Logging
		if cfg == nil {
			cfg = &logging.LoggingConfig{Encoding: "console", Level: "info"}
		}

		logger, err := cfg.BuildBase()
		if err != nil {
			logger, _ = (&logging.LoggingConfig{Encoding: "console"}).BuildBase()
			if logger == nil {
				logger = zap.NewNop()
			}
			logger.Warn("Failed to build configured logger, using console fallback", zap.Error(err))
		}

		s.baseLogger = logger
	})

	return s.baseLogger
}
