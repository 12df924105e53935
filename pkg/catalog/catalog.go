// Package catalog loads and indexes tool definitions from a directory of
// individual definition files with a flat registry index as fallback. It is
// pure lookup: definitions are re-read from the backing store on every call
// so that a tool authored moments ago is visible without a restart.
package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Catalog resolves tool identifiers to definitions. It holds no state beyond
// its configured paths; every Resolve call hits the filesystem fresh.
type Catalog struct {
	definitionsDir string
	registryPath   string
	logger         *zap.Logger
}

// NewCatalog creates a catalog over a definitions directory and a registry
// index file. The registry path may be empty, in which case only the
// directory scan is performed.
func NewCatalog(definitionsDir, registryPath string, logger *zap.Logger) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Catalog{
		definitionsDir: definitionsDir,
		registryPath:   registryPath,
		logger:         logger,
	}
}

// Resolve looks up a tool definition by identifier. It first scans the
// definitions directory for a file whose name starts with the identifier,
// then falls back to the registry index. It returns *NotFoundError when
// neither source yields a match.
func (c *Catalog) Resolve(toolID string) (*ToolDefinition, error) {
	if toolID == "" {
		return nil, &NotFoundError{ToolID: toolID}
	}

	if def, ok, err := c.resolveFromDirectory(toolID); err != nil {
		return nil, err
	} else if ok {
		return def, nil
	}

	if def, ok, err := c.resolveFromRegistry(toolID); err != nil {
		return nil, err
	} else if ok {
		return def, nil
	}

	c.logger.Debug("Tool not found in either catalog source",
		zap.String("tool_id", toolID))

	return nil, &NotFoundError{ToolID: toolID}
}

// List returns every resolvable definition: the definitions directory first,
// then registry index entries not already seen, de-duplicated by identifier.
// Files that fail to parse are skipped rather than failing the whole listing.
func (c *Catalog) List() ([]*ToolDefinition, error) {
	seen := make(map[string]struct{})
	var defs []*ToolDefinition

	entries, err := os.ReadDir(c.definitionsDir)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read tool definitions directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		def, err := ParseToolFile(filepath.Join(c.definitionsDir, entry.Name()))
		if err != nil {
			c.logger.Warn("Skipping unparseable tool definition",
				zap.String("file", entry.Name()),
				zap.Error(err))
			continue
		}
		if _, ok := seen[def.ID]; ok {
			continue
		}
		seen[def.ID] = struct{}{}
		defs = append(defs, def)
	}

	if c.registryPath != "" {
		if _, err := os.Stat(c.registryPath); err == nil {
			index, err := ParseRegistryFile(c.registryPath)
			if err != nil {
				return nil, err
			}
			for _, entry := range index.Tools {
				if _, ok := seen[entry.ID]; ok {
					continue
				}
				def, ok, err := c.resolveFromRegistry(entry.ID)
				if err != nil || !ok {
					continue
				}
				seen[def.ID] = struct{}{}
				defs = append(defs, def)
			}
		}
	}

	return defs, nil
}

func (c *Catalog) resolveFromDirectory(toolID string) (*ToolDefinition, bool, error) {
	entries, err := os.ReadDir(c.definitionsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read tool definitions directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), toolID) {
			continue
		}

		path := filepath.Join(c.definitionsDir, entry.Name())
		def, err := ParseToolFile(path)
		if err != nil {
			return nil, false, err
		}

		c.logger.Debug("Resolved tool from definitions directory",
			zap.String("tool_id", toolID),
			zap.String("file", path))

		return def, true, nil
	}

	return nil, false, nil
}

func (c *Catalog) resolveFromRegistry(toolID string) (*ToolDefinition, bool, error) {
	if c.registryPath == "" {
		return nil, false, nil
	}

	if _, err := os.Stat(c.registryPath); os.IsNotExist(err) {
		return nil, false, nil
	}

	index, err := ParseRegistryFile(c.registryPath)
	if err != nil {
		return nil, false, err
	}

	for _, entry := range index.Tools {
		if entry.ID != toolID {
			continue
		}

		path := entry.File
		if !filepath.IsAbs(path) {
			path = filepath.Join(filepath.Dir(c.registryPath), path)
		}

		if _, err := os.Stat(path); err != nil {
			// The index may reference a file deleted out from under it.
			continue
		}

		def, err := ParseToolFile(path)
		if err != nil {
			return nil, false, err
		}

		c.logger.Debug("Resolved tool from registry index",
			zap.String("tool_id", toolID),
			zap.String("file", path))

		return def, true, nil
	}

	return nil, false, nil
}
