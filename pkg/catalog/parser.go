package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/jsonschema-go/jsonschema"
	"sigs.k8s.io/yaml"
)

// ParseToolFile parses a tool definition file (*.tool.yaml).
func ParseToolFile(path string) (*ToolDefinition, error) {
	path, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path to tool definition: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tool definition: %v", err)
	}

	toolFile := &ToolFile{}
	if err = yaml.Unmarshal(data, toolFile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tool definition: %v", err)
	}

	def := toolFile.Tool
	if def == nil {
		return nil, fmt.Errorf("tool definition %s has no tool section", path)
	}

	// The auth, permissions and documentation sections live beside the tool
	// section in the file but belong to the definition.
	if def.Auth == nil {
		def.Auth = toolFile.Auth
	}
	if def.Permissions == nil {
		def.Permissions = toolFile.Permissions
	}
	if def.Documentation == nil {
		def.Documentation = toolFile.Documentation
	}

	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tool definition %s: %w", path, err)
	}

	return def, nil
}

func (f *ToolFile) UnmarshalJSON(data []byte) error {
	type Doppleganger ToolFile

	tmp := (*Doppleganger)(f)

	if err := json.Unmarshal(data, tmp); err != nil {
		return err
	}

	if f.Kind == "" {
		return fmt.Errorf("kind field is required, expected %s", KindTool)
	}
	if f.Kind != KindTool {
		return fmt.Errorf("invalid kind %s, expected %s", f.Kind, KindTool)
	}

	if f.SchemaVersion != SchemaVersion {
		return fmt.Errorf("invalid schema version %s, expected %s - please migrate your tool definition", f.SchemaVersion, SchemaVersion)
	}

	return nil
}

func (t *ToolDefinition) UnmarshalJSON(data []byte) error {
	type Doppleganger ToolDefinition

	tmp := (*Doppleganger)(t)

	if err := json.Unmarshal(data, tmp); err != nil {
		return err
	}

	if t.InputSchema != nil {
		if t.InputSchema.Type == "" {
			t.InputSchema.Type = "object"
		}
		if t.InputSchema.Properties == nil {
			// set the properties to be not nil so that it serializes as {}
			t.InputSchema.Properties = make(map[string]*jsonschema.Schema)
		}

		resolved, err := t.InputSchema.Resolve(nil)
		if err != nil {
			return fmt.Errorf("failed to resolve input schema: %w", err)
		}
		t.ResolvedInputSchema = resolved
	}

	return nil
}

// ParseRegistryFile parses the central registry index file.
func ParseRegistryFile(path string) (*RegistryIndex, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read registry index: %v", err)
	}

	index := &RegistryIndex{}
	if err = yaml.Unmarshal(data, index); err != nil {
		return nil, fmt.Errorf("failed to unmarshal registry index: %v", err)
	}

	return index, nil
}

func (r *RegistryIndex) UnmarshalJSON(data []byte) error {
	type Doppleganger RegistryIndex

	tmp := (*Doppleganger)(r)

	if err := json.Unmarshal(data, tmp); err != nil {
		return err
	}

	if r.Kind != "" && r.Kind != KindRegistry {
		return fmt.Errorf("invalid kind %s, expected %s", r.Kind, KindRegistry)
	}

	return nil
}
