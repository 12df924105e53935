package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks the structural invariants of a tool definition.
func (t *ToolDefinition) Validate() error {
	var err error = nil
	if t.ID == "" {
		err = errors.Join(err, fmt.Errorf("invalid tool: id is required"))
	}

	switch strings.ToLower(t.Type) {
	case ToolTypeLocal, ToolTypeRemote, ToolTypeMCP:
	case "":
		err = errors.Join(err, fmt.Errorf("invalid tool: type is required"))
	default:
		err = errors.Join(err, fmt.Errorf("invalid tool: type must be one of %s, %s, %s", ToolTypeLocal, ToolTypeRemote, ToolTypeMCP))
	}

	if t.Entrypoint == "" {
		err = errors.Join(err, fmt.Errorf("invalid tool: entrypoint is required"))
	}

	if strings.ToLower(t.Type) == ToolTypeMCP && t.MCPServer == "" {
		err = errors.Join(err, fmt.Errorf("invalid tool: mcpServer is required for mcp tools"))
	}

	if t.InputSchema != nil && strings.ToLower(t.InputSchema.Type) != "object" {
		err = errors.Join(err, fmt.Errorf("invalid tool: inputSchema must be type object at the root"))
	}

	return err
}
