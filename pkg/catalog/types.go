package catalog

import (
	"github.com/google/jsonschema-go/jsonschema"
)

const (
	KindTool     = "BMadTool"
	KindRegistry = "BMadToolRegistry"

	SchemaVersion = "1.0.0"

	ToolTypeLocal  = "local"
	ToolTypeRemote = "remote"
	ToolTypeMCP    = "mcp"
)

// ToolDefinition is the dispatch metadata for one capability. It is read-only
// at invocation time; the catalog re-reads it from disk on every lookup.
type ToolDefinition struct {
	// Unique identifier for the tool, immutable once published.
	ID string `json:"id"`

	// Human-readable name of the tool.
	Name string `json:"name,omitempty"`

	// Optional title for client display.
	Title string `json:"title,omitempty"`

	// Optional icon hint for client display.
	Icon string `json:"icon,omitempty"`

	// Transport type: local, remote, or mcp.
	Type string `json:"type"`

	// Type-dependent target: registered plugin name for local, URL for
	// remote, logical namespace for mcp.
	Entrypoint string `json:"entrypoint"`

	// Endpoint address of the MCP server, required when Type is mcp.
	MCPServer string `json:"mcpServer,omitempty"`

	// Detailed description of the tool's purpose.
	Description string `json:"description,omitempty"`

	// Version of the tool definition.
	Version string `json:"version,omitempty"`

	// Identifiers of other tools this tool depends on.
	Dependencies []string `json:"dependencies,omitempty"`

	// Optional JSON Schema describing the invocation payload. When present
	// the payload is validated against it before dispatch.
	InputSchema *jsonschema.Schema `json:"inputSchema,omitempty"`

	// Optional authentication requirements for the tool.
	Auth *AuthConfig `json:"auth,omitempty"`

	// Agent identifiers listed by the authoring workflow. Consumed by the
	// authoring tooling only; the access evaluator works from the agent's
	// own allowed set.
	Permissions []string `json:"permissions,omitempty"`

	// Optional help text, consumed by the help subsystem only.
	Documentation *Documentation `json:"documentation,omitempty"`

	// Resolved input schema for validation (internal use only).
	ResolvedInputSchema *jsonschema.Resolved `json:"-"`
}

// AuthConfig describes the authentication section of a tool definition.
type AuthConfig struct {
	Required *bool    `json:"required,omitempty"`
	Method   string   `json:"method,omitempty"`
	Scopes   []string `json:"scopes,omitempty"`
}

// AuthRequired returns whether the tool requires authentication, defaulting
// to false when unset.
func (a *AuthConfig) AuthRequired() bool {
	if a == nil || a.Required == nil {
		return false
	}
	return *a.Required
}

// Documentation is the structured help text of a tool definition. It plays no
// part in dispatch.
type Documentation struct {
	Description string `json:"description,omitempty"`
	Usage       string `json:"usage,omitempty"`
	Example     string `json:"example,omitempty"`
}

// ToolFile is the on-disk representation of a single tool definition.
type ToolFile struct {
	Kind          string `json:"kind"`
	SchemaVersion string `json:"schemaVersion"`

	Tool *ToolDefinition `json:"tool"`

	Auth          *AuthConfig    `json:"auth,omitempty"`
	Permissions   []string       `json:"permissions,omitempty"`
	Documentation *Documentation `json:"documentation,omitempty"`
}

// RegistryEntry is one (id, file) pair inside the central registry index.
type RegistryEntry struct {
	ID   string `json:"id"`
	File string `json:"file"`
}

// RegistryIndex is the flat registry consulted when the definitions
// directory scan yields no match.
type RegistryIndex struct {
	Kind          string          `json:"kind"`
	SchemaVersion string          `json:"schemaVersion"`
	Version       string          `json:"version"`
	Tools         []RegistryEntry `json:"tools,omitempty"`
}
