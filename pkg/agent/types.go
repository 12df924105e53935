// Package agent holds agent capability declarations and the access control
// evaluator that gates every tool invocation.
package agent

import (
	"encoding/json"
	"fmt"
	"os"

	"sigs.k8s.io/yaml"
)

const (
	KindAgents    = "BMadAgents"
	SchemaVersion = "1.0.0"

	// OrchestratorID is the one distinguished agent identifier granted
	// universal access regardless of its allowed set. This is a named
	// exception for the orchestrator-class principal, not a general
	// wildcard mechanism.
	OrchestratorID = "bmad-orchestrator"
)

// AllowedTool is one entry of an agent's allowed set. Manifests accept
// either a bare identifier string or an object carrying an id field; both
// forms normalize to the identifier through UnmarshalJSON.
type AllowedTool struct {
	ID string `json:"id"`
}

func (a *AllowedTool) UnmarshalJSON(data []byte) error {
	var bare string
	if err := json.Unmarshal(data, &bare); err == nil {
		a.ID = bare
		return nil
	}

	type Doppleganger AllowedTool

	tmp := (*Doppleganger)(a)
	if err := json.Unmarshal(data, tmp); err != nil {
		return fmt.Errorf("allowed tool entry must be a string or an object with an id field: %w", err)
	}

	if a.ID == "" {
		return fmt.Errorf("allowed tool entry is missing an id")
	}

	return nil
}

func (a AllowedTool) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.ID)
}

// ToolAccess is the tools section of an agent declaration.
type ToolAccess struct {
	// Tools this agent may invoke.
	Allowed []AllowedTool `json:"allowed,omitempty"`

	// Tools auto-loaded at agent start. Parsed for completeness; the
	// invocation core does not act on it.
	Default []string `json:"default,omitempty"`
}

// Profile is the capability declaration of an invoking principal.
type Profile struct {
	ID    string     `json:"id"`
	Name  string     `json:"name,omitempty"`
	Tools ToolAccess `json:"tools,omitempty"`
}

// AllowedSet returns the normalized set of tool identifiers this profile
// may invoke.
func (p *Profile) AllowedSet() map[string]struct{} {
	set := make(map[string]struct{}, len(p.Tools.Allowed))
	for _, a := range p.Tools.Allowed {
		set[a.ID] = struct{}{}
	}
	return set
}

// Manifest is the on-disk agent configuration file.
type Manifest struct {
	Kind          string    `json:"kind"`
	SchemaVersion string    `json:"schemaVersion"`
	Agents        []Profile `json:"agents,omitempty"`
}

// ParseManifestFile parses an agent manifest file (agents.yaml).
func ParseManifestFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read agent manifest: %v", err)
	}

	manifest := &Manifest{}
	if err = yaml.Unmarshal(data, manifest); err != nil {
		return nil, fmt.Errorf("failed to unmarshal agent manifest: %v", err)
	}

	return manifest, nil
}

func (m *Manifest) UnmarshalJSON(data []byte) error {
	type Doppleganger Manifest

	tmp := (*Doppleganger)(m)

	if err := json.Unmarshal(data, tmp); err != nil {
		return err
	}

	if m.Kind == "" {
		return fmt.Errorf("kind field is required, expected %s", KindAgents)
	}
	if m.Kind != KindAgents {
		return fmt.Errorf("invalid kind %s, expected %s", m.Kind, KindAgents)
	}

	return nil
}

// Profile returns the profile with the given identifier, or nil when the
// manifest does not declare it.
func (m *Manifest) Profile(id string) *Profile {
	for i := range m.Agents {
		if m.Agents[i].ID == id {
			return &m.Agents[i]
		}
	}
	return nil
}
