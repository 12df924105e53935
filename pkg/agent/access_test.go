package agent

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bmadhq/toolcore/pkg/catalog"
)

func TestEvaluatorIsAllowed(t *testing.T) {
	helloWorld := &catalog.ToolDefinition{ID: "hello-world", Type: catalog.ToolTypeLocal, Entrypoint: "hello-world"}
	webSearch := &catalog.ToolDefinition{ID: "web-search", Type: catalog.ToolTypeRemote, Entrypoint: "https://tools.example.com/search"}

	e := NewEvaluator()

	tt := []struct {
		name    string
		profile *Profile
		def     *catalog.ToolDefinition
		allowed bool
	}{
		{
			name: "agent with the tool in its allowed set",
			profile: &Profile{
				ID:    "dev",
				Tools: ToolAccess{Allowed: []AllowedTool{{ID: "hello-world"}}},
			},
			def:     helloWorld,
			allowed: true,
		},
		{
			name: "agent without the tool in its allowed set",
			profile: &Profile{
				ID:    "dev",
				Tools: ToolAccess{Allowed: []AllowedTool{{ID: "hello-world"}}},
			},
			def:     webSearch,
			allowed: false,
		},
		{
			name:    "agent with an empty allowed set",
			profile: &Profile{ID: "qa"},
			def:     helloWorld,
			allowed: false,
		},
		{
			name:    "orchestrator is always allowed",
			profile: &Profile{ID: OrchestratorID},
			def:     webSearch,
			allowed: true,
		},
		{
			name: "orchestrator ignores its own allowed set",
			profile: &Profile{
				ID:    OrchestratorID,
				Tools: ToolAccess{Allowed: []AllowedTool{{ID: "something-else"}}},
			},
			def:     helloWorld,
			allowed: true,
		},
		{
			name:    "nil profile is denied",
			profile: nil,
			def:     helloWorld,
			allowed: false,
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, e.IsAllowed(tc.profile, tc.def))
		})
	}
}

func TestEvaluatorIsDeterministic(t *testing.T) {
	e := NewEvaluator()
	profile := &Profile{
		ID:    "dev",
		Tools: ToolAccess{Allowed: []AllowedTool{{ID: "hello-world"}}},
	}
	def := &catalog.ToolDefinition{ID: "hello-world", Type: catalog.ToolTypeLocal, Entrypoint: "hello-world"}

	first := e.IsAllowed(profile, def)
	for range 10 {
		assert.Equal(t, first, e.IsAllowed(profile, def))
	}
}

func TestParseManifestFile(t *testing.T) {
	manifest := `
kind: BMadAgents
schemaVersion: 1.0.0
agents:
  - id: dev
    name: Developer
    tools:
      allowed:
        - hello-world
        - id: web-search
      default:
        - hello-world
  - id: bmad-orchestrator
    name: Orchestrator
`
	path := filepath.Join(t.TempDir(), "agents.yaml")
	require.NoError(t, os.WriteFile(path, []byte(manifest), 0o644))

	m, err := ParseManifestFile(path)
	require.NoError(t, err)
	require.Len(t, m.Agents, 2)

	dev := m.Profile("dev")
	require.NotNil(t, dev)

	t.Run("bare and object allowed entries normalize to one shape", func(t *testing.T) {
		assert.Equal(t, []AllowedTool{{ID: "hello-world"}, {ID: "web-search"}}, dev.Tools.Allowed)

		set := dev.AllowedSet()
		assert.Contains(t, set, "hello-world")
		assert.Contains(t, set, "web-search")
	})

	t.Run("default tools are parsed but separate from allowed", func(t *testing.T) {
		assert.Equal(t, []string{"hello-world"}, dev.Tools.Default)
	})

	t.Run("unknown agent lookup returns nil", func(t *testing.T) {
		assert.Nil(t, m.Profile("ops"))
	})
}

func TestParseManifestFileRejectsWrongKind(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agents.yaml")
	require.NoError(t, os.WriteFile(path, []byte("kind: NotAgents\nschemaVersion: 1.0.0\n"), 0o644))

	_, err := ParseManifestFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid kind")
}

func TestAllowedToolRejectsMalformedEntry(t *testing.T) {
	manifest := `
kind: BMadAgents
schemaVersion: 1.0.0
agents:
  - id: dev
    tools:
      allowed:
        - name: missing-the-id-field
`
	path := filepath.Join(t.TempDir(), "agents.yaml")
	require.NoError(t, os.WriteFile(path, []byte(manifest), 0o644))

	_, err := ParseManifestFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing an id")
}
