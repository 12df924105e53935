package cli

import (
	"fmt"

	"github.com/bmadhq/toolcore/pkg/agent"
	"github.com/bmadhq/toolcore/pkg/catalog"
	"github.com/bmadhq/toolcore/pkg/config"
	"github.com/bmadhq/toolcore/pkg/executor"
	"github.com/bmadhq/toolcore/pkg/invocation"
	"github.com/bmadhq/toolcore/pkg/invocation/local"
	mcpadapter "github.com/bmadhq/toolcore/pkg/invocation/mcp"
	"github.com/bmadhq/toolcore/pkg/invocation/remote"
	"github.com/bmadhq/toolcore/pkg/mcpsession"
)

// core bundles everything a command needs to serve one CLI run.
type core struct {
	settings *config.Settings
	catalog  *catalog.Catalog
	agents   *agent.Manifest
	sessions *mcpsession.Manager
	executor *executor.Executor
}

// buildCore wires the invocation core from the settings file: catalog over
// the configured paths, agent manifest, one session manager shared by all
// MCP invokers, and the executor on top.
func buildCore(settingsFile string) (*core, error) {
	settings, err := config.ParseSettingsFile(settingsFile)
	if err != nil {
		return nil, fmt.Errorf("invalid settings file: %w", err)
	}

	logger := settings.GetBaseLogger()

	cat := catalog.NewCatalog(settings.Paths.DefinitionsDir, settings.Paths.RegistryFile, logger)

	agents, err := agent.ParseManifestFile(settings.Paths.AgentsFile)
	if err != nil {
		return nil, fmt.Errorf("invalid agent manifest: %w", err)
	}

	sessions := mcpsession.NewManager(
		&mcpsession.FileCredentialStore{Path: settings.Paths.CredentialsFile},
		mcpsession.WithLogger(logger),
	)

	registry := invocation.NewRegistry()
	registry.RegisterFactory(catalog.ToolTypeLocal, &local.InvokerFactory{})
	registry.RegisterFactory(catalog.ToolTypeRemote, &remote.InvokerFactory{})
	registry.RegisterFactory(catalog.ToolTypeMCP, &mcpadapter.InvokerFactory{Sessions: sessions})

	policy, err := settings.Policy.ToPolicy()
	if err != nil {
		return nil, fmt.Errorf("invalid policy: %w", err)
	}

	exec := executor.NewExecutor(cat, agent.NewEvaluator(), registry,
		executor.WithPolicy(policy),
		executor.WithLogger(logger),
	)

	return &core{
		settings: settings,
		catalog:  cat,
		agents:   agents,
		sessions: sessions,
		executor: exec,
	}, nil
}

// profileFor returns the declared profile for an agent id, or a bare profile
// carrying only the id. The bare form still grants the orchestrator its
// universal access and denies everyone else.
func (c *core) profileFor(agentID string) *agent.Profile {
	if p := c.agents.Profile(agentID); p != nil {
		return p
	}
	return &agent.Profile{ID: agentID}
}

func (c *core) close() {
	c.sessions.Close()
}
