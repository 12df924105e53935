package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bmadhq/toolcore/pkg/catalog"
	"github.com/bmadhq/toolcore/pkg/mcpsession"
)

func TestMCPFactoryBindsDefinitionFields(t *testing.T) {
	sessions := mcpsession.NewManager(nil)
	defer sessions.Close()

	factory := &InvokerFactory{Sessions: sessions}

	invoker, err := factory.CreateInvoker(&catalog.ToolDefinition{
		ID:         "data-query",
		Type:       catalog.ToolTypeMCP,
		Entrypoint: "analytics",
		MCPServer:  "localhost:9300",
	})
	require.NoError(t, err)

	mi, ok := invoker.(*MCPInvoker)
	require.True(t, ok)
	assert.Equal(t, "data-query", mi.ToolID)
	assert.Equal(t, "localhost:9300", mi.Server)
	assert.Equal(t, "analytics", mi.Namespace)
}

func TestMCPFactoryRequiresServer(t *testing.T) {
	sessions := mcpsession.NewManager(nil)
	defer sessions.Close()

	factory := &InvokerFactory{Sessions: sessions}

	_, err := factory.CreateInvoker(&catalog.ToolDefinition{
		ID:         "data-query",
		Type:       catalog.ToolTypeMCP,
		Entrypoint: "analytics",
	})
	assert.Error(t, err)
}

func TestMCPFactoryRequiresSessionManager(t *testing.T) {
	factory := &InvokerFactory{}

	_, err := factory.CreateInvoker(&catalog.ToolDefinition{
		ID:         "data-query",
		Type:       catalog.ToolTypeMCP,
		Entrypoint: "analytics",
		MCPServer:  "localhost:9300",
	})
	assert.Error(t, err)
}
