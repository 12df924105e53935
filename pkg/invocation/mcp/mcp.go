// Package mcp adapts tool invocations onto the MCP session layer: the
// definition's mcpServer selects the session, its entrypoint is the logical
// namespace under which the server exposes the tool.
package mcp

import (
	"context"
	"fmt"

	"github.com/bmadhq/toolcore/pkg/catalog"
	"github.com/bmadhq/toolcore/pkg/invocation"
	"github.com/bmadhq/toolcore/pkg/mcpsession"
)

// MCPInvoker dispatches a call through the shared session manager.
type MCPInvoker struct {
	ToolID    string
	Server    string
	Namespace string
	Sessions  *mcpsession.Manager
}

var _ invocation.Invoker = &MCPInvoker{}

func (mi *MCPInvoker) Invoke(ctx context.Context, payload map[string]any) (any, error) {
	return mi.Sessions.Call(ctx, mi.Server, mi.Namespace, mi.ToolID, payload)
}

// InvokerFactory builds MCP invokers bound to one session manager handle.
type InvokerFactory struct {
	Sessions *mcpsession.Manager
}

var _ invocation.InvokerFactory = &InvokerFactory{}

func (f *InvokerFactory) CreateInvoker(def *catalog.ToolDefinition) (invocation.Invoker, error) {
	if f.Sessions == nil {
		return nil, fmt.Errorf("mcp invoker factory has no session manager")
	}
	if def.MCPServer == "" {
		return nil, fmt.Errorf("mcp tool %q has no mcpServer", def.ID)
	}

	return &MCPInvoker{
		ToolID:    def.ID,
		Server:    def.MCPServer,
		Namespace: def.Entrypoint,
		Sessions:  f.Sessions,
	}, nil
}
