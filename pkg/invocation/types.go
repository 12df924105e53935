// Package invocation defines the transport adapter contract and the registry
// that maps a tool's declared type to the adapter handling it.
package invocation

import (
	"context"

	"github.com/bmadhq/toolcore/pkg/catalog"
)

// Invoker executes a single tool call for one transport. Implementations are
// created per-definition by their factory and carry everything needed to
// dispatch; the payload is the only per-call input.
type Invoker interface {
	Invoke(ctx context.Context, payload map[string]any) (any, error)
}

// InvokerFactory builds an Invoker from a resolved tool definition.
type InvokerFactory interface {
	CreateInvoker(def *catalog.ToolDefinition) (Invoker, error)
}
