package invocation

import (
	"strings"

	"github.com/bmadhq/toolcore/pkg/catalog"
)

// Registry holds the invoker factories keyed by tool type. It is
// instance-scoped rather than a package global so that adapters needing
// shared state (the MCP session manager) receive it by handle at wiring
// time.
type Registry struct {
	factories map[string]InvokerFactory
}

// NewRegistry creates an empty invoker registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]InvokerFactory),
	}
}

// RegisterFactory registers the factory handling the given tool type,
// replacing any previous registration.
func (r *Registry) RegisterFactory(toolType string, factory InvokerFactory) {
	r.factories[strings.ToLower(toolType)] = factory
}

// CreateInvoker builds the invoker for a tool definition. A type with no
// registered factory yields *UnsupportedTypeError.
func (r *Registry) CreateInvoker(def *catalog.ToolDefinition) (Invoker, error) {
	factory, exists := r.factories[strings.ToLower(def.Type)]
	if !exists {
		return nil, &UnsupportedTypeError{ToolID: def.ID, Type: def.Type}
	}

	return factory.CreateInvoker(def)
}
