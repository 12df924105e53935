// Package local executes tools implemented in-process. Instead of loading
// arbitrary code by string path at call time, local tools register
// themselves in a startup-time registry and a definition's entrypoint names
// the registered tool.
package local

import (
	"context"
	"fmt"
	"sync"

	"github.com/bmadhq/toolcore/pkg/catalog"
	"github.com/bmadhq/toolcore/pkg/invocation"
)

// Tool is the contract every local tool implements. Run receives the call
// payload and returns the call result; local tools execute with full host
// privilege, so the access control evaluator is the only boundary in front
// of them.
type Tool interface {
	Run(ctx context.Context, payload map[string]any) (any, error)
}

// ToolFunc adapts a plain function to the Tool interface.
type ToolFunc func(ctx context.Context, payload map[string]any) (any, error)

func (f ToolFunc) Run(ctx context.Context, payload map[string]any) (any, error) {
	return f(ctx, payload)
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Tool)
)

// Register makes a local tool available under the given entrypoint name.
// It is intended to be called from init functions or at process startup,
// before any invocation runs.
func Register(name string, tool Tool) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = tool
}

// Lookup returns the registered tool for an entrypoint name.
func Lookup(name string) (Tool, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	tool, ok := registry[name]
	return tool, ok
}

// LocalInvoker dispatches a call to a registered local tool.
type LocalInvoker struct {
	ToolID     string
	Entrypoint string
}

var _ invocation.Invoker = &LocalInvoker{}

func (li *LocalInvoker) Invoke(ctx context.Context, payload map[string]any) (any, error) {
	tool, ok := Lookup(li.Entrypoint)
	if !ok {
		return nil, &invocation.ExecutionError{
			ToolID: li.ToolID,
			Err:    fmt.Errorf("no local tool registered for entrypoint %q", li.Entrypoint),
		}
	}

	result, err := tool.Run(ctx, payload)
	if err != nil {
		return nil, &invocation.ExecutionError{ToolID: li.ToolID, Err: err}
	}

	return result, nil
}

// InvokerFactory builds local invokers.
type InvokerFactory struct{}

var _ invocation.InvokerFactory = &InvokerFactory{}

func (f *InvokerFactory) CreateInvoker(def *catalog.ToolDefinition) (invocation.Invoker, error) {
	return &LocalInvoker{
		ToolID:     def.ID,
		Entrypoint: def.Entrypoint,
	}, nil
}
