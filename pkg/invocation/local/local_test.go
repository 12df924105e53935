package local

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bmadhq/toolcore/pkg/catalog"
	"github.com/bmadhq/toolcore/pkg/invocation"
)

func TestLocalInvokerRunsRegisteredTool(t *testing.T) {
	Register("echo-payload", ToolFunc(func(ctx context.Context, payload map[string]any) (any, error) {
		return map[string]any{"echo": payload}, nil
	}))

	factory := &InvokerFactory{}
	invoker, err := factory.CreateInvoker(&catalog.ToolDefinition{
		ID:         "echo",
		Type:       catalog.ToolTypeLocal,
		Entrypoint: "echo-payload",
	})
	require.NoError(t, err)

	result, err := invoker.Invoke(context.Background(), map[string]any{"a": float64(1)})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"echo": map[string]any{"a": float64(1)}}, result)
}

func TestLocalInvokerBuiltinHelloWorld(t *testing.T) {
	invoker := &LocalInvoker{ToolID: "hello-world", Entrypoint: "hello-world"}

	result, err := invoker.Invoke(context.Background(), map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"message": "Hello from BMAD Tools!"}, result)
}

func TestLocalInvokerUnknownEntrypoint(t *testing.T) {
	invoker := &LocalInvoker{ToolID: "ghost", Entrypoint: "not-registered"}

	_, err := invoker.Invoke(context.Background(), nil)

	var execErr *invocation.ExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, "ghost", execErr.ToolID)
	assert.Zero(t, execErr.StatusCode)
}

func TestLocalInvokerToolFailure(t *testing.T) {
	boom := errors.New("boom")
	Register("always-fails", ToolFunc(func(ctx context.Context, payload map[string]any) (any, error) {
		return nil, boom
	}))

	invoker := &LocalInvoker{ToolID: "fails", Entrypoint: "always-fails"}

	_, err := invoker.Invoke(context.Background(), nil)

	var execErr *invocation.ExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.ErrorIs(t, execErr, boom)
}
