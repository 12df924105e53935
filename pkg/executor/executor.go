// Package executor is the public entry point of the invocation core:
// resolve the tool, authorize the agent, dispatch to the transport adapter,
// and return the adapter's result or error unchanged.
package executor

import (
	"context"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/bmadhq/toolcore/pkg/agent"
	"github.com/bmadhq/toolcore/pkg/catalog"
	"github.com/bmadhq/toolcore/pkg/invocation"
)

// Resolver looks a tool identifier up in the catalog.
type Resolver interface {
	Resolve(toolID string) (*catalog.ToolDefinition, error)
}

// Authorizer decides whether an agent may invoke a tool.
type Authorizer interface {
	IsAllowed(profile *agent.Profile, def *catalog.ToolDefinition) bool
}

// Executor ties catalog, access control and transport adapters together.
type Executor struct {
	resolver Resolver
	access   Authorizer
	invokers *invocation.Registry
	policy   Policy
	logger   *zap.Logger
}

// Option configures an Executor.
type Option func(*Executor)

// WithPolicy replaces the default call policy.
func WithPolicy(policy Policy) Option {
	return func(e *Executor) {
		e.policy = policy
	}
}

// WithLogger sets the executor's logger.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Executor) {
		e.logger = logger
	}
}

// NewExecutor creates the invocation orchestrator.
func NewExecutor(resolver Resolver, access Authorizer, invokers *invocation.Registry, opts ...Option) *Executor {
	e := &Executor{
		resolver: resolver,
		access:   access,
		invokers: invokers,
		policy:   DefaultPolicy(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute invokes a tool on behalf of an agent. Failures from every stage
// surface unchanged so callers can distinguish resolution (*catalog.
// NotFoundError), authorization (*agent.AccessDeniedError) and execution
// (*invocation.UnsupportedTypeError, *invocation.ExecutionError,
// *invocation.TransportError) by error kind.
func (e *Executor) Execute(ctx context.Context, profile *agent.Profile, toolID string, payload map[string]any) (any, error) {
	def, err := e.resolver.Resolve(toolID)
	if err != nil {
		return nil, err
	}

	agentID := ""
	if profile != nil {
		agentID = profile.ID
	}

	if !e.access.IsAllowed(profile, def) {
		e.logger.Warn("Denied tool invocation",
			zap.String("agent_id", agentID),
			zap.String("tool_id", toolID))
		return nil, &agent.AccessDeniedError{AgentID: agentID, ToolID: toolID}
	}

	if def.ResolvedInputSchema != nil {
		instance := payload
		if instance == nil {
			instance = map[string]any{}
		}
		if err := def.ResolvedInputSchema.Validate(instance); err != nil {
			return nil, &invocation.ExecutionError{ToolID: def.ID, Err: err}
		}
	}

	invoker, err := e.invokers.CreateInvoker(def)
	if err != nil {
		return nil, err
	}

	e.logger.Info("Dispatching tool invocation",
		zap.String("agent_id", agentID),
		zap.String("tool_id", def.ID),
		zap.String("tool_type", def.Type))

	return e.dispatch(ctx, def, invoker, payload)
}

// dispatch runs the adapter under the policy's per-transport deadline, with
// optional retry. Each attempt gets its own deadline.
func (e *Executor) dispatch(ctx context.Context, def *catalog.ToolDefinition, invoker invocation.Invoker, payload map[string]any) (any, error) {
	timeout := e.policy.timeoutFor(def.Type)

	operation := func() (any, error) {
		attemptCtx := ctx
		if timeout > 0 {
			var cancel context.CancelFunc
			attemptCtx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		return invoker.Invoke(attemptCtx, payload)
	}

	attempts := e.policy.attempts()
	if attempts == 1 {
		return operation()
	}

	bo := backoff.NewExponentialBackOff()
	if e.policy.InitialBackoff > 0 {
		bo.InitialInterval = e.policy.InitialBackoff
	}

	return backoff.RetryWithData(operation,
		backoff.WithContext(backoff.WithMaxRetries(bo, uint64(attempts-1)), ctx))
}
