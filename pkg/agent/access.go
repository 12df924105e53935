package agent

import (
	"github.com/bmadhq/toolcore/pkg/catalog"
)

// Evaluator decides whether an agent may invoke a tool. It is the only
// access gate in the invocation core: there is no secondary enforcement at
// the transport layer.
type Evaluator struct{}

// NewEvaluator creates an access control evaluator.
func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// IsAllowed reports whether the profile may invoke the tool. The
// orchestrator principal is always allowed; every other agent must list the
// tool's identifier in its allowed set. Pure and deterministic, no I/O.
func (e *Evaluator) IsAllowed(profile *Profile, def *catalog.ToolDefinition) bool {
	if profile == nil || def == nil {
		return false
	}

	if profile.ID == OrchestratorID {
		return true
	}

	_, ok := profile.AllowedSet()[def.ID]
	return ok
}
