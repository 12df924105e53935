package agent

import "fmt"

// AccessDeniedError indicates an agent is not in the tool's allowed set and
// is not the distinguished orchestrator principal. It carries both
// identifiers for audit logging.
type AccessDeniedError struct {
	AgentID string
	ToolID  string
}

func (e *AccessDeniedError) Error() string {
	return fmt.Sprintf("agent %q is not allowed to invoke tool %q", e.AgentID, e.ToolID)
}
