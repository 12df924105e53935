package invocation

import "fmt"

// UnsupportedTypeError indicates a tool declared a type no adapter handles.
type UnsupportedTypeError struct {
	ToolID string
	Type   string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("tool %q declares unsupported type %q", e.ToolID, e.Type)
}

// ExecutionError indicates the underlying local invocation failed, or the
// remote HTTP call returned a non-success status. StatusCode is zero for
// local failures.
type ExecutionError struct {
	ToolID     string
	StatusCode int
	Err        error
}

func (e *ExecutionError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("tool %q execution failed with status %d", e.ToolID, e.StatusCode)
	}
	return fmt.Sprintf("tool %q execution failed: %v", e.ToolID, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// TransportError indicates the MCP socket failed to open or errored
// mid-session.
type TransportError struct {
	Server string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("mcp transport failure on %q: %v", e.Server, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
