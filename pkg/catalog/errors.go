package catalog

import "fmt"

// NotFoundError indicates a tool identifier resolved to nothing in either
// the definitions directory or the registry index.
type NotFoundError struct {
	ToolID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("tool %q not found in definitions directory or registry index", e.ToolID)
}
