package executor

import (
	"strings"
	"time"

	"github.com/bmadhq/toolcore/pkg/catalog"
)

// Policy bounds a tool call. An unresponsive endpoint must not stall a call
// forever, so remote and MCP calls carry a deadline out of the box; retry
// stays off unless explicitly enabled.
type Policy struct {
	// Per-transport deadlines. Zero means no deadline for that transport.
	LocalTimeout  time.Duration
	RemoteTimeout time.Duration
	MCPTimeout    time.Duration

	// MaxAttempts enables retry of the dispatch stage when greater than
	// one. Resolution and authorization failures are never retried.
	MaxAttempts int

	// InitialBackoff seeds the exponential backoff between attempts.
	InitialBackoff time.Duration
}

// DefaultPolicy bounds remote and MCP calls and keeps retry disabled.
func DefaultPolicy() Policy {
	return Policy{
		RemoteTimeout: 30 * time.Second,
		MCPTimeout:    30 * time.Second,
		MaxAttempts:   1,
	}
}

func (p Policy) timeoutFor(toolType string) time.Duration {
	switch strings.ToLower(toolType) {
	case catalog.ToolTypeLocal:
		return p.LocalTimeout
	case catalog.ToolTypeRemote:
		return p.RemoteTimeout
	case catalog.ToolTypeMCP:
		return p.MCPTimeout
	default:
		return 0
	}
}

func (p Policy) attempts() int {
	if p.MaxAttempts < 1 {
		return 1
	}
	return p.MaxAttempts
}
