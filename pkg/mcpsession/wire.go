package mcpsession

import "encoding/json"

const (
	actionAuth   = "auth"
	actionInvoke = "invoke"
)

// outboundMessage is one newline-delimited JSON message sent to an MCP
// server: either the authentication handshake or a tool invocation.
type outboundMessage struct {
	Action    string         `json:"action"`
	ID        string         `json:"id,omitempty"`
	Token     string         `json:"token,omitempty"`
	Namespace string         `json:"namespace,omitempty"`
	ToolID    string         `json:"toolId,omitempty"`
	Payload   map[string]any `json:"payload,omitempty"`
}

// inboundMessage is the response envelope: the correlation ID of the call it
// answers, an ok flag, and either a result or an error string.
type inboundMessage struct {
	ID     string          `json:"id"`
	OK     bool            `json:"ok"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}
