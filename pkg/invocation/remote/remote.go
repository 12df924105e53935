// Package remote executes tools backed by an HTTP service: one synchronous
// POST of the JSON-encoded payload to the definition's entrypoint URL.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	nethttp "net/http"
	neturl "net/url"

	"github.com/bmadhq/toolcore/pkg/catalog"
	"github.com/bmadhq/toolcore/pkg/invocation"
)

const contentTypeHeader = "Content-Type"

// RemoteInvoker posts the call payload to a fixed URL and decodes the JSON
// response body as the call result.
type RemoteInvoker struct {
	ToolID string
	URL    string
	Client *nethttp.Client
}

var _ invocation.Invoker = &RemoteInvoker{}

func (ri *RemoteInvoker) Invoke(ctx context.Context, payload map[string]any) (any, error) {
	if payload == nil {
		payload = map[string]any{}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &invocation.ExecutionError{
			ToolID: ri.ToolID,
			Err:    fmt.Errorf("failed to marshal request body: %w", err),
		}
	}

	httpReq, err := nethttp.NewRequestWithContext(ctx, nethttp.MethodPost, ri.URL, bytes.NewBuffer(body))
	if err != nil {
		return nil, &invocation.ExecutionError{
			ToolID: ri.ToolID,
			Err:    fmt.Errorf("failed to create http request: %w", err),
		}
	}
	httpReq.Header.Set(contentTypeHeader, "application/json; charset=UTF-8")

	client := ri.Client
	if client == nil {
		client = nethttp.DefaultClient
	}

	response, err := client.Do(httpReq)
	if err != nil {
		return nil, &invocation.ExecutionError{
			ToolID: ri.ToolID,
			Err:    fmt.Errorf("failed to execute http request: %w", err),
		}
	}
	defer func() {
		_ = response.Body.Close()
	}()

	respBody, readErr := io.ReadAll(response.Body)
	if readErr != nil {
		return nil, &invocation.ExecutionError{
			ToolID: ri.ToolID,
			Err:    fmt.Errorf("failed to read http response body: %w", readErr),
		}
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, &invocation.ExecutionError{
			ToolID:     ri.ToolID,
			StatusCode: response.StatusCode,
			Err:        fmt.Errorf("http request failed with status %d", response.StatusCode),
		}
	}

	if len(respBody) == 0 {
		return nil, nil
	}

	var result any
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, &invocation.ExecutionError{
			ToolID: ri.ToolID,
			Err:    fmt.Errorf("failed to decode http response body: %w", err),
		}
	}

	return result, nil
}

// InvokerFactory builds remote invokers. The HTTP client is shared across
// all invokers the factory creates so tests can stub it.
type InvokerFactory struct {
	Client *nethttp.Client
}

var _ invocation.InvokerFactory = &InvokerFactory{}

func (f *InvokerFactory) CreateInvoker(def *catalog.ToolDefinition) (invocation.Invoker, error) {
	if _, err := neturl.ParseRequestURI(def.Entrypoint); err != nil {
		return nil, fmt.Errorf("invalid remote tool entrypoint %q: %w", def.Entrypoint, err)
	}

	return &RemoteInvoker{
		ToolID: def.ID,
		URL:    def.Entrypoint,
		Client: f.Client,
	}, nil
}
