package remote

import (
	"context"
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bmadhq/toolcore/pkg/catalog"
	"github.com/bmadhq/toolcore/pkg/invocation"
)

func TestRemoteInvocation(t *testing.T) {
	tt := []struct {
		name           string
		responseCode   int
		responseBody   string
		payload        map[string]any
		expectedResult any
		expectedStatus int
		expectError    bool
	}{
		{
			name:           "successful call decodes the json body",
			responseCode:   200,
			responseBody:   `{"answer": 42}`,
			payload:        map[string]any{"question": "life"},
			expectedResult: map[string]any{"answer": float64(42)},
		},
		{
			name:           "empty body yields nil result",
			responseCode:   204,
			responseBody:   "",
			payload:        map[string]any{},
			expectedResult: nil,
		},
		{
			name:           "server error carries the status code",
			responseCode:   500,
			responseBody:   `{"error": "internal"}`,
			payload:        map[string]any{},
			expectedStatus: 500,
			expectError:    true,
		},
		{
			name:           "client error carries the status code",
			responseCode:   403,
			responseBody:   "",
			payload:        map[string]any{},
			expectedStatus: 403,
			expectError:    true,
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			var receivedMethod string
			var receivedBody map[string]any

			server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
				receivedMethod = r.Method
				body, _ := io.ReadAll(r.Body)
				_ = json.Unmarshal(body, &receivedBody)
				w.WriteHeader(tc.responseCode)
				_, _ = w.Write([]byte(tc.responseBody))
			}))
			defer server.Close()

			invoker := &RemoteInvoker{ToolID: "web-search", URL: server.URL}
			result, err := invoker.Invoke(context.Background(), tc.payload)

			assert.Equal(t, nethttp.MethodPost, receivedMethod)
			assert.Equal(t, tc.payload, receivedBody)

			if tc.expectError {
				var execErr *invocation.ExecutionError
				require.ErrorAs(t, err, &execErr)
				assert.Equal(t, tc.expectedStatus, execErr.StatusCode)
				assert.Equal(t, "web-search", execErr.ToolID)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expectedResult, result)
		})
	}
}

func TestRemoteInvocationHonorsContextDeadline(t *testing.T) {
	blocked := make(chan struct{})
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		<-blocked
	}))
	defer server.Close()
	defer close(blocked)

	invoker := &RemoteInvoker{ToolID: "slow", URL: server.URL}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := invoker.Invoke(ctx, map[string]any{})

	var execErr *invocation.ExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.ErrorIs(t, execErr, context.DeadlineExceeded)
}

func TestRemoteFactoryRejectsBadURL(t *testing.T) {
	factory := &InvokerFactory{}

	_, err := factory.CreateInvoker(&catalog.ToolDefinition{
		ID:         "bad",
		Type:       catalog.ToolTypeRemote,
		Entrypoint: "not a url",
	})
	assert.Error(t, err)

	_, err = factory.CreateInvoker(&catalog.ToolDefinition{
		ID:         "good",
		Type:       catalog.ToolTypeRemote,
		Entrypoint: "https://tools.example.com/search",
	})
	assert.NoError(t, err)
}
