package mcpsession

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"sync"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/bmadhq/toolcore/pkg/invocation"
)

// callOutcome is the terminal state of one in-flight call.
type callOutcome struct {
	result any
	err    error
}

// pendingCall tracks one in-flight invoke awaiting its correlated response.
type pendingCall struct {
	toolID  string
	outcome chan callOutcome
}

// Session is the connection state for one MCP server endpoint: the open
// socket, and a correlation-ID-keyed table of in-flight calls. A session
// serves many concurrent callers; responses are matched to callers by the
// id field of the envelope, never by arrival order.
type Session struct {
	server string
	conn   net.Conn
	logger *zap.Logger

	// writeMu serializes whole messages onto the socket.
	writeMu sync.Mutex
	enc     *json.Encoder

	pendingMu sync.Mutex
	pending   map[string]*pendingCall

	errMu    sync.RWMutex
	fatalErr error

	closeOnce sync.Once
	done      chan struct{}

	// onClose lets the owning manager drop the session from its table.
	onClose func(*Session)
}

func newSession(server string, conn net.Conn, logger *zap.Logger, onClose func(*Session)) *Session {
	return &Session{
		server:  server,
		conn:    conn,
		logger:  logger.With(zap.String("mcp_server", server)),
		enc:     json.NewEncoder(conn),
		pending: make(map[string]*pendingCall),
		done:    make(chan struct{}),
		onClose: onClose,
	}
}

// Server returns the endpoint this session is connected to.
func (s *Session) Server() string {
	return s.server
}

// Done returns a channel closed when the session is torn down.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// authenticate sends the auth handshake. Fire-and-forget: no acknowledgment
// is awaited before tool calls are allowed through.
func (s *Session) authenticate(token string) error {
	return s.send(&outboundMessage{Action: actionAuth, Token: token})
}

func (s *Session) send(msg *outboundMessage) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.enc.Encode(msg)
}

// Call sends one invoke message and blocks until the correlated response
// arrives, the context ends, or the session fails.
func (s *Session) Call(ctx context.Context, namespace, toolID string, payload map[string]any) (any, error) {
	requestID := ulid.Make().String()

	call := &pendingCall{toolID: toolID, outcome: make(chan callOutcome, 1)}
	s.pendingMu.Lock()
	s.pending[requestID] = call
	s.pendingMu.Unlock()

	s.logger.Debug("Sending invoke message",
		zap.String("request_id", requestID),
		zap.String("namespace", namespace),
		zap.String("tool_id", toolID))

	err := s.send(&outboundMessage{
		Action:    actionInvoke,
		ID:        requestID,
		Namespace: namespace,
		ToolID:    toolID,
		Payload:   payload,
	})
	if err != nil {
		s.unregister(requestID)
		s.fail(fmt.Errorf("failed to send invoke message: %w", err))
		return nil, &invocation.TransportError{Server: s.server, Err: err}
	}

	select {
	case outcome := <-call.outcome:
		return outcome.result, outcome.err
	case <-s.done:
		return nil, &invocation.TransportError{Server: s.server, Err: s.FatalError()}
	case <-ctx.Done():
		s.unregister(requestID)
		return nil, &invocation.TransportError{Server: s.server, Err: ctx.Err()}
	}
}

func (s *Session) unregister(requestID string) {
	s.pendingMu.Lock()
	delete(s.pending, requestID)
	s.pendingMu.Unlock()
}

// readLoop decodes inbound envelopes and routes each to the pending call
// carrying its correlation ID. It runs until the socket errors or closes.
func (s *Session) readLoop() {
	dec := json.NewDecoder(s.conn)
	for {
		var msg inboundMessage
		if err := dec.Decode(&msg); err != nil {
			s.fail(fmt.Errorf("failed to read from socket: %w", err))
			return
		}

		s.pendingMu.Lock()
		call, ok := s.pending[msg.ID]
		if ok {
			delete(s.pending, msg.ID)
		}
		s.pendingMu.Unlock()

		if !ok {
			s.logger.Warn("Dropping response with unknown correlation id",
				zap.String("request_id", msg.ID))
			continue
		}

		call.outcome <- s.decodeOutcome(call, &msg)
	}
}

func (s *Session) decodeOutcome(call *pendingCall, msg *inboundMessage) callOutcome {
	if !msg.OK {
		errText := msg.Error
		if errText == "" {
			errText = "server reported an unspecified error"
		}
		return callOutcome{err: &invocation.ExecutionError{
			ToolID: call.toolID,
			Err:    fmt.Errorf("mcp server %s: %s", s.server, errText),
		}}
	}

	var result any
	if len(msg.Result) > 0 {
		if err := json.Unmarshal(msg.Result, &result); err != nil {
			return callOutcome{err: &invocation.TransportError{
				Server: s.server,
				Err:    fmt.Errorf("failed to decode result: %w", err),
			}}
		}
	}

	return callOutcome{result: result}
}

// FatalError returns the error that tore the session down, if any.
func (s *Session) FatalError() error {
	s.errMu.RLock()
	defer s.errMu.RUnlock()
	return s.fatalErr
}

// fail tears the session down exactly once: records the error, closes the
// socket, rejects every pending call, and detaches from the manager. There
// is no automatic reconnect; a later lookup dials fresh.
func (s *Session) fail(err error) {
	s.closeOnce.Do(func() {
		s.errMu.Lock()
		s.fatalErr = err
		s.errMu.Unlock()

		s.logger.Warn("Tearing down MCP session", zap.Error(err))

		close(s.done)
		_ = s.conn.Close()

		s.pendingMu.Lock()
		pending := s.pending
		s.pending = make(map[string]*pendingCall)
		s.pendingMu.Unlock()

		for _, call := range pending {
			call.outcome <- callOutcome{err: &invocation.TransportError{Server: s.server, Err: err}}
		}

		if s.onClose != nil {
			s.onClose(s)
		}
	})
}

// Close shuts the session down deliberately, rejecting in-flight calls.
func (s *Session) Close() {
	s.fail(fmt.Errorf("session closed"))
}
