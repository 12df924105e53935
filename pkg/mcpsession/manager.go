// Package mcpsession owns the long-lived socket connections to MCP servers.
// The manager keeps at most one session per distinct server endpoint for the
// life of the process and multiplexes concurrent tool calls over it,
// correlating responses to callers by request ID.
package mcpsession

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/bmadhq/toolcore/pkg/invocation"
)

// Dialer opens the socket to an MCP server endpoint. Injectable for tests.
type Dialer func(ctx context.Context, server string) (net.Conn, error)

func defaultDialer(ctx context.Context, server string) (net.Conn, error) {
	d := &net.Dialer{Timeout: 10 * time.Second}
	return d.DialContext(ctx, "tcp", server)
}

// Manager is the process-wide owner of MCP sessions. Adapters hold it by
// handle; there is no ambient global session table.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	// group makes session creation idempotent: two callers missing the
	// table for the same endpoint share one dial instead of leaking a
	// socket.
	group singleflight.Group

	creds  CredentialStore
	dial   Dialer
	logger *zap.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithDialer replaces the TCP dialer.
func WithDialer(dial Dialer) Option {
	return func(m *Manager) {
		m.dial = dial
	}
}

// WithLogger sets the manager's logger.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a session manager. The credential store may be nil when
// no server requires authentication.
func NewManager(creds CredentialStore, opts ...Option) *Manager {
	m := &Manager{
		sessions: make(map[string]*Session),
		creds:    creds,
		dial:     defaultDialer,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Get returns the session for a server endpoint, dialing a new connection if
// none exists. An existing session is reused without re-authenticating.
func (m *Manager) Get(ctx context.Context, server string) (*Session, error) {
	m.mu.RLock()
	if s, ok := m.sessions[server]; ok {
		m.mu.RUnlock()
		return s, nil
	}
	m.mu.RUnlock()

	v, err, _ := m.group.Do(server, func() (any, error) {
		// Re-check under the flight: another caller may have connected
		// between the cache miss and entering the group.
		m.mu.RLock()
		if s, ok := m.sessions[server]; ok {
			m.mu.RUnlock()
			return s, nil
		}
		m.mu.RUnlock()

		return m.connect(ctx, server)
	})
	if err != nil {
		return nil, err
	}

	return v.(*Session), nil
}

func (m *Manager) connect(ctx context.Context, server string) (*Session, error) {
	m.logger.Info("Opening MCP session", zap.String("mcp_server", server))

	conn, err := m.dial(ctx, server)
	if err != nil {
		return nil, &invocation.TransportError{
			Server: server,
			Err:    fmt.Errorf("failed to open socket: %w", err),
		}
	}

	s := newSession(server, conn, m.logger, m.remove)

	if m.creds != nil {
		token, ok, err := m.creds.Token(server)
		if err != nil {
			_ = conn.Close()
			return nil, &invocation.TransportError{
				Server: server,
				Err:    fmt.Errorf("failed to load credentials: %w", err),
			}
		}
		if ok {
			if err := s.authenticate(token); err != nil {
				_ = conn.Close()
				return nil, &invocation.TransportError{
					Server: server,
					Err:    fmt.Errorf("failed to send auth message: %w", err),
				}
			}
			m.logger.Debug("Sent auth handshake", zap.String("mcp_server", server))
		}
	}

	// Register before returning so every concurrent caller sees one session.
	m.mu.Lock()
	m.sessions[server] = s
	m.mu.Unlock()

	go s.readLoop()

	return s, nil
}

// remove drops a torn-down session from the table. A later Get dials fresh;
// the failed session itself is never retried.
func (m *Manager) remove(s *Session) {
	m.mu.Lock()
	if current, ok := m.sessions[s.server]; ok && current == s {
		delete(m.sessions, s.server)
	}
	m.mu.Unlock()
}

// Call invokes a tool on an MCP server, reusing the endpoint's session.
func (m *Manager) Call(ctx context.Context, server, namespace, toolID string, payload map[string]any) (any, error) {
	s, err := m.Get(ctx, server)
	if err != nil {
		return nil, err
	}

	return s.Call(ctx, namespace, toolID, payload)
}

// SessionCount reports how many sessions are currently open.
func (m *Manager) SessionCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Close tears down every open session.
func (m *Manager) Close() {
	m.mu.RLock()
	open := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		open = append(open, s)
	}
	m.mu.RUnlock()

	for _, s := range open {
		s.Close()
	}
}
