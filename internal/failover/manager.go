package failover

import (
	"bufio"
	"context"
	"log/slog"
	"math/rand"
	"net"
	"sync"
	"time"

	"github.com/mqwire/stomp-go/stats"
)

// DefaultMaxAttempts is the connection attempt ceiling per Establish call.
const DefaultMaxAttempts = 10

// DialFunc opens one transport connection. The default implementation is a
// net.Dialer bounded by timeout; tests substitute in-memory connections.
type DialFunc func(ctx context.Context, network, addr string, timeout time.Duration) (net.Conn, error)

func defaultDial(ctx context.Context, network, addr string, timeout time.Duration) (net.Conn, error) {
	d := net.Dialer{Timeout: timeout}
	return d.DialContext(ctx, network, addr)
}

// State is the connection lifecycle state.
type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Manager owns the transport connection to one broker out of a candidate
// set. Establish walks the set until a dial succeeds or the attempt ceiling
// is hit; afterwards the Manager serves reads and writes on the winning
// connection. It does not reconnect on its own.
type Manager struct {
	endpoints   []Endpoint
	params      Params
	dial        DialFunc
	maxAttempts int
	logger      *slog.Logger
	rec         stats.Recorder

	mu      sync.Mutex
	state   State
	conn    net.Conn
	reader  *bufio.Reader
	current Endpoint
	last    int
	rng     *rand.Rand
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r stats.Recorder) Option {
	return func(m *Manager) {
		if r != nil {
			m.rec = r
		}
	}
}

// WithDialFunc replaces the transport dialer.
func WithDialFunc(d DialFunc) Option {
	return func(m *Manager) {
		if d != nil {
			m.dial = d
		}
	}
}

// WithMaxAttempts overrides the connection attempt ceiling.
func WithMaxAttempts(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.maxAttempts = n
		}
	}
}

// NewManager builds a Manager over the parsed endpoint set. The first
// Establish starts from the first endpoint; selection then proceeds
// round-robin, or uniformly at random when the randomize option is set.
func NewManager(cfg Config, opts ...Option) *Manager {
	m := &Manager{
		endpoints:   cfg.Endpoints,
		params:      cfg.Params,
		dial:        defaultDial,
		maxAttempts: DefaultMaxAttempts,
		logger:      slog.Default(),
		rec:         stats.Nop{},
		last:        -1,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Establish dials endpoints until one accepts or the attempt ceiling is
// reached. A refused or timed-out dial moves on to the next endpoint. On
// exhaustion it returns a ConnectError matching ErrAllBrokersUnreachable.
// An already-open connection is closed before the first attempt.
func (m *Manager) Establish(ctx context.Context) error {
	start := time.Now()
	defer func() { m.rec.Record("makeConnection", time.Since(start)) }()

	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.endpoints) == 0 {
		return ErrNoBrokersDefined
	}
	m.closeLocked()
	m.state = StateConnecting

	var lastErr error
	for attempt := 1; attempt <= m.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			m.state = StateDisconnected
			return err
		}
		ep := m.nextLocked()
		conn, err := m.dial(ctx, "tcp", ep.Addr(), m.params.ConnectTimeout)
		if err != nil {
			lastErr = err
			m.logger.Warn("broker dial failed",
				"endpoint", ep.String(),
				"attempt", attempt,
				"error", err)
			continue
		}
		m.configureSocket(conn)
		m.conn = conn
		m.reader = bufio.NewReader(&deadlineReader{conn: conn, timeout: m.params.SoTimeout})
		m.current = ep
		m.state = StateConnected
		m.logger.Info("broker connected",
			"endpoint", ep.String(),
			"attempts", attempt)
		return nil
	}

	m.state = StateFailed
	return &ConnectError{Attempts: m.maxAttempts, LastErr: lastErr}
}

// nextLocked picks the endpoint for the next attempt.
func (m *Manager) nextLocked() Endpoint {
	if m.params.Randomize && len(m.endpoints) > 1 {
		m.last = m.rng.Intn(len(m.endpoints))
	} else {
		m.last = (m.last + 1) % len(m.endpoints)
	}
	return m.endpoints[m.last]
}

func (m *Manager) configureSocket(conn net.Conn) {
	tc, ok := conn.(*net.TCPConn)
	if !ok || m.params.SocketBufferSize <= 0 {
		return
	}
	if err := tc.SetReadBuffer(m.params.SocketBufferSize); err != nil {
		m.logger.Warn("set read buffer failed", "error", err)
	}
	if err := tc.SetWriteBuffer(m.params.SocketBufferSize); err != nil {
		m.logger.Warn("set write buffer failed", "error", err)
	}
}

// ReadByte reads the next byte from the broker, refreshing the read
// deadline when soTimeout is set. It implements io.ByteReader.
func (m *Manager) ReadByte() (byte, error) {
	m.mu.Lock()
	r := m.reader
	m.mu.Unlock()
	if r == nil {
		return 0, ErrNotConnected
	}
	return r.ReadByte()
}

// Write sends p to the broker, bounded by soTimeout when set.
func (m *Manager) Write(p []byte) (int, error) {
	m.mu.Lock()
	conn := m.conn
	m.mu.Unlock()
	if conn == nil {
		return 0, ErrNotConnected
	}
	if t := m.params.SoTimeout; t > 0 {
		if err := conn.SetWriteDeadline(time.Now().Add(t)); err != nil {
			return 0, err
		}
	}
	return conn.Write(p)
}

// State reports the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Connected reports whether a connection is open.
func (m *Manager) Connected() bool {
	return m.State() == StateConnected
}

// Endpoint returns the endpoint of the open connection.
func (m *Manager) Endpoint() (Endpoint, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.conn == nil {
		return Endpoint{}, false
	}
	return m.current, true
}

// Close tears down the connection immediately.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	err := m.closeLocked()
	m.state = StateDisconnected
	return err
}

type closeWriter interface {
	CloseWrite() error
}

// Shutdown closes the write side first so queued frames reach the broker,
// waits out the grace period, then closes the connection.
func (m *Manager) Shutdown(grace time.Duration) error {
	m.mu.Lock()
	conn := m.conn
	m.mu.Unlock()
	if conn == nil {
		return nil
	}
	if cw, ok := conn.(closeWriter); ok {
		if err := cw.CloseWrite(); err == nil && grace > 0 {
			time.Sleep(grace)
		}
	}
	return m.Close()
}

func (m *Manager) closeLocked() error {
	if m.conn == nil {
		return nil
	}
	err := m.conn.Close()
	m.conn = nil
	m.reader = nil
	return err
}

// deadlineReader arms the read deadline before every read so soTimeout
// bounds each operation rather than the whole connection.
type deadlineReader struct {
	conn    net.Conn
	timeout time.Duration
}

func (r *deadlineReader) Read(p []byte) (int, error) {
	if r.timeout > 0 {
		if err := r.conn.SetReadDeadline(time.Now().Add(r.timeout)); err != nil {
			return 0, err
		}
	}
	return r.conn.Read(p)
}
