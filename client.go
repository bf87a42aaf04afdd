// Copyright 2025 Stomp-Go Contributors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package stomp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mqwire/stomp-go/frame"
	"github.com/mqwire/stomp-go/internal/failover"
	"github.com/mqwire/stomp-go/stats"
)

// disconnectGrace is how long Disconnect leaves the write side open so the
// DISCONNECT frame reaches the broker before the socket closes.
const disconnectGrace = 100 * time.Millisecond

// DialFunc opens one transport connection; tests substitute in-memory
// connections through WithDialFunc.
type DialFunc = failover.DialFunc

// State is the connection lifecycle state.
type State = failover.State

// Connection lifecycle states.
const (
	StateDisconnected = failover.StateDisconnected
	StateConnecting   = failover.StateConnecting
	StateConnected    = failover.StateConnected
	StateFailed       = failover.StateFailed
)

// Client is a STOMP session over one broker connection picked from the
// configured endpoint set. The wire is a single frame stream with no
// pipelining: operations that await a reply (Connect, ReadFrame) must be
// serialized by the caller, and inbound frames belong to one reading
// goroutine.
type Client struct {
	mgr    *failover.Manager
	logger *slog.Logger
	rec    stats.Recorder

	login    string
	passcode string

	mu   sync.Mutex
	subs map[string]frame.Headers
}

// clientConfig holds client construction options.
type clientConfig struct {
	logger      *slog.Logger
	rec         stats.Recorder
	dial        failover.DialFunc
	maxAttempts int
	login       string
	passcode    string
}

// ClientOption configures the client.
type ClientOption func(*clientConfig)

// WithLogger sets the logger for connection and session events.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(cfg *clientConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithRecorder sets the recorder that receives timing observations for
// makeConnection, connect, and send operations.
func WithRecorder(rec stats.Recorder) ClientOption {
	return func(cfg *clientConfig) {
		if rec != nil {
			cfg.rec = rec
		}
	}
}

// WithCredentials sets the login and passcode, overriding any credentials
// embedded in the connection URI.
func WithCredentials(login, passcode string) ClientOption {
	return func(cfg *clientConfig) {
		cfg.login = login
		cfg.passcode = passcode
	}
}

// WithDialFunc replaces the transport dialer.
func WithDialFunc(dial DialFunc) ClientOption {
	return func(cfg *clientConfig) {
		cfg.dial = dial
	}
}

// WithMaxAttempts overrides the connection attempt ceiling.
func WithMaxAttempts(n int) ClientOption {
	return func(cfg *clientConfig) {
		cfg.maxAttempts = n
	}
}

// NewClient parses uri, establishes a broker connection, and performs the
// CONNECT handshake. The URI is either a single endpoint or a failover
// list:
//
//	tcp://broker:61613
//	failover:(tcp://a:61613,tcp://b:61613)?randomize=false
//
// The returned client is connected and ready to send. A handshake refused
// by the broker fails construction with a BrokerError.
func NewClient(uri string, options ...ClientOption) (*Client, error) {
	cfg := &clientConfig{
		logger: slog.Default(),
		rec:    stats.Nop{},
	}
	for _, opt := range options {
		opt(cfg)
	}

	parsed, err := failover.ParseURI(uri)
	if err != nil {
		return nil, err
	}
	if cfg.login == "" {
		cfg.login = parsed.Login
		cfg.passcode = parsed.Passcode
	}

	mgrOpts := []failover.Option{
		failover.WithLogger(cfg.logger),
		failover.WithRecorder(cfg.rec),
	}
	if cfg.dial != nil {
		mgrOpts = append(mgrOpts, failover.WithDialFunc(cfg.dial))
	}
	if cfg.maxAttempts > 0 {
		mgrOpts = append(mgrOpts, failover.WithMaxAttempts(cfg.maxAttempts))
	}

	c := &Client{
		mgr:      failover.NewManager(parsed, mgrOpts...),
		logger:   cfg.logger,
		rec:      cfg.rec,
		login:    cfg.login,
		passcode: cfg.passcode,
		subs:     make(map[string]frame.Headers),
	}

	if _, err := c.Connect(context.Background(), "", ""); err != nil {
		c.mgr.Close()
		return nil, err
	}
	return c, nil
}

// Connect establishes a broker connection when none is open and performs
// the CONNECT handshake. Non-empty credentials replace the stored ones;
// empty strings fall back to them. The broker reply frame is returned, or
// a BrokerError when the broker refuses the session.
func (c *Client) Connect(ctx context.Context, username, password string) (*frame.Frame, error) {
	defer c.meter("connect")()

	if username == "" {
		username = c.login
	}
	if password == "" {
		password = c.passcode
	}
	c.login, c.passcode = username, password

	if !c.mgr.Connected() {
		if err := c.mgr.Establish(ctx); err != nil {
			return nil, err
		}
	}

	connect := frame.New(frame.CmdConnect,
		frame.Header{Name: frame.HdrLogin, Value: username},
		frame.Header{Name: frame.HdrPasscode, Value: password})
	if err := c.writeFrame(connect); err != nil {
		return nil, err
	}

	reply, err := c.ReadFrame()
	if err != nil {
		return nil, err
	}
	connected := reply.Wire()
	session, _ := connected.Headers.Get("session")
	c.logger.Info("session connected", "session", session)
	return connected, nil
}

// Disconnect sends DISCONNECT and closes the connection after a short
// grace period. The subscription set is cleared. Disconnecting twice is
// safe; the second call is a no-op.
func (c *Client) Disconnect() error {
	if !c.mgr.Connected() {
		return nil
	}
	if err := c.writeFrame(frame.New(frame.CmdDisconnect)); err != nil {
		c.logger.Warn("disconnect frame not delivered", "error", err)
	}
	c.mu.Lock()
	c.subs = make(map[string]frame.Headers)
	c.mu.Unlock()
	return c.mgr.Shutdown(disconnectGrace)
}

// Connected reports whether the broker connection is open.
func (c *Client) Connected() bool {
	return c.mgr.Connected()
}

// State reports the connection lifecycle state.
func (c *Client) State() State {
	return c.mgr.State()
}

// Endpoint returns the address of the connected broker.
func (c *Client) Endpoint() (string, bool) {
	ep, ok := c.mgr.Endpoint()
	if !ok {
		return "", false
	}
	return ep.Addr(), true
}

// Stats returns the observation log when the client was built with a
// *stats.Log recorder, nil otherwise.
func (c *Client) Stats() *stats.Log {
	if l, ok := c.rec.(*stats.Log); ok {
		return l
	}
	return nil
}

// writeFrame encodes and writes one frame. Transport failures map to
// ErrConnectionLost; a missing connection stays ErrNotConnected.
func (c *Client) writeFrame(f *frame.Frame) error {
	if _, err := c.mgr.Write(frame.Encode(f)); err != nil {
		if errors.Is(err, failover.ErrNotConnected) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrConnectionLost, err)
	}
	c.logger.Debug("frame written", "command", f.Command)
	return nil
}

// meter starts a timing observation; the returned func records it.
func (c *Client) meter(command string) func() {
	start := time.Now()
	return func() { c.rec.Record(command, time.Since(start)) }
}
