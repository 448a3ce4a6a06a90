// Package client implements the CLI side of the daemon protocol: one
// Unix socket connection per command, one request line out, one response
// line back.
package client

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/pomokit/pomo/internal/protocol"
	"github.com/pomokit/pomo/internal/timer"
)

const (
	dialTimeout  = 5 * time.Second
	ioTimeout    = 5 * time.Second
	maxAttempts  = 3
	retryBackoff = 500 * time.Millisecond
)

// ErrDaemonNotRunning reports that no daemon answered on the socket.
var ErrDaemonNotRunning = errors.New("daemon is not running")

// ServerError is an error response from a reachable daemon, carrying its
// message verbatim.
type ServerError struct {
	Message string
}

func (e *ServerError) Error() string {
	return e.Message
}

// Client talks to the daemon over its Unix socket.
type Client struct {
	socketPath string
}

// New creates a client for the given socket path.
func New(socketPath string) *Client {
	return &Client{socketPath: socketPath}
}

// Start begins a session. Unset params fall back to the daemon's
// configured defaults.
func (c *Client) Start(params protocol.StartParams) (*timer.Snapshot, error) {
	return c.command(protocol.Request{Command: protocol.CmdStart, Params: &params})
}

// Pause freezes the running timer.
func (c *Client) Pause() (*timer.Snapshot, error) {
	return c.command(protocol.Request{Command: protocol.CmdPause, Params: &protocol.StartParams{}})
}

// Resume continues a paused timer.
func (c *Client) Resume() (*timer.Snapshot, error) {
	return c.command(protocol.Request{Command: protocol.CmdResume, Params: &protocol.StartParams{}})
}

// Stop ends the session.
func (c *Client) Stop() (*timer.Snapshot, error) {
	return c.command(protocol.Request{Command: protocol.CmdStop, Params: &protocol.StartParams{}})
}

// Status reads the current timer state.
func (c *Client) Status() (*timer.Snapshot, error) {
	return c.command(protocol.Request{Command: protocol.CmdStatus, Params: &protocol.StartParams{}})
}

// Ping makes a single status round trip without retries. It is meant for
// readiness polling.
func (c *Client) Ping() error {
	_, err := c.roundTrip(protocol.Request{Command: protocol.CmdStatus, Params: &protocol.StartParams{}})
	return err
}

// SocketPath returns the socket the client talks to.
func (c *Client) SocketPath() string {
	return c.socketPath
}

func (c *Client) command(req protocol.Request) (*timer.Snapshot, error) {
	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if !resp.Success() {
		return nil, &ServerError{Message: resp.Message}
	}
	return resp.Data, nil
}

// do retries transport failures with a growing backoff. A daemon that is
// just starting up gets a moment to bind its socket.
func (c *Client) do(req protocol.Request) (*protocol.Response, error) {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			time.Sleep(time.Duration(attempt-1) * retryBackoff)
		}
		resp, err := c.roundTrip(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

func (c *Client) roundTrip(req protocol.Request) (*protocol.Response, error) {
	conn, err := net.DialTimeout("unix", c.socketPath, dialTimeout)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDaemonNotRunning, err)
	}
	defer conn.Close()

	data, err := req.Encode()
	if err != nil {
		return nil, err
	}

	_ = conn.SetDeadline(time.Now().Add(ioTimeout))
	if _, err := conn.Write(data); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	// Half-close tells the daemon no more bytes follow the request.
	if uc, ok := conn.(*net.UnixConn); ok {
		_ = uc.CloseWrite()
	}

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 4096), protocol.MaxResponseSize)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("failed to read response: %w", err)
		}
		return nil, fmt.Errorf("failed to read response: %w", io.ErrUnexpectedEOF)
	}

	return protocol.DecodeResponse(scanner.Bytes())
}
