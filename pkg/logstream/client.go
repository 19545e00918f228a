// Package logstream implements the client for the dashboard's live log
// stream. A Client holds at most one open connection to the SSE endpoint,
// decodes the events it carries, appends "log" entries to an ordered log
// sequence and forwards "error" events to a Notifier.
package logstream

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/weelink/dashctl/pkg/logbuffer"
	"github.com/weelink/dashctl/pkg/logger"
	"github.com/weelink/dashctl/pkg/sse"
)

// Event types sent by the dashboard.
const (
	EventHeartbeat    = "heartbeat"
	EventLog          = "log"
	EventError        = "error"
	EventConnected    = "connected"
	EventDisconnected = "disconnected"
)

// DefaultReconnectDelay is the pause Reconnect takes before connecting again.
const DefaultReconnectDelay = time.Second

// connection is one open stream. It is destroyed when its read loop exits.
type connection struct {
	id        string
	cancel    context.CancelFunc
	connected atomic.Bool
	done      chan struct{}
}

func (conn *connection) finished() bool {
	select {
	case <-conn.done:
		return true
	default:
		return false
	}
}

// Client streams events from the dashboard. Its methods are safe to call from
// multiple goroutines, but only one connection is open at a time.
type Client struct {
	httpClient     *http.Client
	logger         *slog.Logger
	notifier       Notifier
	sink           LogSink
	reconnectDelay time.Duration
	maxLogs        int
	logs           *logbuffer.Buffer

	mu   sync.Mutex
	conn *connection
	// last is the most recent connection, kept after Disconnect until its
	// read loop has exited.
	last     *connection
	endpoint string
	token    string
}

// New creates a Client. Each Client owns its log sequence.
func New(opts ...Option) *Client {
	c := &Client{
		// No timeout: the stream stays open indefinitely.
		httpClient:     &http.Client{Timeout: 0},
		logger:         logger.Nop(),
		reconnectDelay: DefaultReconnectDelay,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.notifier == nil {
		c.notifier = NotifierFunc(func(message string) {
			c.logger.Error("stream reported an error", "message", message)
		})
	}
	c.logs = logbuffer.New(c.maxLogs)

	return c
}

// Connect opens the stream at endpoint with the bearer token and reads it
// until it ends. It blocks for the life of the connection; run it in its own
// goroutine to stream in the background.
//
// Connect returns a *ConnectionError when the stream cannot be opened and a
// *StreamError when an open stream fails. It returns nil when the server
// closes the stream, sends a "disconnected" event, or the connection is
// cancelled through Disconnect or ctx.
func (c *Client) Connect(ctx context.Context, endpoint, token string) error {
	if token == "" {
		return ErrEmptyToken
	}

	c.mu.Lock()
	for {
		if c.conn != nil {
			c.mu.Unlock()
			return ErrAlreadyConnected
		}
		prev := c.last
		if prev == nil || prev.finished() {
			break
		}

		// A disconnected read loop may still be draining; only one loop
		// runs at a time.
		c.mu.Unlock()
		select {
		case <-prev.done:
		case <-ctx.Done():
			return nil
		}
		c.mu.Lock()
	}
	connCtx, cancel := context.WithCancel(ctx)
	conn := &connection{
		id:     uuid.NewString(),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	c.conn = conn
	c.last = conn
	c.endpoint = endpoint
	c.token = token
	c.mu.Unlock()

	defer c.release(conn)

	log := c.logger.With("conn", conn.id)

	req, err := http.NewRequestWithContext(connCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &ConnectionError{Err: err}
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if connCtx.Err() != nil {
			log.Debug("stream cancelled before it opened")
			return nil
		}
		return &ConnectionError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ConnectionError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	conn.connected.Store(true)
	log.Debug("stream opened", "endpoint", endpoint)

	return c.readLoop(connCtx, conn, resp.Body, log)
}

// readLoop decodes events from body and dispatches them until the body ends,
// the connection is cancelled, or a "disconnected" event arrives.
func (c *Client) readLoop(ctx context.Context, conn *connection, body io.Reader, log *slog.Logger) error {
	r := sse.NewReader(body)

	for {
		ev, err := r.Next()
		if err != nil {
			switch {
			case errors.Is(err, io.EOF):
				if dropped := r.Dropped(); dropped != "" {
					log.Debug("discarding unterminated event at end of stream", "bytes", len(dropped))
				}
				log.Info("stream closed by server")
				return nil
			case ctx.Err() != nil:
				log.Debug("stream connection terminated")
				return nil
			default:
				log.Error("stream connection error", "error", err)
				return &StreamError{Err: err}
			}
		}

		// Events decoded after cancellation are discarded.
		if ctx.Err() != nil {
			log.Debug("stream connection terminated")
			return nil
		}

		if stop := c.dispatch(conn, *ev, log); stop {
			return nil
		}
	}
}

// dispatch handles one event and reports whether the read loop must stop.
func (c *Client) dispatch(conn *connection, ev sse.Event, log *slog.Logger) bool {
	payload := ev.Payload()

	switch ev.Type {
	case EventHeartbeat:
		log.Debug("heartbeat", "payload", payload.Value())

	case EventLog:
		c.logs.AppendLog(payload)
		if c.sink != nil {
			c.sink.AppendLog(payload)
		}

	case EventError:
		msg, ok := payload.String("message")
		if !ok {
			msg = payload.Raw()
		}
		c.notifier.NotifyError(msg)

	case EventConnected:
		msg, _ := payload.String("message")
		log.Info("stream connected", "message", msg)

	case EventDisconnected:
		msg, _ := payload.String("message")
		log.Info("stream disconnected by server", "message", msg)
		conn.cancel()
		return true

	default:
		log.Warn("unknown stream event", "type", ev.Type, "payload", payload.Raw())
	}

	return false
}

// release resets the connected flag and destroys conn. It runs on every exit
// path of Connect.
func (c *Client) release(conn *connection) {
	conn.connected.Store(false)
	conn.cancel()

	c.mu.Lock()
	if c.conn == conn {
		c.conn = nil
	}
	c.mu.Unlock()

	close(conn.done)
}

// Disconnect cancels the open connection, if any. The read loop observes the
// cancellation on its next read and Connect returns nil. A Connect issued
// right after Disconnect waits for that loop to exit before opening a new
// stream. Disconnect is a no-op when nothing is connected.
func (c *Client) Disconnect() {
	c.mu.Lock()
	conn := c.conn
	c.conn = nil
	c.mu.Unlock()

	if conn == nil {
		return
	}
	conn.cancel()
}

// Reconnect disconnects, waits the reconnect delay, then connects again to
// the endpoint and token of the previous Connect. Like Connect it blocks for
// the life of the new connection.
func (c *Client) Reconnect(ctx context.Context) error {
	c.mu.Lock()
	endpoint, token := c.endpoint, c.token
	c.mu.Unlock()

	if endpoint == "" {
		return ErrNoEndpoint
	}

	c.Disconnect()

	timer := time.NewTimer(c.reconnectDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
	}

	c.logger.Info("reconnecting to stream", "endpoint", endpoint)
	return c.Connect(ctx, endpoint, token)
}

// IsConnected reports whether a stream is open and being read.
func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil && c.conn.connected.Load()
}

// ConnectionID returns the id of the open connection, or "" when none.
func (c *Client) ConnectionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return ""
	}
	return c.conn.id
}

// Logs returns a copy of the log sequence, oldest first.
func (c *Client) Logs() []sse.Payload {
	return c.logs.Entries()
}

// LogCount returns the number of entries in the log sequence.
func (c *Client) LogCount() int {
	return c.logs.Len()
}

// ClearLogs empties the log sequence.
func (c *Client) ClearLogs() {
	c.logs.Clear()
}
