package logstream

import (
	"log/slog"
	"net/http"
	"time"
)

// Option configures a Client created with New.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used to open the stream. It must not set
// a Timeout, which would cut long-lived streams.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithNotifier sets the sink for "error" events.
func WithNotifier(n Notifier) Option {
	return func(c *Client) {
		c.notifier = n
	}
}

// WithLogSink adds a sink that receives every "log" entry after it has been
// appended to the client's own log sequence.
func WithLogSink(s LogSink) Option {
	return func(c *Client) {
		c.sink = s
	}
}

// WithReconnectDelay sets the pause Reconnect takes between disconnecting and
// connecting again.
func WithReconnectDelay(d time.Duration) Option {
	return func(c *Client) {
		c.reconnectDelay = d
	}
}

// WithMaxLogs caps the log sequence at the newest n entries. n <= 0 keeps
// every entry.
func WithMaxLogs(n int) Option {
	return func(c *Client) {
		c.maxLogs = n
	}
}
