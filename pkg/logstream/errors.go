package logstream

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyToken is returned by Connect when no bearer token is supplied.
	ErrEmptyToken = errors.New("empty bearer token")

	// ErrAlreadyConnected is returned by Connect while a connection is open.
	// Call Disconnect first, or use Reconnect.
	ErrAlreadyConnected = errors.New("stream already connected")

	// ErrNoEndpoint is returned by Reconnect before any Connect.
	ErrNoEndpoint = errors.New("no previous stream to reconnect")
)

// ConnectionError reports that the stream could not be opened, either because
// the request failed or because the server answered with a non-2xx status.
type ConnectionError struct {
	StatusCode int
	Status     string
	Err        error
}

func (e *ConnectionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("connecting to stream: %v", e.Err)
	}
	return fmt.Sprintf("stream connection failed with status %d", e.StatusCode)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// StreamError reports a read failure on an open stream that was not caused by
// cancellation.
type StreamError struct {
	Err error
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("reading stream: %v", e.Err)
}

func (e *StreamError) Unwrap() error {
	return e.Err
}
