package logstream

import "github.com/weelink/dashctl/pkg/sse"

// Notifier surfaces error messages to the user.
type Notifier interface {
	NotifyError(message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(message string)

func (f NotifierFunc) NotifyError(message string) { f(message) }

// LogSink receives log entries.
type LogSink interface {
	AppendLog(entry sse.Payload)
}

// LogSinkFunc adapts a function to LogSink.
type LogSinkFunc func(entry sse.Payload)

func (f LogSinkFunc) AppendLog(entry sse.Payload) { f(entry) }
