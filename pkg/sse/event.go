// Package sse decodes the dashboard's Server-Sent Events stream into discrete
// events. Events are delimited by a blank line ("\n\n"); within an event the
// "event:" line names the type and every "data:" line contributes to the
// payload.
//
// Unlike the SSE specification, multiple "data:" values are concatenated
// without a separator. The dashboard splits long JSON documents across data
// lines and expects them to be rejoined verbatim.
//
// See the SSE specification:
// https://html.spec.whatwg.org/multipage/server-sent-events.html
package sse

import "strings"

const (
	fieldEvent = "event:"
	fieldData  = "data:"
)

// Event represents a single parsed SSE event, delimited by a blank line
// in the upstream byte stream.
type Event struct {
	// Type is the value of the last "event:" line in the segment.
	// Empty when the segment carried no "event:" line.
	Type string

	// Data is the concatenated contents of all "data:" lines for this event,
	// each trimmed of surrounding whitespace and joined with no separator.
	Data string
}

// Payload parses the event data. See ParsePayload.
func (e Event) Payload() Payload {
	return ParsePayload(e.Data)
}

// ParseSegment parses one blank-line-delimited segment into an Event.
// Lines other than "event:" and "data:" are ignored.
func ParseSegment(segment string) Event {
	var ev Event
	var data strings.Builder

	for _, line := range strings.Split(segment, "\n") {
		switch {
		case strings.HasPrefix(line, fieldEvent):
			ev.Type = strings.TrimSpace(line[len(fieldEvent):])
		case strings.HasPrefix(line, fieldData):
			data.WriteString(strings.TrimSpace(line[len(fieldData):]))
		}
	}

	ev.Data = data.String()
	return ev
}
