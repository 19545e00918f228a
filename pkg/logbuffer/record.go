package logbuffer

import (
	"github.com/weelink/dashctl/pkg/sse"
)

// Record is the shape of a "log" event emitted by the dashboard's logger sink.
type Record struct {
	Message  string `json:"message"`
	Level    string `json:"level"`
	Path     string `json:"path"`
	Line     int    `json:"line"`
	Function string `json:"function"`
	Time     string `json:"time"`
}

// RecordFromPayload converts a log payload into a Record. Payloads that are
// not JSON objects become a Record carrying only the message text.
func RecordFromPayload(p sse.Payload) Record {
	var r Record
	if _, isObject := p.Value().(map[string]any); isObject {
		if err := p.Decode(&r); err == nil {
			return r
		}
		// Fields of unexpected types: keep what can be read as strings.
		r = Record{}
		r.Message, _ = p.String("message")
		r.Level, _ = p.String("level")
		r.Path, _ = p.String("path")
		r.Function, _ = p.String("function")
		r.Time, _ = p.String("time")
		if r.Message == "" {
			r.Message = p.Raw()
		}
		return r
	}

	if s, ok := p.Value().(string); ok {
		return Record{Message: s}
	}
	return Record{Message: p.Raw()}
}
