package sse

import (
	"bytes"
	"strings"
)

var delimiter = []byte("\n\n")

// Decoder splits a chunked byte stream into events. Chunks may end anywhere,
// including inside a multi-byte character or between the two newlines of a
// delimiter: the incomplete tail is kept and prefixed to the next chunk.
type Decoder struct {
	buf []byte
}

// NewDecoder returns an empty Decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Feed appends chunk to the buffer and returns every event completed by it,
// in stream order. Segments containing only whitespace (keep-alive newlines)
// produce no event.
func (d *Decoder) Feed(chunk []byte) []Event {
	d.buf = append(d.buf, chunk...)

	var events []Event
	for {
		i := bytes.Index(d.buf, delimiter)
		if i < 0 {
			break
		}

		segment := string(d.buf[:i])
		d.buf = d.buf[i+len(delimiter):]

		if strings.TrimSpace(segment) == "" {
			continue
		}
		events = append(events, ParseSegment(segment))
	}

	// Compact so a long-lived stream does not pin consumed bytes.
	if len(d.buf) == 0 {
		d.buf = nil
	} else if cap(d.buf) > 2*len(d.buf)+4096 {
		d.buf = append([]byte(nil), d.buf...)
	}

	return events
}

// Remainder returns the buffered bytes of the incomplete trailing segment.
func (d *Decoder) Remainder() string {
	return string(d.buf)
}

// Reset discards any buffered data.
func (d *Decoder) Reset() {
	d.buf = nil
}
