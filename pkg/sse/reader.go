package sse

import (
	"errors"
	"io"

	"golang.org/x/text/encoding/unicode"
)

const readSize = 4 * 1024

// Reader reads events from a streaming body such as an HTTP response.
//
// ┌──────────────────┐
// │ source io.Reader │
// └──────────────────┘
// │
// ▼
// ┌──────────────────┐
// │   UTF-8 decode   │  split multi-byte sequences are joined across reads
// └──────────────────┘
// │
// ▼
// ┌──────────────────┐
// │  Decoder.Feed()  │──▶ Event, Event, ...
// └──────────────────┘
type Reader struct {
	src     io.Reader
	dec     *Decoder
	chunk   []byte
	pending []Event
	err     error
	dropped string
}

// NewReader returns a Reader that decodes events from src. Invalid UTF-8 is
// replaced with U+FFFD.
func NewReader(src io.Reader) *Reader {
	return &Reader{
		src:   unicode.UTF8.NewDecoder().Reader(src),
		dec:   NewDecoder(),
		chunk: make([]byte, readSize),
	}
}

// Next returns the next event, blocking on the source until one is complete.
// At the end of the source it returns io.EOF; any unterminated trailing
// segment is not emitted and is available from Dropped. Read errors from the
// source are returned once every event decoded before them has been consumed.
func (r *Reader) Next() (*Event, error) {
	for len(r.pending) == 0 {
		if r.err != nil {
			return nil, r.err
		}

		n, err := r.src.Read(r.chunk)
		if n > 0 {
			r.pending = r.dec.Feed(r.chunk[:n])
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				r.dropped = r.dec.Remainder()
				r.dec.Reset()
			}
			r.err = err
		}
	}

	ev := r.pending[0]
	r.pending = r.pending[1:]
	return &ev, nil
}

// Dropped returns the unterminated trailing data discarded at end of stream.
func (r *Reader) Dropped() string {
	return r.dropped
}
