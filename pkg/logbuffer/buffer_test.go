package logbuffer_test

import (
	"fmt"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/weelink/dashctl/pkg/logbuffer"
	"github.com/weelink/dashctl/pkg/sse"
)

func raws(entries []sse.Payload) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Raw()
	}
	return out
}

var _ = Describe("Buffer", func() {
	It("keeps entries in insertion order", func() {
		b := logbuffer.New(0)
		b.AppendLog(sse.RawPayload("a"))
		b.AppendLog(sse.RawPayload("b"))
		b.AppendLog(sse.RawPayload("c"))

		Expect(b.Len()).To(Equal(3))
		Expect(raws(b.Entries())).To(Equal([]string{"a", "b", "c"}))
	})

	It("grows without bound when no cap is set", func() {
		b := logbuffer.New(-1)
		for i := range 1000 {
			b.AppendLog(sse.RawPayload(fmt.Sprint(i)))
		}
		Expect(b.Len()).To(Equal(1000))
	})

	It("evicts the oldest entries past the cap", func() {
		b := logbuffer.New(3)
		for _, s := range []string{"1", "2", "3", "4", "5"} {
			b.AppendLog(sse.RawPayload(s))
		}
		Expect(raws(b.Entries())).To(Equal([]string{"3", "4", "5"}))
	})

	It("stays ordered after wrapping around the cap several times", func() {
		b := logbuffer.New(4)
		for i := range 11 {
			b.AppendLog(sse.RawPayload(fmt.Sprint(i)))
			if i == 3 {
				Expect(raws(b.Entries())).To(Equal([]string{"0", "1", "2", "3"}))
			}
		}
		Expect(b.Len()).To(Equal(4))
		Expect(raws(b.Entries())).To(Equal([]string{"7", "8", "9", "10"}))
	})

	It("starts over cleanly after Clear on a wrapped ring", func() {
		b := logbuffer.New(2)
		for _, s := range []string{"a", "b", "c"} {
			b.AppendLog(sse.RawPayload(s))
		}
		b.Clear()
		b.AppendLog(sse.RawPayload("d"))
		b.AppendLog(sse.RawPayload("e"))
		b.AppendLog(sse.RawPayload("f"))
		Expect(raws(b.Entries())).To(Equal([]string{"e", "f"}))
	})

	It("returns a copy from Entries", func() {
		b := logbuffer.New(0)
		b.AppendLog(sse.RawPayload("a"))
		entries := b.Entries()
		entries[0] = sse.RawPayload("mutated")
		Expect(raws(b.Entries())).To(Equal([]string{"a"}))
	})

	It("empties on Clear", func() {
		b := logbuffer.New(0)
		b.AppendLog(sse.RawPayload("a"))
		b.Clear()
		Expect(b.Len()).To(BeZero())
	})

	It("is safe for concurrent appends and reads", func() {
		b := logbuffer.New(50)
		var wg sync.WaitGroup
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for range 100 {
					b.AppendLog(sse.RawPayload("x"))
					_ = b.Entries()
				}
			}()
		}
		wg.Wait()
		Expect(b.Len()).To(Equal(50))
	})
})

var _ = Describe("RecordFromPayload", func() {
	It("decodes the dashboard log shape", func() {
		p := sse.ParsePayload(`{"message":"started","level":"INFO","path":"/app/main.py","line":12,"function":"run","time":"2025-03-01T10:02:03+00:00"}`)
		r := logbuffer.RecordFromPayload(p)
		Expect(r).To(Equal(logbuffer.Record{
			Message:  "started",
			Level:    "INFO",
			Path:     "/app/main.py",
			Line:     12,
			Function: "run",
			Time:     "2025-03-01T10:02:03+00:00",
		}))
	})

	It("keeps string fields when other fields have unexpected types", func() {
		r := logbuffer.RecordFromPayload(sse.ParsePayload(`{"message":"m","level":"WARNING","line":"12"}`))
		Expect(r.Message).To(Equal("m"))
		Expect(r.Level).To(Equal("WARNING"))
		Expect(r.Line).To(BeZero())
	})

	It("uses raw text as the message", func() {
		r := logbuffer.RecordFromPayload(sse.RawPayload("plain line"))
		Expect(r).To(Equal(logbuffer.Record{Message: "plain line"}))
	})

	It("uses JSON strings as the message", func() {
		r := logbuffer.RecordFromPayload(sse.ParsePayload(`"quoted"`))
		Expect(r.Message).To(Equal("quoted"))
	})

	It("falls back to the raw JSON for other values", func() {
		r := logbuffer.RecordFromPayload(sse.ParsePayload(`[1,2]`))
		Expect(r.Message).To(Equal("[1,2]"))
	})
})
