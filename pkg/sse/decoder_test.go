package sse_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/weelink/dashctl/pkg/sse"
)

const fixture = "event: connected\ndata: {\"message\":\"连接成功\"}\n\n" +
	"event: log\ndata: {\"message\":\"日志 ✓\",\"level\":\"INFO\"}\n\n" +
	"event: log\ndata: {\"message\":\ndata: \"多行\"}\n\n" +
	"event: heartbeat\ndata: {\"timestamp\":12.5}\n\n" +
	"event: error\ndata: not json\n\n"

func decodeAll(chunks ...[]byte) []sse.Event {
	d := sse.NewDecoder()
	var out []sse.Event
	for _, c := range chunks {
		out = append(out, d.Feed(c)...)
	}
	return out
}

var _ = Describe("Decoder", func() {
	It("decodes a whole stream in one chunk", func() {
		events := decodeAll([]byte(fixture))
		Expect(events).To(HaveLen(5))
		Expect(events[0].Type).To(Equal("connected"))
		Expect(events[1].Data).To(Equal(`{"message":"日志 ✓","level":"INFO"}`))
		Expect(events[2].Data).To(Equal(`{"message":"多行"}`))
		Expect(events[3].Type).To(Equal("heartbeat"))
		Expect(events[4].Data).To(Equal("not json"))
	})

	It("retains incomplete trailing data until the delimiter arrives", func() {
		d := sse.NewDecoder()
		Expect(d.Feed([]byte("event: log\ndata: {\"a\":"))).To(BeEmpty())
		Expect(d.Remainder()).To(Equal("event: log\ndata: {\"a\":"))

		Expect(d.Feed([]byte("1}\n"))).To(BeEmpty())

		events := d.Feed([]byte("\nevent: log"))
		Expect(events).To(HaveLen(1))
		Expect(events[0].Data).To(Equal(`{"a":1}`))
		Expect(d.Remainder()).To(Equal("event: log"))
	})

	It("skips blank keep-alive segments", func() {
		events := decodeAll([]byte("\n\n\n\nevent: log\ndata: x\n\n\n\n"))
		Expect(events).To(HaveLen(1))
		Expect(events[0].Type).To(Equal("log"))
	})

	It("skips segments holding only spaces or tabs", func() {
		events := decodeAll([]byte("  \n\n"), []byte("\t \n\nevent: log\ndata: y\n\n"))
		Expect(events).To(HaveLen(1))
		Expect(events[0].Data).To(Equal("y"))
	})

	It("discards its buffer on Reset", func() {
		d := sse.NewDecoder()
		d.Feed([]byte("event: log\ndata: partial"))
		d.Reset()
		Expect(d.Remainder()).To(BeEmpty())
		Expect(d.Feed([]byte("\n\n"))).To(BeEmpty())
	})

	Context("chunking invariance", func() {
		var whole []sse.Event
		var stream []byte

		BeforeEach(func() {
			stream = []byte(fixture)
			whole = decodeAll(stream)
		})

		It("yields the same events for every single split point", func() {
			for i := 0; i <= len(stream); i++ {
				got := decodeAll(stream[:i], stream[i:])
				Expect(got).To(Equal(whole), "split at byte %d", i)
			}
		})

		It("yields the same events for every pair of split points", func() {
			for i := 0; i <= len(stream); i++ {
				for j := i; j <= len(stream); j++ {
					got := decodeAll(stream[:i], stream[i:j], stream[j:])
					Expect(got).To(Equal(whole), "split at bytes %d and %d", i, j)
				}
			}
		})

		It("yields the same events when fed one byte at a time", func() {
			chunks := make([][]byte, len(stream))
			for i := range stream {
				chunks[i] = stream[i : i+1]
			}
			Expect(decodeAll(chunks...)).To(Equal(whole))
		})
	})
})
