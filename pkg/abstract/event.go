package abstract

import (
	"strconv"
	"time"
)

// HeaderTimestamp holds the event creation time in Unix milliseconds.
const HeaderTimestamp = "timestamp"

// Event is the unit handed to the downstream channel: an opaque body plus string headers.
type Event struct {
	Body    []byte
	Headers map[string]string
}

func NewEvent(body []byte, headers map[string]string) *Event {
	if headers == nil {
		headers = map[string]string{}
	}
	return &Event{
		Body:    body,
		Headers: headers,
	}
}

// Timestamp parses HeaderTimestamp. ok is false when the header is absent or malformed.
func (e *Event) Timestamp() (ts time.Time, ok bool) {
	raw, present := e.Headers[HeaderTimestamp]
	if !present {
		return time.Time{}, false
	}
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.UnixMilli(ms), true
}

// Size is an approximation of the in-memory footprint used for batching and logs.
func (e *Event) Size() uint64 {
	size := uint64(len(e.Body))
	for k, v := range e.Headers {
		size += uint64(len(k) + len(v))
	}
	return size
}

func EventsSize(events []*Event) uint64 {
	var total uint64
	for _, e := range events {
		total += e.Size()
	}
	return total
}
