package abstract

// how to generate mocks:
// > mockgen -source ./sink.go -package abstract -destination ./sink_mock.go

// Sink accepts one event at a time. Forward returns an error wrapping
// ErrChannelFull when the sink has no room for the event.
type Sink interface {
	Forward(event *Event) error
}

// Sinker is a batch target: a place events end up after the channel.
type Sinker interface {
	Push(events []*Event) error
	Close() error
}

// EventDrivenSource is configured from string options and pushes events into
// a Sink on its own goroutines between Start and Stop.
type EventDrivenSource interface {
	Configure(options map[string]string) error
	Start() error
	Stop()
}
