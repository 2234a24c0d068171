package stdout

import (
	"bufio"
	"io"
	"sync"

	"github.com/goccy/go-json"
	"github.com/transferia/tweetstream/pkg/abstract"
	"go.uber.org/atomic"
	"go.ytsaurus.tech/library/go/core/log"
	"go.ytsaurus.tech/library/go/core/xerrors"
)

type envelope struct {
	Headers map[string]string `json:"headers"`
	Body    json.RawMessage   `json:"body,omitempty"`
	Text    string            `json:"text,omitempty"`
}

// Sinker prints events one per line. A nil writer only counts them.
type Sinker struct {
	logger log.Logger
	config *StdoutDestination

	mu  sync.Mutex
	out *bufio.Writer

	pushed atomic.Uint64
}

var _ abstract.Sinker = (*Sinker)(nil)

func NewSinker(lgr log.Logger, cfg *StdoutDestination, w io.Writer) *Sinker {
	s := &Sinker{
		logger: lgr,
		config: cfg,
		mu:     sync.Mutex{},
		out:    nil,
		pushed: atomic.Uint64{},
	}
	if w != nil {
		s.out = bufio.NewWriter(w)
	}
	return s
}

func (s *Sinker) Push(input []*abstract.Event) error {
	total := s.pushed.Add(uint64(len(input)))
	if s.out == nil || !s.config.ShowData {
		s.logger.Info("events received",
			log.Int("batch", len(input)),
			log.UInt64("bytes", abstract.EventsSize(input)),
			log.UInt64("total", total))
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, event := range input {
		line, err := s.render(event)
		if err != nil {
			return xerrors.Errorf("unable to render event: %w", err)
		}
		if _, err := s.out.Write(line); err != nil {
			return xerrors.Errorf("unable to write event: %w", err)
		}
		if err := s.out.WriteByte('\n'); err != nil {
			return xerrors.Errorf("unable to write event: %w", err)
		}
	}
	if err := s.out.Flush(); err != nil {
		return xerrors.Errorf("unable to flush: %w", err)
	}
	return nil
}

func (s *Sinker) render(event *abstract.Event) ([]byte, error) {
	if s.config.Format == FormatRaw {
		return event.Body, nil
	}
	env := envelope{Headers: event.Headers, Body: nil, Text: ""}
	if json.Valid(event.Body) {
		env.Body = event.Body
	} else {
		env.Text = string(event.Body)
	}
	return json.Marshal(env)
}

func (s *Sinker) Pushed() uint64 {
	return s.pushed.Load()
}

func (s *Sinker) Close() error {
	s.logger.Info("stdout sink closed", log.UInt64("events", s.pushed.Load()))
	return nil
}
