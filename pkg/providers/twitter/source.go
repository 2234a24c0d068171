package twitter

import (
	"fmt"
	"sync"

	"github.com/transferia/tweetstream/internal/logger/batching_logger"
	"github.com/transferia/tweetstream/library/go/core/metrics"
	"github.com/transferia/tweetstream/pkg/abstract"
	"github.com/transferia/tweetstream/pkg/errors"
	"github.com/transferia/tweetstream/pkg/errors/categories"
	"github.com/transferia/tweetstream/pkg/stats"
	"go.ytsaurus.tech/library/go/core/log"
	"go.ytsaurus.tech/library/go/core/xerrors"
)

type State int

const (
	StateUnconfigured State = iota
	StateConfigured
	StateRunning
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateUnconfigured:
		return "unconfigured"
	case StateConfigured:
		return "configured"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

var _ abstract.EventDrivenSource = (*Source)(nil)

// Source subscribes to the twitter stream and forwards statuses into a sink.
// Configure, Start and Stop are expected from one control goroutine.
type Source struct {
	name      string
	sink      abstract.Sink
	logger    log.Logger
	registry  metrics.Registry
	newClient ClientFactory

	mu            sync.Mutex
	state         State
	params        *TwitterSource
	filter        *FilterSpec
	client        StreamClient
	counter       *stats.SourceCounter
	listener      *Listener
	listenerLog   *batching_logger.BatchingLogger
	batchingOpts  *batching_logger.BatchingOptions
	staticHeaders map[string]string
}

type SourceOption func(*Source)

// WithClientFactory replaces the stream client constructor, mostly for tests.
func WithClientFactory(f ClientFactory) SourceOption {
	return func(s *Source) {
		s.newClient = f
	}
}

// WithListenerLogThrottling sets how bursts of listener warnings are collapsed.
func WithListenerLogThrottling(opts *batching_logger.BatchingOptions) SourceOption {
	return func(s *Source) {
		s.batchingOpts = opts
	}
}

// WithHeaders adds static headers to every event.
func WithHeaders(headers map[string]string) SourceOption {
	return func(s *Source) {
		s.staticHeaders = headers
	}
}

// NewSource creates an unconfigured source. registry may be nil.
func NewSource(name string, sink abstract.Sink, lgr log.Logger, registry metrics.Registry, opts ...SourceOption) *Source {
	s := &Source{
		name:          name,
		sink:          sink,
		logger:        log.With(lgr, log.String("source", name)),
		registry:      registry,
		newClient:     NewStreamClient,
		mu:            sync.Mutex{},
		state:         StateUnconfigured,
		params:        nil,
		filter:        nil,
		client:        nil,
		counter:       nil,
		listener:      nil,
		listenerLog:   nil,
		batchingOpts:  nil,
		staticHeaders: nil,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Configure parses options, builds the filter and a new unconnected stream client.
// The counter is created on the first call and kept by later ones.
func (s *Source) Configure(options map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateRunning || s.state == StateStopped {
		return xerrors.Errorf("cannot configure source %s in state %s", s.name, s.state)
	}

	params, err := decodeOptions(options)
	if err != nil {
		return xerrors.Errorf("unable to configure source %s: %w", s.name, err)
	}
	filter, err := params.FilterSpec()
	if err != nil {
		return xerrors.Errorf("unable to configure source %s: %w", s.name, err)
	}

	if s.client != nil {
		s.client.Shutdown()
	}
	s.releaseListener()
	s.client = s.newClient(params.StreamConfig(), s.logger)
	s.params = params
	s.filter = filter

	if s.counter == nil {
		s.counter = stats.NewSourceCounter(s.name)
		if s.registry != nil {
			s.counter.Register(s.registry)
		}
	}

	s.state = StateConfigured
	s.logger.Info("twitter source configured",
		log.Any("params", params),
		log.String("mode", string(filter.Mode())),
	)
	return nil
}

// Start opens the subscription in the mode the filter implies. The listener is
// registered on the client once, a Start retried after a failure reuses it.
func (s *Source) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateConfigured {
		return xerrors.Errorf("cannot start source %s in state %s", s.name, s.state)
	}

	if s.listener == nil {
		s.listenerLog = batching_logger.NewBatchingLogger(s.logger, s.batchingOpts)
		s.listener = NewListener(s.sink, s.counter, s.params.RejectPolicy, s.staticHeaders, s.listenerLog)
		s.client.AddListener(s.listener)
	}

	mode := s.filter.Mode()
	var err error
	switch mode {
	case SubscriptionModeSample:
		err = s.client.Sample()
	case SubscriptionModeFilter:
		err = s.client.Filter(s.filter.Query())
	}
	if err != nil {
		return errors.CategorizedErrorf(categories.Source, "unable to open %s stream: %w", mode, err)
	}

	s.counter.Start()
	s.state = StateRunning
	s.logger.Info("twitter source started", log.String("mode", string(mode)))
	return nil
}

// Stop shuts the stream client down and freezes the counter. Repeated calls are no-ops.
func (s *Source) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateStopped {
		return
	}
	if s.client != nil {
		s.client.Shutdown()
	}
	if s.counter != nil {
		s.counter.Stop()
	}
	s.releaseListener()
	s.state = StateStopped

	if s.counter != nil {
		s.logger.Info("twitter source stopped", log.String("metrics", s.counter.Snapshot().String()))
	} else {
		s.logger.Info("twitter source stopped before it was configured")
	}
}

// releaseListener forgets the listener of the current client, the client is shut down by the caller.
func (s *Source) releaseListener() {
	if s.listenerLog != nil {
		s.listenerLog.Close()
	}
	s.listener = nil
	s.listenerLog = nil
}

func (s *Source) Name() string {
	return s.name
}

func (s *Source) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Counter is nil until the first successful Configure.
func (s *Source) Counter() *stats.SourceCounter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counter
}

// FilterSpec is nil until the first successful Configure.
func (s *Source) FilterSpec() *FilterSpec {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}
