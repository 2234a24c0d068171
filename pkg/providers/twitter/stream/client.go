package stream

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dghubble/oauth1"
	"go.ytsaurus.tech/library/go/core/log"
	"go.ytsaurus.tech/library/go/core/xerrors"
)

const (
	DefaultBaseURL      = "https://stream.twitter.com/1.1"
	DefaultStallTimeout = 90 * time.Second

	samplePath = "/statuses/sample.json"
	filterPath = "/statuses/filter.json"

	maxErrorBody = 4 << 10
)

var ErrShutdown = xerrors.New("stream client is shut down")

type Config struct {
	BaseURL           string
	ConsumerKey       string
	ConsumerSecret    string
	AccessToken       string
	AccessTokenSecret string
	// StallTimeout is how long the connection may stay silent, keep-alives included,
	// before it is dropped and reopened.
	StallTimeout time.Duration
	// HTTPClient is the transport under the OAuth signer, http.DefaultClient when nil.
	HTTPClient *http.Client
}

// Client consumes the streaming API. Messages of one connection are delivered
// to listeners sequentially on a single goroutine; broken connections are
// reopened with backoff until Shutdown.
type Client struct {
	cfg    Config
	logger log.Logger
	oauth  *oauth1.Config
	token  *oauth1.Token

	mu        sync.Mutex
	listeners []Listener
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	shutdown  bool
}

func NewClient(cfg Config, lgr log.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.StallTimeout <= 0 {
		cfg.StallTimeout = DefaultStallTimeout
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	return &Client{
		cfg:       cfg,
		logger:    lgr,
		oauth:     oauth1.NewConfig(cfg.ConsumerKey, cfg.ConsumerSecret),
		token:     oauth1.NewToken(cfg.AccessToken, cfg.AccessTokenSecret),
		mu:        sync.Mutex{},
		listeners: nil,
		cancel:    nil,
		wg:        sync.WaitGroup{},
		shutdown:  false,
	}
}

func (c *Client) AddListener(l Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, l)
}

// Sample opens statuses/sample. A running stream is replaced.
func (c *Client) Sample() error {
	return c.start(http.MethodGet, samplePath, url.Values{})
}

// Filter opens statuses/filter with the non-empty predicates of q. A running stream is replaced.
func (c *Client) Filter(q *FilterQuery) error {
	if q.IsEmpty() {
		return xerrors.New("filter query has no predicates")
	}
	return c.start(http.MethodPost, filterPath, q.Params())
}

// Shutdown closes the connection and waits for the delivery goroutine to exit.
func (c *Client) Shutdown() {
	c.mu.Lock()
	c.shutdown = true
	cancel := c.cancel
	c.cancel = nil
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	c.wg.Wait()
}

func (c *Client) start(method, path string, params url.Values) error {
	params.Set("stall_warnings", "true")
	params.Set("include_entities", "true")

	c.mu.Lock()
	if c.shutdown {
		c.mu.Unlock()
		return ErrShutdown
	}
	previous := c.cancel
	c.cancel = nil
	c.mu.Unlock()

	if previous != nil {
		previous()
		c.wg.Wait()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.shutdown {
		return ErrShutdown
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.wg.Add(1)
	go c.run(ctx, method, c.cfg.BaseURL+path, params)
	return nil
}

func (c *Client) snapshotListeners() []Listener {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Listener(nil), c.listeners...)
}

func (c *Client) run(ctx context.Context, method, endpoint string, params url.Values) {
	defer c.wg.Done()

	policy := newReconnectPolicy()
	for {
		listeners := c.snapshotListeners()
		err := c.consume(ctx, method, endpoint, params, listeners, policy)
		if ctx.Err() != nil {
			c.logger.Info("stream closed", log.String("endpoint", endpoint))
			return
		}
		if err == nil {
			err = xerrors.New("stream ended by server")
		}
		wait := policy.next(err)
		c.logger.Warn("stream connection lost, reconnecting",
			log.String("endpoint", endpoint), log.Duration("backoff", wait), log.Error(err))
		for _, l := range listeners {
			l.OnException(err)
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			c.logger.Info("stream closed", log.String("endpoint", endpoint))
			return
		case <-timer.C:
		}
	}
}

// consume holds one connection until it breaks or ctx is cancelled.
func (c *Client) consume(ctx context.Context, method, endpoint string, params url.Values, listeners []Listener, policy *reconnectPolicy) error {
	connCtx, cancelConn := context.WithCancel(ctx)
	defer cancelConn()

	resp, err := c.open(connCtx, method, endpoint, params)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	policy.reset()
	c.logger.Info("stream connected", log.String("endpoint", endpoint))
	for _, l := range listeners {
		if lc, ok := l.(ConnectionLifeCycleListener); ok {
			lc.OnConnect()
		}
	}
	defer func() {
		for _, l := range listeners {
			if lc, ok := l.(ConnectionLifeCycleListener); ok {
				lc.OnDisconnect()
			}
		}
	}()

	stalled := false
	var stalledMu sync.Mutex
	watchdog := time.AfterFunc(c.cfg.StallTimeout, func() {
		stalledMu.Lock()
		stalled = true
		stalledMu.Unlock()
		cancelConn()
	})
	defer watchdog.Stop()

	reader := bufio.NewReader(resp.Body)
	for {
		line, readErr := reader.ReadBytes('\n')
		watchdog.Reset(c.cfg.StallTimeout)
		if trimmed := trimLine(line); len(trimmed) > 0 {
			if err := c.dispatch(trimmed, listeners); err != nil {
				return err
			}
		}
		if readErr != nil {
			stalledMu.Lock()
			wasStalled := stalled
			stalledMu.Unlock()
			if wasStalled {
				return xerrors.Errorf("no data received for %v", c.cfg.StallTimeout)
			}
			if readErr == io.EOF {
				return nil
			}
			return xerrors.Errorf("stream read failed: %w", readErr)
		}
	}
}

func (c *Client) open(ctx context.Context, method, endpoint string, params url.Values) (*http.Response, error) {
	var req *http.Request
	var err error
	if method == http.MethodPost {
		req, err = http.NewRequestWithContext(ctx, method, endpoint, strings.NewReader(params.Encode()))
		if err == nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	} else {
		req, err = http.NewRequestWithContext(ctx, method, endpoint+"?"+params.Encode(), nil)
	}
	if err != nil {
		return nil, xerrors.Errorf("unable to build stream request: %w", err)
	}

	httpClient := c.oauth.Client(context.WithValue(ctx, oauth1.HTTPClient, c.cfg.HTTPClient), c.token)
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, xerrors.Errorf("unable to connect to %s: %w", endpoint, err)
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return resp, nil
}

// dispatch delivers one message. Only a disconnect notice ends the connection.
func (c *Client) dispatch(line []byte, listeners []Listener) error {
	msg, err := parseMessage(line)
	if err != nil {
		for _, l := range listeners {
			l.OnException(err)
		}
		return nil
	}
	switch msg.kind {
	case kindStatus:
		for _, l := range listeners {
			if err := l.OnStatus(msg.status); err != nil {
				l.OnException(xerrors.Errorf("listener failed on status %d: %w", msg.status.ID, err))
			}
		}
	case kindDelete:
		for _, l := range listeners {
			l.OnDeletionNotice(msg.deletion)
		}
	case kindScrubGeo:
		for _, l := range listeners {
			l.OnScrubGeo(msg.scrubGeo)
		}
	case kindLimit:
		for _, l := range listeners {
			l.OnTrackLimitationNotice(msg.limit)
		}
	case kindWarning:
		for _, l := range listeners {
			l.OnStallWarning(msg.warning)
		}
	case kindDisconnect:
		return &DisconnectError{Notice: *msg.disconnect}
	default:
		c.logger.Debug("skipping unknown stream message", log.Int("bytes", len(line)))
	}
	return nil
}
