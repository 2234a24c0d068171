package stream

import (
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.ytsaurus.tech/library/go/core/xerrors"
)

// HTTPError is a non-200 answer of the streaming endpoint.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("stream endpoint answered %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Body)
}

func (e *HTTPError) rateLimited() bool {
	return e.StatusCode == 420 || e.StatusCode == http.StatusTooManyRequests
}

// DisconnectError is reported when the server sends a disconnect notice.
type DisconnectError struct {
	Notice DisconnectNotice
}

func (e *DisconnectError) Error() string {
	return fmt.Sprintf("stream %q disconnected by server, code %d: %s", e.Notice.StreamName, e.Notice.Code, e.Notice.Reason)
}

func newExponential(initial, maxInterval time.Duration) *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = initial
	b.MaxInterval = maxInterval
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxElapsedTime = 0
	b.Reset()
	return b
}

// reconnectPolicy keeps a separate exponential schedule per failure class:
// network errors start at 250ms, HTTP errors at 5s, rate limiting at a minute.
type reconnectPolicy struct {
	network     backoff.BackOff
	http        backoff.BackOff
	rateLimited backoff.BackOff
}

func newReconnectPolicy() *reconnectPolicy {
	return &reconnectPolicy{
		network:     newExponential(250*time.Millisecond, 16*time.Second),
		http:        newExponential(5*time.Second, 320*time.Second),
		rateLimited: newExponential(time.Minute, 16*time.Minute),
	}
}

func (p *reconnectPolicy) next(err error) time.Duration {
	var httpErr *HTTPError
	if xerrors.As(err, &httpErr) {
		if httpErr.rateLimited() {
			return p.rateLimited.NextBackOff()
		}
		return p.http.NextBackOff()
	}
	return p.network.NextBackOff()
}

// reset is called once a connection is established.
func (p *reconnectPolicy) reset() {
	p.network.Reset()
	p.http.Reset()
	p.rateLimited.Reset()
}
