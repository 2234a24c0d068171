package stream

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/transferia/tweetstream/internal/logger"
	"go.uber.org/atomic"
	"go.ytsaurus.tech/library/go/core/xerrors"
)

type recordingListener struct {
	mu          sync.Mutex
	statuses    []*Status
	deletions   []*StatusDeletionNotice
	scrubs      []*ScrubGeoNotice
	limits      []int64
	warnings    []*StallWarning
	exceptions  []error
	connects    int
	disconnects int

	statusErr error
}

func (l *recordingListener) OnStatus(status *Status) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.statuses = append(l.statuses, status)
	return l.statusErr
}

func (l *recordingListener) OnDeletionNotice(notice *StatusDeletionNotice) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.deletions = append(l.deletions, notice)
}

func (l *recordingListener) OnScrubGeo(notice *ScrubGeoNotice) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.scrubs = append(l.scrubs, notice)
}

func (l *recordingListener) OnTrackLimitationNotice(limited int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.limits = append(l.limits, limited)
}

func (l *recordingListener) OnStallWarning(warning *StallWarning) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warnings = append(l.warnings, warning)
}

func (l *recordingListener) OnException(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.exceptions = append(l.exceptions, err)
}

func (l *recordingListener) OnConnect() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.connects++
}

func (l *recordingListener) OnDisconnect() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.disconnects++
}

func (l *recordingListener) locked(fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn()
}

// streamingHandler writes lines, flushes and then holds the connection until the client leaves.
func streamingHandler(lines ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		for _, line := range lines {
			_, _ = fmt.Fprint(w, line+"\r\n")
		}
		w.(http.Flusher).Flush()
		<-r.Context().Done()
	}
}

func newTestClient(url string) *Client {
	return NewClient(Config{
		BaseURL:           url,
		ConsumerKey:       "ck",
		ConsumerSecret:    "cs",
		AccessToken:       "at",
		AccessTokenSecret: "as",
	}, logger.Log)
}

func TestSampleDeliversAllMessageKinds(t *testing.T) {
	var path, method, auth string
	var pathMu sync.Mutex
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pathMu.Lock()
		path, method, auth = r.URL.Path, r.Method, r.Header.Get("Authorization")
		pathMu.Unlock()
		streamingHandler(
			`{"id":1,"text":"hello","created_at":"Thu Jan 01 00:00:01 +0000 1970"}`,
			``,
			`{"delete":{"status":{"id":7,"user_id":8}}}`,
			`{"scrub_geo":{"user_id":3,"up_to_status_id":9}}`,
			`{"limit":{"track":42}}`,
			`{"warning":{"code":"FALLING_BEHIND","message":"queue is 60% full","percent_full":60}}`,
			`{"friends":[1,2,3]}`,
		)(w, r)
	}))
	defer server.Close()

	listener := &recordingListener{}
	client := newTestClient(server.URL)
	client.AddListener(listener)
	require.NoError(t, client.Sample())

	require.Eventually(t, func() bool {
		done := false
		listener.locked(func() { done = len(listener.warnings) == 1 })
		return done
	}, 5*time.Second, 10*time.Millisecond)
	client.Shutdown()

	pathMu.Lock()
	require.Equal(t, samplePath, path)
	require.Equal(t, http.MethodGet, method)
	require.True(t, strings.HasPrefix(auth, "OAuth "))
	pathMu.Unlock()

	listener.locked(func() {
		require.Len(t, listener.statuses, 1)
		require.Equal(t, int64(1), listener.statuses[0].ID)
		require.Equal(t, int64(1000), listener.statuses[0].CreatedAt.UnixMilli())
		require.Equal(t, `{"id":1,"text":"hello","created_at":"Thu Jan 01 00:00:01 +0000 1970"}`, string(listener.statuses[0].Raw))
		require.Equal(t, []*StatusDeletionNotice{{StatusID: 7, UserID: 8}}, listener.deletions)
		require.Equal(t, []*ScrubGeoNotice{{UserID: 3, UpToStatusID: 9}}, listener.scrubs)
		require.Equal(t, []int64{42}, listener.limits)
		require.Equal(t, "FALLING_BEHIND", listener.warnings[0].Code)
		require.Equal(t, 60, listener.warnings[0].PercentFull)
		require.Empty(t, listener.exceptions)
		require.Equal(t, 1, listener.connects)
		require.Equal(t, 1, listener.disconnects)
	})
}

func TestFilterSendsOnlyNonEmptyPredicates(t *testing.T) {
	forms := make(chan map[string][]string, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		require.Equal(t, filterPath, r.URL.Path)
		select {
		case forms <- r.PostForm:
		default:
		}
		streamingHandler()(w, r)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	client.AddListener(&recordingListener{})
	require.NoError(t, client.Filter(&FilterQuery{Track: []string{"foo", "bar"}, Language: []string{"en"}}))
	defer client.Shutdown()

	select {
	case form := <-forms:
		require.Equal(t, []string{"foo,bar"}, form["track"])
		require.Equal(t, []string{"en"}, form["language"])
		require.Equal(t, []string{"true"}, form["stall_warnings"])
		require.NotContains(t, form, "follow")
		require.NotContains(t, form, "locations")
	case <-time.After(5 * time.Second):
		require.Fail(t, "filter request was not received")
	}
}

func TestFilterRejectsEmptyQuery(t *testing.T) {
	client := newTestClient("http://127.0.0.1:1")
	require.Error(t, client.Filter(&FilterQuery{}))
}

func TestListenerErrorIsReportedAsException(t *testing.T) {
	server := httptest.NewServer(streamingHandler(
		`{"id":5,"text":"x","created_at":"Thu Jan 01 00:00:01 +0000 1970"}`,
	))
	defer server.Close()

	sinkErr := xerrors.New("channel is full")
	listener := &recordingListener{statusErr: sinkErr}
	client := newTestClient(server.URL)
	client.AddListener(listener)
	require.NoError(t, client.Sample())

	require.Eventually(t, func() bool {
		done := false
		listener.locked(func() { done = len(listener.exceptions) == 1 })
		return done
	}, 5*time.Second, 10*time.Millisecond)
	client.Shutdown()

	listener.locked(func() {
		require.True(t, xerrors.Is(listener.exceptions[0], sinkErr))
	})
}

func TestHTTPErrorIsReportedAndShutdownInterruptsBackoff(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
	}))
	defer server.Close()

	listener := &recordingListener{}
	client := newTestClient(server.URL)
	client.AddListener(listener)
	require.NoError(t, client.Sample())

	require.Eventually(t, func() bool {
		done := false
		listener.locked(func() { done = len(listener.exceptions) > 0 })
		return done
	}, 5*time.Second, 10*time.Millisecond)

	shutdownDone := make(chan struct{})
	go func() {
		client.Shutdown()
		close(shutdownDone)
	}()
	select {
	case <-shutdownDone:
	case <-time.After(2 * time.Second):
		require.Fail(t, "shutdown did not interrupt the reconnect backoff")
	}

	listener.locked(func() {
		var httpErr *HTTPError
		require.True(t, xerrors.As(listener.exceptions[0], &httpErr))
		require.Equal(t, http.StatusUnauthorized, httpErr.StatusCode)
		require.Zero(t, listener.connects)
	})
	require.ErrorIs(t, client.Sample(), ErrShutdown)
}

func TestStalledConnectionIsReopened(t *testing.T) {
	connections := atomic.NewInt32(0)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		connections.Inc()
		streamingHandler()(w, r)
	}))
	defer server.Close()

	listener := &recordingListener{}
	client := NewClient(Config{BaseURL: server.URL, StallTimeout: 50 * time.Millisecond}, logger.Log)
	client.AddListener(listener)
	require.NoError(t, client.Sample())
	defer client.Shutdown()

	require.Eventually(t, func() bool { return connections.Load() >= 2 }, 5*time.Second, 10*time.Millisecond)
	listener.locked(func() {
		require.NotEmpty(t, listener.exceptions)
		require.Contains(t, listener.exceptions[0].Error(), "no data received")
	})
}

func TestDisconnectNoticeEndsConnection(t *testing.T) {
	connections := atomic.NewInt32(0)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		connections.Inc()
		streamingHandler(`{"disconnect":{"code":7,"stream_name":"sample","reason":"admin logout"}}`)(w, r)
	}))
	defer server.Close()

	listener := &recordingListener{}
	client := newTestClient(server.URL)
	client.AddListener(listener)
	require.NoError(t, client.Sample())
	defer client.Shutdown()

	require.Eventually(t, func() bool {
		done := false
		listener.locked(func() { done = len(listener.exceptions) > 0 })
		return done
	}, 5*time.Second, 10*time.Millisecond)

	listener.locked(func() {
		var disconnect *DisconnectError
		require.True(t, xerrors.As(listener.exceptions[0], &disconnect))
		require.Equal(t, 7, disconnect.Notice.Code)
		require.Equal(t, "admin logout", disconnect.Notice.Reason)
	})
}
