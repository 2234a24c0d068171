package abstract

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.ytsaurus.tech/library/go/core/xerrors"
)

func TestChannelFull(t *testing.T) {
	err := xerrors.Errorf("unable to put event: %w", ErrChannelFull)
	require.True(t, IsChannelFull(err))
	require.False(t, IsChannelFull(xerrors.New("other")))
	require.False(t, IsChannelFull(nil))
}

func TestFatalError(t *testing.T) {
	base := xerrors.New("bad config")
	err := xerrors.Errorf("configure: %w", NewFatalError(base))
	require.True(t, IsFatal(err))
	require.True(t, xerrors.Is(err, base))
	require.False(t, IsFatal(base))
	require.Nil(t, NewFatalError(nil))
}

func TestEventTimestamp(t *testing.T) {
	e := NewEvent([]byte(`{"id":1}`), map[string]string{HeaderTimestamp: "1000"})
	ts, ok := e.Timestamp()
	require.True(t, ok)
	require.Equal(t, int64(1000), ts.UnixMilli())

	_, ok = NewEvent(nil, nil).Timestamp()
	require.False(t, ok)

	_, ok = NewEvent(nil, map[string]string{HeaderTimestamp: "soon"}).Timestamp()
	require.False(t, ok)
}

func TestEventSize(t *testing.T) {
	e := NewEvent([]byte("12345"), map[string]string{"ab": "cd"})
	require.Equal(t, uint64(9), e.Size())
	require.Equal(t, uint64(18), EventsSize([]*Event{e, e}))
}

func TestProviderName(t *testing.T) {
	typ := ProviderType("test-provider")
	require.Equal(t, "test-provider", typ.Name())
	RegisterProviderName(typ, "Test")
	require.Equal(t, "Test", typ.Name())
}
