package middlewares

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/transferia/tweetstream/library/go/core/metrics/prometheus"
	"github.com/transferia/tweetstream/pkg/abstract"
	"github.com/transferia/tweetstream/pkg/errors"
	"github.com/transferia/tweetstream/pkg/errors/categories"
	"go.uber.org/mock/gomock"
	"go.ytsaurus.tech/library/go/core/xerrors"
)

func TestErrorTracker(t *testing.T) {
	ctrl := gomock.NewController(t)
	registry := prometheus.NewRegistry(prometheus.NewRegistryOpts())

	target := abstract.NewMockSinker(ctrl)
	tracked := ErrorTracker(registry)(target)

	batch := []*abstract.Event{abstract.NewEvent([]byte("{}"), nil)}
	pushErr := xerrors.New("broker unavailable")

	gomock.InOrder(
		target.EXPECT().Push(batch).Return(nil),
		target.EXPECT().Push(batch).Return(pushErr),
		target.EXPECT().Close().Return(nil),
	)

	require.NoError(t, tracked.Push(batch))

	err := tracked.Push(batch)
	require.Error(t, err)
	require.True(t, xerrors.Is(err, pushErr))
	require.Equal(t, categories.Target, errors.CategoryOf(err))

	require.NoError(t, tracked.Close())

	labels := map[string]string{"component": "middleware_error_tracker"}
	successes, ok := registry.FindValue("middleware_error_tracker_successes", labels)
	require.True(t, ok)
	require.Equal(t, 1.0, successes)
	failures, ok := registry.FindValue("middleware_error_tracker_failures", labels)
	require.True(t, ok)
	require.Equal(t, 1.0, failures)
}
