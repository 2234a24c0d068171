package twitter

import (
	"maps"
	"strconv"

	"github.com/transferia/tweetstream/pkg/abstract"
	"github.com/transferia/tweetstream/pkg/providers/twitter/stream"
)

// EventFromStatus wraps the raw status bytes into an event. headers is copied,
// every event gets its own map with the creation time in Unix millis.
func EventFromStatus(status *stream.Status, headers map[string]string) *abstract.Event {
	eventHeaders := make(map[string]string, len(headers)+1)
	maps.Copy(eventHeaders, headers)
	eventHeaders[abstract.HeaderTimestamp] = strconv.FormatInt(status.CreatedAt.UnixMilli(), 10)
	return abstract.NewEvent(status.Raw, eventHeaders)
}
