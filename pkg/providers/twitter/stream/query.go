package stream

import (
	"net/url"
	"strconv"
	"strings"
)

// Location is one coordinate pair of a bounding box corner, kept in the order it was configured.
type Location [2]float64

// FilterQuery holds the predicates of a filter request. Empty fields are not sent.
type FilterQuery struct {
	Track     []string   `json:"track,omitempty"`
	Language  []string   `json:"language,omitempty"`
	Follow    []int64    `json:"follow,omitempty"`
	Locations []Location `json:"locations,omitempty"`
}

func (q *FilterQuery) IsEmpty() bool {
	return q == nil || (len(q.Track) == 0 && len(q.Language) == 0 && len(q.Follow) == 0 && len(q.Locations) == 0)
}

// Params renders the query as form values.
func (q *FilterQuery) Params() url.Values {
	params := url.Values{}
	if q == nil {
		return params
	}
	if len(q.Track) > 0 {
		params.Set("track", strings.Join(q.Track, ","))
	}
	if len(q.Language) > 0 {
		params.Set("language", strings.Join(q.Language, ","))
	}
	if len(q.Follow) > 0 {
		ids := make([]string, 0, len(q.Follow))
		for _, id := range q.Follow {
			ids = append(ids, strconv.FormatInt(id, 10))
		}
		params.Set("follow", strings.Join(ids, ","))
	}
	if len(q.Locations) > 0 {
		coords := make([]string, 0, 2*len(q.Locations))
		for _, loc := range q.Locations {
			coords = append(coords,
				strconv.FormatFloat(loc[0], 'f', -1, 64),
				strconv.FormatFloat(loc[1], 'f', -1, 64),
			)
		}
		params.Set("locations", strings.Join(coords, ","))
	}
	return params
}
