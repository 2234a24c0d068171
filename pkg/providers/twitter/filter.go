package twitter

import (
	"slices"
	"strconv"
	"strings"

	"github.com/transferia/tweetstream/pkg/abstract"
	"github.com/transferia/tweetstream/pkg/errors"
	"github.com/transferia/tweetstream/pkg/errors/categories"
	"github.com/transferia/tweetstream/pkg/errors/coded"
	"github.com/transferia/tweetstream/pkg/errors/codes"
	"github.com/transferia/tweetstream/pkg/providers/twitter/stream"
)

type SubscriptionMode string

const (
	SubscriptionModeSample SubscriptionMode = "sample"
	SubscriptionModeFilter SubscriptionMode = "filter"
)

// FilterSpec is the validated set of subscription predicates. It is immutable,
// accessors return copies.
type FilterSpec struct {
	keywords  []string
	languages []string
	follow    []int64
	locations []stream.Location
}

// NewFilterSpec parses comma separated configuration values. Blank inputs give
// empty predicates. Malformed follow ids or locations are fatal configuration errors.
func NewFilterSpec(keywords, languages, follow, locations string) (*FilterSpec, error) {
	followIDs, err := parseFollow(follow)
	if err != nil {
		return nil, err
	}
	pairs, err := parseLocations(locations)
	if err != nil {
		return nil, err
	}
	return &FilterSpec{
		keywords:  splitTrimmed(keywords),
		languages: splitTrimmed(languages),
		follow:    followIDs,
		locations: pairs,
	}, nil
}

func (f *FilterSpec) Keywords() []string           { return slices.Clone(f.keywords) }
func (f *FilterSpec) Languages() []string          { return slices.Clone(f.languages) }
func (f *FilterSpec) Follow() []int64              { return slices.Clone(f.follow) }
func (f *FilterSpec) Locations() []stream.Location { return slices.Clone(f.locations) }

func (f *FilterSpec) IsEmpty() bool {
	return len(f.keywords) == 0 && len(f.languages) == 0 && len(f.follow) == 0 && len(f.locations) == 0
}

// Mode is sample when there is nothing to filter on.
func (f *FilterSpec) Mode() SubscriptionMode {
	if f.IsEmpty() {
		return SubscriptionModeSample
	}
	return SubscriptionModeFilter
}

// Query carries only the non-empty predicates.
func (f *FilterSpec) Query() *stream.FilterQuery {
	q := new(stream.FilterQuery)
	if len(f.keywords) > 0 {
		q.Track = f.Keywords()
	}
	if len(f.languages) > 0 {
		q.Language = f.Languages()
	}
	if len(f.follow) > 0 {
		q.Follow = f.Follow()
	}
	if len(f.locations) > 0 {
		q.Locations = f.Locations()
	}
	return q
}

func splitTrimmed(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	res := make([]string, 0, len(parts))
	for _, part := range parts {
		res = append(res, strings.TrimSpace(part))
	}
	return res
}

func parseFollow(raw string) ([]int64, error) {
	tokens := splitTrimmed(raw)
	if len(tokens) == 0 {
		return nil, nil
	}
	ids := make([]int64, 0, len(tokens))
	for _, token := range tokens {
		id, err := strconv.ParseInt(token, 10, 64)
		if err != nil {
			return nil, configurationError(codes.TwitterInvalidFollow, "follow id %q is not a number: %w", token, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func parseLocations(raw string) ([]stream.Location, error) {
	tokens := splitTrimmed(raw)
	if len(tokens) == 0 {
		return nil, nil
	}
	if len(tokens)%2 != 0 {
		return nil, configurationError(codes.TwitterInvalidLocations, "locations need coordinate pairs, got %d values", len(tokens))
	}
	pairs := make([]stream.Location, 0, len(tokens)/2)
	for i := 0; i < len(tokens); i += 2 {
		var loc stream.Location
		for j := range loc {
			value, err := strconv.ParseFloat(tokens[i+j], 64)
			if err != nil {
				return nil, configurationError(codes.TwitterInvalidLocations, "location value %q is not a number: %w", tokens[i+j], err)
			}
			loc[j] = value
		}
		pairs = append(pairs, loc)
	}
	return pairs, nil
}

func configurationError(code coded.Code, format string, args ...any) error {
	return abstract.NewFatalError(
		errors.CategorizedErrorf(categories.Configuration, "%w", coded.Errorf(code, format, args...)),
	)
}
