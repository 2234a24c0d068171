package twitter

import (
	"strings"
	"time"

	"github.com/transferia/tweetstream/internal/logger"
	"github.com/transferia/tweetstream/pkg/abstract"
	"github.com/transferia/tweetstream/pkg/abstract/model"
	"github.com/transferia/tweetstream/pkg/errors"
	"github.com/transferia/tweetstream/pkg/errors/categories"
	"github.com/transferia/tweetstream/pkg/errors/coded"
	"github.com/transferia/tweetstream/pkg/errors/codes"
	"github.com/transferia/tweetstream/pkg/providers/twitter/stream"
	"go.uber.org/zap/zapcore"
	"go.ytsaurus.tech/library/go/core/xerrors"
)

// RejectPolicy says what the listener does with an event the sink has no room for.
type RejectPolicy string

const (
	// RejectPolicyPropagate returns the capacity error to the stream client.
	RejectPolicyPropagate RejectPolicy = "propagate"
	// RejectPolicyDrop counts and logs the rejection and carries on.
	RejectPolicyDrop RejectPolicy = "drop"
)

type TwitterSource struct {
	ConsumerKey       string `mapstructure:"consumerKey" log:"true"`
	ConsumerSecret    string `mapstructure:"consumerSecret"`
	AccessToken       string `mapstructure:"accessToken" log:"true"`
	AccessTokenSecret string `mapstructure:"accessTokenSecret"`

	Keywords  string `mapstructure:"keywords" log:"true"`
	Language  string `mapstructure:"language" log:"true"`
	Follow    string `mapstructure:"follow" log:"true"`
	Locations string `mapstructure:"locations" log:"true"`

	RejectPolicy RejectPolicy  `mapstructure:"rejectPolicy" log:"true"`
	StreamURL    string        `mapstructure:"streamUrl" log:"true"`
	StallTimeout time.Duration `mapstructure:"stallTimeout" log:"true"`
}

var _ model.Source = (*TwitterSource)(nil)

func (s *TwitterSource) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	return logger.MarshalSanitizedObject(s, enc)
}

func (s *TwitterSource) WithDefaults() {
	if s.RejectPolicy == "" {
		s.RejectPolicy = RejectPolicyPropagate
	}
	if s.StreamURL == "" {
		s.StreamURL = stream.DefaultBaseURL
	}
	s.StreamURL = strings.TrimSuffix(s.StreamURL, "/")
	if s.StallTimeout == 0 {
		s.StallTimeout = stream.DefaultStallTimeout
	}
}

func (TwitterSource) IsSource() {}

func (s *TwitterSource) GetProviderType() abstract.ProviderType {
	return ProviderType
}

func (s *TwitterSource) Validate() error {
	credentials := []struct {
		name  string
		value string
	}{
		{name: "consumerKey", value: s.ConsumerKey},
		{name: "consumerSecret", value: s.ConsumerSecret},
		{name: "accessToken", value: s.AccessToken},
		{name: "accessTokenSecret", value: s.AccessTokenSecret},
	}
	var missing []string
	for _, c := range credentials {
		if strings.TrimSpace(c.value) == "" {
			missing = append(missing, c.name)
		}
	}
	if len(missing) > 0 {
		return configurationError(codes.TwitterMissingCredentials, "missing credentials: %s", strings.Join(missing, ", "))
	}
	switch s.RejectPolicy {
	case RejectPolicyPropagate, RejectPolicyDrop:
	default:
		return configurationError(codes.TwitterInvalidOption, "unknown rejectPolicy %q, expected %q or %q", s.RejectPolicy, RejectPolicyPropagate, RejectPolicyDrop)
	}
	if s.StallTimeout < 0 {
		return configurationError(codes.TwitterInvalidOption, "stallTimeout must be positive, got %v", s.StallTimeout)
	}
	return nil
}

// FilterSpec parses the predicate options.
func (s *TwitterSource) FilterSpec() (*FilterSpec, error) {
	return NewFilterSpec(s.Keywords, s.Language, s.Follow, s.Locations)
}

func (s *TwitterSource) StreamConfig() stream.Config {
	return stream.Config{
		BaseURL:           s.StreamURL,
		ConsumerKey:       s.ConsumerKey,
		ConsumerSecret:    s.ConsumerSecret,
		AccessToken:       s.AccessToken,
		AccessTokenSecret: s.AccessTokenSecret,
		StallTimeout:      s.StallTimeout,
		HTTPClient:        nil,
	}
}

// decodeOptions is the options-map form of model.NewSource with a coded error on failure.
func decodeOptions(options map[string]string) (*TwitterSource, error) {
	src, err := model.NewSource(ProviderType, options)
	if err != nil {
		var codedErr coded.CodedError
		if xerrors.As(err, &codedErr) {
			return nil, err
		}
		return nil, abstract.NewFatalError(errors.CategorizedErrorf(categories.Configuration,
			"%w", coded.Errorf(codes.TwitterInvalidOption, "invalid twitter options: %w", err)))
	}
	return src.(*TwitterSource), nil
}
