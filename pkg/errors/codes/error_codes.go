package codes

import "github.com/transferia/tweetstream/pkg/errors/coded"

var (
	// generic
	NetworkUnreachable = coded.Register("generic", "network", "unreachable")
	InvalidCredential  = coded.Register("generic", "invalid_credentials")
	Dial               = coded.Register("generic", "dial_error")

	// twitter
	TwitterMissingCredentials = coded.Register("twitter", "missing_credentials")
	TwitterInvalidFollow      = coded.Register("twitter", "invalid_follow")
	TwitterInvalidLocations   = coded.Register("twitter", "invalid_locations")
	TwitterInvalidOption      = coded.Register("twitter", "invalid_option")

	// channel
	ChannelFull = coded.Register("channel", "full")

	// other
	Unspecified = coded.Register("unspecified")
)

func init() {
	coded.RegisterShortDescription(TwitterMissingCredentials, "one of consumerKey, consumerSecret, accessToken, accessTokenSecret is empty")
	coded.RegisterShortDescription(TwitterInvalidFollow, "follow must be a comma separated list of numeric user ids")
	coded.RegisterShortDescription(TwitterInvalidLocations, "locations must be an even count of comma separated numbers (coordinate pairs)")
}
