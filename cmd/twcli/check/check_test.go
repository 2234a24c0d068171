package check

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/transferia/tweetstream/cmd/twcli/config"
	"github.com/transferia/tweetstream/pkg/errors/codes"
	_ "github.com/transferia/tweetstream/pkg/providers/stdout"
)

const base = `
name: agent
source:
  type: twitter
  options:
    consumerKey: ck
    consumerSecret: cs
    accessToken: at
    accessTokenSecret: as
%s
sink:
  type: stdout
  params: {show_data: true}
`

func parse(t *testing.T, filter string) *config.Config {
	cfg, err := config.Parse([]byte(fmtBase(filter)))
	require.NoError(t, err)
	return cfg
}

func fmtBase(filter string) string {
	return string(bytes.Replace([]byte(base), []byte("%s"), []byte(filter), 1))
}

func TestCheckFilterMode(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Check(parse(t, "    keywords: \"foo, bar\"\n    language: en"), &out))
	require.JSONEq(t, `{
		"name": "agent",
		"source": "twitter",
		"mode": "filter",
		"query": {"track": ["foo", "bar"], "language": ["en"]},
		"sink": "stdout"
	}`, out.String())
}

func TestCheckSampleMode(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Check(parse(t, ""), &out))
	require.JSONEq(t, `{"name": "agent", "source": "twitter", "mode": "sample", "sink": "stdout"}`, out.String())
}

func TestCheckInvalidFollow(t *testing.T) {
	var out bytes.Buffer
	err := Check(parse(t, "    follow: \"12,abc\""), &out)
	require.Error(t, err)
	require.True(t, codes.TwitterInvalidFollow.Contains(err))
	require.Empty(t, out.String())
}
