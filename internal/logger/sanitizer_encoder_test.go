package logger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

type credentials struct {
	ConsumerKey    string `log:"true"`
	ConsumerSecret string
}

type sourceModel struct {
	Name        string            `log:"true"`
	Credentials credentials       `log:"true"`
	PCreds      *credentials      `log:"true"`
	Keywords    []string          `log:"true"`
	Params      map[string]string `log:"true"`
	KeepAlive   time.Duration     `log:"true"`
	Capacity    int               `log:"true"`
	NilPtr      *int              `log:"true"`
	Ch          chan int          `log:"true"`
	Token       string
	private     string
}

func encode(t *testing.T, v interface{}) *zapcore.MapObjectEncoder {
	t.Helper()
	enc := zapcore.NewMapObjectEncoder()
	require.NoError(t, MarshalSanitizedObject(v, enc))
	return enc
}

func TestMarshalSanitizedObject(t *testing.T) {
	enc := encode(t, &sourceModel{
		Name:        "tw",
		Credentials: credentials{ConsumerKey: "key", ConsumerSecret: "secret"},
		PCreds:      &credentials{ConsumerKey: "pkey", ConsumerSecret: "psecret"},
		Keywords:    []string{"foo", "bar"},
		Params:      map[string]string{"topic": "tweets"},
		KeepAlive:   3 * time.Second,
		Capacity:    100,
		Token:       "token",
		private:     "private",
	})

	require.Equal(t, "tw", enc.Fields["Name"])
	require.Equal(t, hiddenValue, enc.Fields["Token"])
	require.Equal(t, int64(100), enc.Fields["Capacity"])
	require.Equal(t, 3*time.Second, enc.Fields["KeepAlive"])
	require.Equal(t, []string{"foo", "bar"}, enc.Fields["Keywords"])
	require.Equal(t, "nil", enc.Fields["NilPtr"])
	require.Equal(t, skippedValue, enc.Fields["Ch"])
	require.NotContains(t, enc.Fields, "private")

	creds, ok := enc.Fields["Credentials"].(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, "key", creds["ConsumerKey"])
	require.Equal(t, hiddenValue, creds["ConsumerSecret"])

	pcreds, ok := enc.Fields["PCreds"].(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, hiddenValue, pcreds["ConsumerSecret"])

	params, ok := enc.Fields["Params"].(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, "tweets", params["topic"])
}

func TestMarshalSanitizedObjectNonStruct(t *testing.T) {
	enc := zapcore.NewMapObjectEncoder()
	require.Error(t, MarshalSanitizedObject(42, enc))

	var nilModel *sourceModel
	require.NoError(t, MarshalSanitizedObject(nilModel, enc))
	require.Empty(t, enc.Fields)
}
