package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/transferia/tweetstream/pkg/errors/categories"
	"go.ytsaurus.tech/library/go/core/xerrors"
)

//go:noinline
func parseToken() error {
	return xerrors.Errorf("bad token: %w", errors.New("not a number"))
}

//go:noinline
func parseList() error {
	return xerrors.Errorf("bad list: %w", parseToken())
}

type optionsParser struct{}

func (p optionsParser) parseToken() error {
	return xerrors.Errorf("bad token: %w", errors.New("not a number"))
}

func (p optionsParser) parse() error {
	return CategorizedErrorf(categories.Configuration, "bad options: %w", p.parseToken())
}

func TestExtractShortStackTrace(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "plain functions",
			err:      xerrors.Errorf("root %w", parseList()),
			expected: "parseToken.parseList.TestExtractShortStackTrace",
		},
		{
			name:     "methods and categorized errors",
			err:      xerrors.Errorf("root: %w", optionsParser{}.parse()),
			expected: "optionsParser.parseToken.TestExtractShortStackTrace",
		},
		{
			name:     "nil",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, ExtractShortStackTrace(tt.err))
		})
	}
}

func TestSplitFunctionName(t *testing.T) {
	pkg, typ, method := splitFunctionName("github.com/transferia/tweetstream/pkg/providers/twitter.(*Source).Configure")
	require.Equal(t, "twitter", pkg)
	require.Equal(t, "(*Source)", typ)
	require.Equal(t, "Configure", method)

	pkg, typ, method = splitFunctionName("main.main")
	require.Equal(t, "main", pkg)
	require.Equal(t, "", typ)
	require.Equal(t, "main", method)

	pkg, _, _ = splitFunctionName("nodots")
	require.Equal(t, "", pkg)
}

func TestCategoryOf(t *testing.T) {
	err := xerrors.Errorf("start: %w", CategorizedErrorf(categories.Source, "connect: %w", errors.New("refused")))
	require.Equal(t, categories.Source, CategoryOf(err))
	require.Equal(t, categories.Internal, CategoryOf(errors.New("plain")))

	outer := CategorizedErrorf(categories.Configuration, "wrapped: %w", err)
	require.Equal(t, categories.Configuration, CategoryOf(outer))
}
