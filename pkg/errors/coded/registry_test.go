package coded

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.ytsaurus.tech/library/go/core/xerrors"
)

func TestRegisterAndContains(t *testing.T) {
	code := Register("test", "registry", "contains")
	other := Register("test", "registry", "other")
	require.Equal(t, "test.registry.contains", code.ID())
	require.Panics(t, func() { Register("test", "registry", "contains") })

	err := xerrors.Errorf("outer: %w", Errorf(code, "inner %d", 42))
	require.True(t, code.Contains(err))
	require.False(t, other.Contains(err))
	require.Contains(t, err.Error(), "inner 42")

	nested := Errorf(other, "wrapped: %w", err)
	require.True(t, code.Contains(nested))
	require.True(t, other.Contains(nested))

	require.Contains(t, All(), code)
}

func TestShortDescription(t *testing.T) {
	code := Register("test", "registry", "described")
	_, ok := GetShortDescription(code)
	require.False(t, ok)

	RegisterShortDescription(code, "something is wrong")
	description, ok := GetShortDescription(code)
	require.True(t, ok)
	require.Equal(t, "something is wrong", description)

	require.Panics(t, func() { RegisterShortDescription(Code("never.registered"), "x") })
}
