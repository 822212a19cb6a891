package ocl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToolchainRegistry(t *testing.T) {
	tc := newFakeToolchain()
	require.NoError(t, RegisterToolchain(tc))
	require.Error(t, RegisterToolchain(newFakeToolchain()), "name already registered")
	require.Error(t, RegisterToolchain(nil))
	require.Panics(t, func() { MustRegisterToolchain(newFakeToolchain()) })
	require.Contains(t, AvailableToolchains(), "fake")

	got := capture(GetToolchain("fake")).Test(t)
	require.Same(t, tc, got)

	t.Setenv(ToolchainEnvVar, "fake")
	got = capture(GetToolchain("")).Test(t)
	require.Same(t, tc, got)

	_, err := GetToolchain("unknown")
	require.ErrorContains(t, err, `"unknown" not registered`)
}
