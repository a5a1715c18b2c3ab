package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestParseArgs verifies flag and positional argument handling.
func TestParseArgs(t *testing.T) {
	opt, err := ParseArgs([]string{"-vb", "prog.mcl", "out.ll"})
	require.NoError(t, err)
	require.True(t, opt.Verbose)
	require.Equal(t, "prog.mcl", opt.Src)
	require.Equal(t, "out.ll", opt.Out)

	opt, err = ParseArgs([]string{"prog.mcl"})
	require.NoError(t, err)
	require.Equal(t, "prog.mcl", opt.Src)
	require.Empty(t, opt.Out)

	opt, err = ParseArgs(nil)
	require.NoError(t, err)
	require.Empty(t, opt.Src)

	_, err = ParseArgs([]string{"-bogus"})
	require.Error(t, err)

	_, err = ParseArgs([]string{"a.mcl", "b.ll", "c"})
	require.Error(t, err)
}

// TestParseArgsEnv verifies that environment variables configure the options
// when no flag is given.
func TestParseArgsEnv(t *testing.T) {
	t.Setenv("MCLC_NO_RUN", "true")
	t.Setenv("MCLC_VERBOSE", "true")

	opt, err := ParseArgs([]string{"prog.mcl"})
	require.NoError(t, err)
	require.True(t, opt.NoRun)
	require.True(t, opt.Verbose)
}
