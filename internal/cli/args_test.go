package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgs_FlagsAndPositionals(t *testing.T) {
	opts, err := parseArgs([]string{"--refresh", "--parallelism", "4", "https://h/a"})
	require.NoError(t, err)
	assert.True(t, opts.Refresh)
	assert.True(t, opts.HasParallelism)
	assert.Equal(t, 4, opts.Parallelism)
	assert.Equal(t, []string{"https://h/a"}, opts.Positionals)
}

func TestParseArgs_EqualsForm(t *testing.T) {
	opts, err := parseArgs([]string{"--cache-dir=/tmp/cache", "https://h/a"})
	require.NoError(t, err)
	assert.Equal(t, "/tmp/cache", opts.CacheDir)
}

func TestParseArgs_TimeoutIsSeconds(t *testing.T) {
	opts, err := parseArgs([]string{"--timeout", "1.5", "https://h/a"})
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, opts.Timeout)
}

func TestParseArgs_NoSitemapAndSitemapAreMutuallyExclusiveFlags(t *testing.T) {
	opts, err := parseArgs([]string{"--no-sitemap"})
	require.NoError(t, err)
	require.NotNil(t, opts.UseSitemap)
	assert.False(t, *opts.UseSitemap)

	opts, err = parseArgs([]string{"--sitemap"})
	require.NoError(t, err)
	require.NotNil(t, opts.UseSitemap)
	assert.True(t, *opts.UseSitemap)
}

func TestParseArgs_TerminatorStopsFlagScanning(t *testing.T) {
	// A host command's own flag (e.g. "-i" for ripgrep) must pass through
	// untouched once "--" is seen.
	opts, err := parseArgs([]string{"--", "rg", "-i", "needle", "https://h/a"})
	require.NoError(t, err)
	assert.Equal(t, []string{"rg", "-i", "needle", "https://h/a"}, opts.Positionals)
}

func TestParseArgs_UnrecognizedFlagPassesThroughAsPositional(t *testing.T) {
	// A host command flag appearing before any URL, without "--", must still
	// reach the positional list rather than erroring as an unknown gg flag.
	opts, err := parseArgs([]string{"rg", "-i", "needle", "https://h/a"})
	require.NoError(t, err)
	assert.Equal(t, []string{"rg", "-i", "needle", "https://h/a"}, opts.Positionals)
}

func TestParseArgs_MissingValueErrors(t *testing.T) {
	_, err := parseArgs([]string{"--cache-dir"})
	require.Error(t, err)
}

func TestParseArgs_HelpAndVersion(t *testing.T) {
	opts, err := parseArgs([]string{"-h"})
	require.NoError(t, err)
	assert.True(t, opts.ShowHelp)

	opts, err = parseArgs([]string{"--version"})
	require.NoError(t, err)
	assert.True(t, opts.ShowVersion)
}
