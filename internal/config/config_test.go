package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rohmanhakim/docs-crawler/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_DefaultsApply(t *testing.T) {
	opts, err := config.WithDefault().Build()
	require.NoError(t, err)
	assert.Equal(t, config.DefaultParallelism, opts.Parallelism)
	assert.True(t, opts.UseSitemap)
	assert.Equal(t, config.DefaultUserAgent, opts.HTTP.UserAgent)
}

func TestBuild_ZeroParallelismKeepsDefault(t *testing.T) {
	opts, err := config.WithDefault().WithParallelism(0).Build()
	require.NoError(t, err)
	// WithParallelism(0) is a no-op (keeps the default), not a clamp to 1.
	assert.Equal(t, config.DefaultParallelism, opts.Parallelism)
}

func TestBuild_ClampsParallelismHigh(t *testing.T) {
	opts, err := config.WithDefault().WithParallelism(10_000).Build()
	require.NoError(t, err)
	assert.Equal(t, config.MaxParallelism, opts.Parallelism)
}

func TestBuild_ForceCrawlAndForcePageAreMutuallyExclusive(t *testing.T) {
	_, err := config.WithDefault().WithForceCrawl(true).WithForcePage(true).Build()
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestWithConfigFile_OverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gg.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"parallelism": 3, "use_sitemap": false, "timeout_secs": 5, "max_body_mib": 4}`), 0o644))

	b, err := config.WithConfigFile(path)
	require.NoError(t, err)
	opts, err := b.Build()
	require.NoError(t, err)

	assert.Equal(t, 3, opts.Parallelism)
	assert.False(t, opts.UseSitemap)
	assert.Equal(t, 5*time.Second, opts.HTTP.Timeout)
	assert.Equal(t, int64(4)<<20, opts.HTTP.MaxBodyBytes)
	// Unset fields keep their defaults.
	assert.Equal(t, config.DefaultUserAgent, opts.HTTP.UserAgent)
}

func TestWithConfigFile_FlagsStillWin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gg.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"parallelism": 3}`), 0o644))

	b, err := config.WithConfigFile(path)
	require.NoError(t, err)
	opts, err := b.WithParallelism(7).Build()
	require.NoError(t, err)
	assert.Equal(t, 7, opts.Parallelism)
}

func TestWithConfigFile_MalformedJSONErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gg.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o644))

	_, err := config.WithConfigFile(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestBuild_RejectsNonPositiveMaxBodyBytes(t *testing.T) {
	_, err := config.WithDefault().WithMaxBodyBytes(-1).Build()
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}
