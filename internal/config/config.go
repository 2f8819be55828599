package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

/*
Responsibilities

- Hold CrawlOptions/HttpOptions as one immutable value built once at
  startup and passed explicitly to every component that needs it (crawl
  engine, page gateway, fetcher). No package-level mutable config state
  exists anywhere in this module.
- Clamp parallelism to [1, 512] and apply the documented defaults.
*/

// HttpOptions bounds every outgoing request.
type HttpOptions struct {
	UserAgent      string
	Timeout        time.Duration
	ConnectTimeout time.Duration
	MaxBodyBytes   int64
}

// CrawlOptions carries the crawl scope and limits plus the CLI-level
// knobs (cache dir, refresh, print-paths, cmd override, force flags),
// folded into one builder rather than a second struct.
type CrawlOptions struct {
	Parallelism int
	MaxDepth    *int
	UseSitemap  bool
	HTTP        HttpOptions

	CacheDir    string
	Refresh     bool
	PrintPaths  bool
	CmdOverride string
	ForceCrawl  bool
	ForcePage   bool
}

const (
	DefaultParallelism    = 8
	MinParallelism        = 1
	MaxParallelism        = 512
	DefaultTimeout        = 30 * time.Second
	DefaultConnectTimeout = 10 * time.Second
	DefaultMaxBodyBytes   = 32 << 20 // 32 MiB
	DefaultUserAgent      = "gg-tool/1.0"
)

// Builder assembles CrawlOptions through a With*() chain so that
// partially-specified CLI flags compose cleanly with defaults.
type Builder struct {
	opts CrawlOptions
}

// WithDefault seeds a Builder with the documented defaults.
func WithDefault() *Builder {
	return &Builder{
		opts: CrawlOptions{
			Parallelism: DefaultParallelism,
			UseSitemap:  true,
			HTTP: HttpOptions{
				UserAgent:      DefaultUserAgent,
				Timeout:        DefaultTimeout,
				ConnectTimeout: DefaultConnectTimeout,
				MaxBodyBytes:   DefaultMaxBodyBytes,
			},
		},
	}
}

// configDTO is the JSON shape of a config override file. Every field is
// optional; zero values fall back to the builder defaults.
type configDTO struct {
	Parallelism        int     `json:"parallelism,omitempty"`
	MaxDepth           *int    `json:"max_depth,omitempty"`
	UseSitemap         *bool   `json:"use_sitemap,omitempty"`
	UserAgent          string  `json:"user_agent,omitempty"`
	TimeoutSecs        float64 `json:"timeout_secs,omitempty"`
	ConnectTimeoutSecs float64 `json:"connect_timeout_secs,omitempty"`
	MaxBodyMiB         int     `json:"max_body_mib,omitempty"`
	CacheDir           string  `json:"cache_dir,omitempty"`
}

// WithConfigFile seeds a Builder with the defaults overlaid by the JSON
// override file at path. CLI flags applied on top of the returned Builder
// still win, so precedence is flags > file > defaults.
func WithConfigFile(path string) (*Builder, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrInvalidConfig, path, err)
	}
	var dto configDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrInvalidConfig, path, err)
	}

	b := WithDefault().
		WithParallelism(dto.Parallelism).
		WithUserAgent(dto.UserAgent)
	if dto.CacheDir != "" {
		b = b.WithCacheDir(dto.CacheDir)
	}
	if dto.MaxDepth != nil {
		b = b.WithMaxDepth(*dto.MaxDepth)
	}
	if dto.UseSitemap != nil {
		b = b.WithUseSitemap(*dto.UseSitemap)
	}
	if dto.TimeoutSecs > 0 {
		b = b.WithTimeout(time.Duration(dto.TimeoutSecs * float64(time.Second)))
	}
	if dto.ConnectTimeoutSecs > 0 {
		b = b.WithConnectTimeout(time.Duration(dto.ConnectTimeoutSecs * float64(time.Second)))
	}
	if dto.MaxBodyMiB > 0 {
		b = b.WithMaxBodyBytes(int64(dto.MaxBodyMiB) << 20)
	}
	return b, nil
}

func (b *Builder) WithParallelism(n int) *Builder {
	if n != 0 {
		b.opts.Parallelism = n
	}
	return b
}

func (b *Builder) WithMaxDepth(depth int) *Builder {
	b.opts.MaxDepth = &depth
	return b
}

func (b *Builder) WithUseSitemap(use bool) *Builder {
	b.opts.UseSitemap = use
	return b
}

func (b *Builder) WithTimeout(d time.Duration) *Builder {
	if d != 0 {
		b.opts.HTTP.Timeout = d
	}
	return b
}

func (b *Builder) WithConnectTimeout(d time.Duration) *Builder {
	if d != 0 {
		b.opts.HTTP.ConnectTimeout = d
	}
	return b
}

func (b *Builder) WithMaxBodyBytes(n int64) *Builder {
	if n != 0 {
		b.opts.HTTP.MaxBodyBytes = n
	}
	return b
}

func (b *Builder) WithUserAgent(ua string) *Builder {
	if ua != "" {
		b.opts.HTTP.UserAgent = ua
	}
	return b
}

func (b *Builder) WithCacheDir(dir string) *Builder {
	b.opts.CacheDir = dir
	return b
}

func (b *Builder) WithRefresh(refresh bool) *Builder {
	b.opts.Refresh = refresh
	return b
}

func (b *Builder) WithPrintPaths(print bool) *Builder {
	b.opts.PrintPaths = print
	return b
}

func (b *Builder) WithCmdOverride(cmd string) *Builder {
	b.opts.CmdOverride = cmd
	return b
}

func (b *Builder) WithForceCrawl(force bool) *Builder {
	b.opts.ForceCrawl = force
	return b
}

func (b *Builder) WithForcePage(force bool) *Builder {
	b.opts.ForcePage = force
	return b
}

// Build validates and clamps the assembled options. Parallelism outside
// [1, 512] is clamped rather than rejected.
func (b *Builder) Build() (CrawlOptions, error) {
	opts := b.opts

	if opts.Parallelism < MinParallelism {
		opts.Parallelism = MinParallelism
	}
	if opts.Parallelism > MaxParallelism {
		opts.Parallelism = MaxParallelism
	}
	if opts.HTTP.MaxBodyBytes <= 0 {
		return CrawlOptions{}, fmt.Errorf("%w: max body bytes must be positive", ErrInvalidConfig)
	}
	if opts.ForceCrawl && opts.ForcePage {
		return CrawlOptions{}, fmt.Errorf("%w: --crawl and --page are mutually exclusive", ErrInvalidConfig)
	}

	return opts, nil
}
