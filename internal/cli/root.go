// Package cmd wires gg's command-line surface on top of the
// urlspec/cachepath/scheduler/gateway packages. Flag parsing is
// hand-rolled (see args.go) because host-command flags must pass through
// untouched rather than be consumed as gg's own.
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rohmanhakim/docs-crawler/internal/build"
	"github.com/rohmanhakim/docs-crawler/internal/cachepath"
	"github.com/rohmanhakim/docs-crawler/internal/config"
	"github.com/rohmanhakim/docs-crawler/internal/metadata"
	"github.com/rohmanhakim/docs-crawler/internal/urlspec"
	"github.com/spf13/cobra"
)

const longDescription = `gg presents public web content as a local, content-addressed, Markdown
cache and hands the resolved files to another command line tool.

  gg URL_OR_GLOB...
  gg HOST_CMD [HOST_ARGS...] URL_OR_GLOB...

A single page is fetched and converted on its own; a URL ending in "/" (or
passed with --crawl) is crawled as a subtree; a token containing *, ?, or [
is a glob: the subtree under its root is crawled (or its cached manifest
reused) and the manifest's pages are matched against the glob.

Flags:
  --refresh              re-fetch even when a cached copy exists
  --cache-dir DIR        cache root (default: GG_CACHE_DIR or the user cache dir)
  --parallelism N        concurrent fetches, 1-512
  --max-depth N          stop following links past this depth
  --no-sitemap           skip sitemap.xml seeding
  --sitemap              force sitemap.xml seeding
  --timeout S            per-request timeout in seconds
  --connect-timeout S    connect timeout in seconds
  --max-body-mib N       per-response body cap in MiB
  --user-agent UA        User-Agent header
  --cmd CMD              host command to run on the resolved paths
  --print-paths          print resolved paths instead of running a command
  --crawl                treat every URL as a crawl root
  --page                 treat every URL as a single page
  --                     end of gg's own flags

Unrecognized flags pass through to the host command.`

// NewRootCmd builds the gg-tool cobra command. DisableFlagParsing is set
// because cobra's own pflag scanning cannot tell a gg flag from a host
// command's identically-shaped flag (e.g. "-i" meant for ripgrep);
// args.go's parseArgs makes that call instead.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:                "gg [flags] [HOST_CMD [HOST_ARGS...]] URL_OR_GLOB...",
		Short:              "Crawl and cache web content as local Markdown, then hand it to another tool",
		Long:               longDescription,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE:               runRoot,
	}
	return root
}

func runRoot(cmd *cobra.Command, args []string) error {
	opts, err := parseArgs(args)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		os.Exit(2)
	}

	if opts.ShowHelp {
		return cmd.Help()
	}
	if opts.ShowVersion {
		fmt.Fprintln(cmd.OutOrStdout(), build.FullVersion())
		return nil
	}

	if len(opts.Positionals) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "gg: at least one URL or glob is required")
		os.Exit(2)
	}

	hostCmd, hostArgs, urlTokens := resolveHostCommand(opts.Positionals, opts.CmdOverride)
	tokens := expandURLTokens(urlTokens)
	if len(tokens) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "gg: at least one URL or glob is required")
		os.Exit(2)
	}

	crawlOpts, err := buildCrawlOptions(opts)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "gg:", err)
		os.Exit(2)
	}

	cacheRoot, err := cachepath.ResolveRoot(crawlOpts.CacheDir)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "gg:", err)
		os.Exit(2)
	}
	cache, err := cachepath.New(cacheRoot)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "gg:", err)
		os.Exit(2)
	}

	sink := metadata.NewRecorder("gg")
	parseOpts := urlspec.ParseOpts{ForceCrawl: crawlOpts.ForceCrawl, ForcePage: crawlOpts.ForcePage}

	var paths []string
	ctx := context.Background()
	for _, token := range tokens {
		spec, classifyErr := urlspec.Classify(token, parseOpts)
		if classifyErr != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "gg:", classifyErr)
			os.Exit(2)
		}
		resolved, resolveErr := resolveSpec(ctx, spec, cache, crawlOpts, sink, build.FullVersion())
		if resolveErr != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "gg:", resolveErr)
			os.Exit(2)
		}
		paths = append(paths, resolved...)
	}

	if crawlOpts.PrintPaths {
		for _, p := range paths {
			fmt.Fprintln(cmd.OutOrStdout(), p)
		}
		return nil
	}

	os.Exit(dispatch(hostCmd, hostArgs, paths))
	return nil
}

// expandURLTokens splits comma-separated URLs within a single token into
// individual tokens, dropping empties left by a stray comma.
func expandURLTokens(tokens []string) []string {
	var out []string
	for _, tok := range tokens {
		for _, part := range strings.Split(tok, ",") {
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// buildCrawlOptions folds parsed flags onto config's documented defaults,
// or onto the GG_CONFIG override file when one is set. Flags always win.
func buildCrawlOptions(o CLIOptions) (config.CrawlOptions, error) {
	b := config.WithDefault()
	if cfgPath := os.Getenv("GG_CONFIG"); cfgPath != "" {
		var err error
		b, err = config.WithConfigFile(cfgPath)
		if err != nil {
			return config.CrawlOptions{}, err
		}
	}

	if o.CacheDir != "" {
		b = b.WithCacheDir(o.CacheDir)
	}
	b = b.
		WithRefresh(o.Refresh).
		WithPrintPaths(o.PrintPaths).
		WithCmdOverride(o.CmdOverride).
		WithForceCrawl(o.ForceCrawl).
		WithForcePage(o.ForcePage).
		WithUserAgent(o.UserAgent)

	if o.HasParallelism {
		b = b.WithParallelism(o.Parallelism)
	}
	if o.MaxDepth != nil {
		b = b.WithMaxDepth(*o.MaxDepth)
	}
	if o.UseSitemap != nil {
		b = b.WithUseSitemap(*o.UseSitemap)
	}
	if o.HasTimeout {
		b = b.WithTimeout(o.Timeout)
	}
	if o.HasConnTimeout {
		b = b.WithConnectTimeout(o.ConnectTimeout)
	}
	if o.HasMaxBodyMiB {
		b = b.WithMaxBodyBytes(int64(o.MaxBodyMiB) << 20)
	}

	return b.Build()
}

// Execute runs the root command against the real process argv and exits
// the process with the resulting status.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "gg:", err)
		os.Exit(2)
	}
}
