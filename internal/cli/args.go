package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

/*
Responsibilities

- Parse flat argv into a CLIOptions value plus the leftover positional
  tokens ([HOST_CMD [HOST_ARGS…]] URL_OR_GLOB…).
- Flag parsing is hand-rolled rather than left to cobra's own flag set:
  host-command arguments (e.g. "-i" for ripgrep) must pass through
  untouched, which cobra's flag parser would otherwise try to consume as
  gg's own flags. DisableFlagParsing is set by NewRootCmd in root.go for
  exactly this reason; this file is the flag parser that replaces it.

"--" always ends gg's own flag scanning; every token after it is treated
as positional regardless of its shape.
*/

// CLIOptions is the parsed form of gg's flag surface.
type CLIOptions struct {
	Refresh        bool
	CacheDir       string
	Parallelism    int
	HasParallelism bool
	MaxDepth       *int
	UseSitemap     *bool // nil: unset: let config defaults decide
	Timeout        time.Duration
	HasTimeout     bool
	ConnectTimeout time.Duration
	HasConnTimeout bool
	MaxBodyMiB     int
	HasMaxBodyMiB  bool
	UserAgent      string
	CmdOverride    string
	PrintPaths     bool
	ForceCrawl     bool
	ForcePage      bool
	ShowHelp       bool
	ShowVersion    bool
	Positionals    []string
}

// parseArgs walks argv left to right, recognizing gg's own flags and
// collecting everything else (plus everything after "--") as positional
// tokens, in order.
func parseArgs(argv []string) (CLIOptions, error) {
	var o CLIOptions
	noMoreFlags := false

	for i := 0; i < len(argv); i++ {
		a := argv[i]

		if !noMoreFlags && a == "--" {
			noMoreFlags = true
			continue
		}
		if noMoreFlags || !strings.HasPrefix(a, "-") {
			o.Positionals = append(o.Positionals, a)
			continue
		}

		name, inlineVal, hasInline := splitFlagValue(a)

		takesValue := map[string]bool{
			"--cache-dir": true, "--parallelism": true, "--max-depth": true,
			"--timeout": true, "--connect-timeout": true, "--max-body-mib": true,
			"--user-agent": true, "--cmd": true,
		}

		var value string
		if takesValue[name] {
			if hasInline {
				value = inlineVal
			} else {
				i++
				if i >= len(argv) {
					return o, fmt.Errorf("flag %s requires a value", name)
				}
				value = argv[i]
			}
		}

		var err error
		switch name {
		case "-h", "--help":
			o.ShowHelp = true
		case "-V", "--version":
			o.ShowVersion = true
		case "--refresh":
			o.Refresh = true
		case "--no-sitemap":
			f := false
			o.UseSitemap = &f
		case "--sitemap":
			t := true
			o.UseSitemap = &t
		case "--print-paths":
			o.PrintPaths = true
		case "--crawl":
			o.ForceCrawl = true
		case "--page":
			o.ForcePage = true
		case "--cache-dir":
			o.CacheDir = value
		case "--user-agent":
			o.UserAgent = value
		case "--cmd":
			o.CmdOverride = value
		case "--parallelism":
			o.Parallelism, err = strconv.Atoi(value)
			o.HasParallelism = err == nil
		case "--max-depth":
			var depth int
			depth, err = strconv.Atoi(value)
			if err == nil {
				o.MaxDepth = &depth
			}
		case "--timeout":
			o.Timeout, err = parseSeconds(value)
			o.HasTimeout = err == nil
		case "--connect-timeout":
			o.ConnectTimeout, err = parseSeconds(value)
			o.HasConnTimeout = err == nil
		case "--max-body-mib":
			o.MaxBodyMiB, err = strconv.Atoi(value)
			o.HasMaxBodyMiB = err == nil
		default:
			// Unrecognized "-"-prefixed token: not one of gg's own flags,
			// so it passes through as positional (a host-command flag).
			o.Positionals = append(o.Positionals, a)
			continue
		}
		if err != nil {
			return o, fmt.Errorf("flag %s: %w", name, err)
		}
	}

	return o, nil
}

// splitFlagValue splits a "--flag=value" token into name and value.
func splitFlagValue(tok string) (name, value string, hasValue bool) {
	if idx := strings.IndexByte(tok, '='); idx >= 0 {
		return tok[:idx], tok[idx+1:], true
	}
	return tok, "", false
}

func parseSeconds(value string) (time.Duration, error) {
	seconds, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, err
	}
	return time.Duration(seconds * float64(time.Second)), nil
}
