package cmd

import (
	"errors"
	"os"
	"os/exec"
	"syscall"
)

/*
Responsibilities

- Resolve the host command: an explicit --cmd overrides everything; else
  the first positional token that resolves on PATH is taken as the host
  command; else "rg" is the default. Remaining non-URL positionals are the
  host command's own arguments, URL/glob positionals are crawl targets.
- Run the resolved command with the crawl-resolved paths appended, with
  stdio inherited from this process, and translate its exit into this
  process's exit code.
*/

const defaultHostCommand = "rg"

// resolveHostCommand decides which positionals are the host command (plus
// its own arguments) and which are URL/glob tokens to classify. cmdFlag is
// --cmd's value, empty if unset. Every target is URL-shaped (globs carry
// their scheme too), so any leftover non-URL token belongs to the host
// command.
func resolveHostCommand(positionals []string, cmdFlag string) (hostCmd string, hostArgs []string, urlTokens []string) {
	rest := positionals
	switch {
	case cmdFlag != "":
		hostCmd = cmdFlag
	case len(rest) > 0 && !isURLToken(rest[0]) && pathResolvable(rest[0]):
		hostCmd = rest[0]
		rest = rest[1:]
	default:
		hostCmd = defaultHostCommand
	}

	for _, tok := range rest {
		if isURLToken(tok) {
			urlTokens = append(urlTokens, tok)
		} else {
			hostArgs = append(hostArgs, tok)
		}
	}
	return hostCmd, hostArgs, urlTokens
}

func pathResolvable(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// isURLToken reports whether a positional token looks like a URL or glob
// rather than a plain executable name, so a coincidentally-PATH-resolvable
// word (unlikely, but e.g. a relative single-segment URL host) never wins
// over being treated as a target.
func isURLToken(token string) bool {
	for _, scheme := range []string{"http://", "https://"} {
		if len(token) >= len(scheme) && token[:len(scheme)] == scheme {
			return true
		}
	}
	return false
}

// dispatch runs hostCmd with hostArgs followed by paths, inheriting this
// process's stdio, and returns the process exit code: the child's own
// code on normal exit, 128 on signal termination.
func dispatch(hostCmd string, hostArgs []string, paths []string) int {
	args := make([]string, 0, len(hostArgs)+len(paths))
	args = append(args, hostArgs...)
	args = append(args, paths...)

	cmd := exec.Command(hostCmd, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	if err == nil {
		return 0
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
			return 128
		}
		return exitErr.ExitCode()
	}

	return 2
}
