package scheduler

import (
	"net/url"
	"strings"
)

// allowedHosts is the root's own host plus its "www." variant, paired
// the other direction when the root already carries "www.".
func allowedHosts(root url.URL) map[string]struct{} {
	host := strings.ToLower(root.Hostname())
	hosts := map[string]struct{}{host: {}}
	if strings.HasPrefix(host, "www.") {
		hosts[strings.TrimPrefix(host, "www.")] = struct{}{}
	} else {
		hosts["www."+host] = struct{}{}
	}
	return hosts
}

// subtreePrefix is the root's path, with a trailing "/" appended if it
// doesn't already have one.
func subtreePrefix(root url.URL) string {
	if strings.HasSuffix(root.Path, "/") {
		return root.Path
	}
	return root.Path + "/"
}

// isAllowedChild is the admission predicate: the single choke point every
// discovered URL must pass before it may enter the frontier. Every queued
// token other than the root itself (which is enqueued directly and always
// satisfies it) has passed it, because this is the only path by which
// runBFS in engine.go enqueues a seed or a harvested link.
func isAllowedChild(u url.URL, hosts map[string]struct{}, prefix string) bool {
	if _, ok := hosts[strings.ToLower(u.Hostname())]; !ok {
		return false
	}
	if prefix == "/" {
		return true
	}
	prefixNoSlash := strings.TrimSuffix(prefix, "/")
	return u.Path == prefixNoSlash || strings.HasPrefix(u.Path, prefix)
}
