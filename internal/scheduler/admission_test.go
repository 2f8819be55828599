package scheduler

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustURL(t *testing.T, raw string) url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return *u
}

func TestAllowedHosts_PairsWWWVariant(t *testing.T) {
	hosts := allowedHosts(mustURL(t, "https://docs.example.com/a"))
	assert.Contains(t, hosts, "docs.example.com")
	assert.Contains(t, hosts, "www.docs.example.com")
}

func TestAllowedHosts_StripsWWWVariant(t *testing.T) {
	hosts := allowedHosts(mustURL(t, "https://www.example.com/a"))
	assert.Contains(t, hosts, "www.example.com")
	assert.Contains(t, hosts, "example.com")
}

func TestSubtreePrefix_AppendsTrailingSlash(t *testing.T) {
	assert.Equal(t, "/docs/", subtreePrefix(mustURL(t, "https://h/docs")))
	assert.Equal(t, "/docs/", subtreePrefix(mustURL(t, "https://h/docs/")))
}

func TestIsAllowedChild_HostMustMatch(t *testing.T) {
	hosts := allowedHosts(mustURL(t, "https://h/docs/"))
	prefix := subtreePrefix(mustURL(t, "https://h/docs/"))

	assert.True(t, isAllowedChild(mustURL(t, "https://h/docs/x"), hosts, prefix))
	assert.False(t, isAllowedChild(mustURL(t, "https://evil.example/docs/x"), hosts, prefix))
}

func TestIsAllowedChild_PrefixMustContainPath(t *testing.T) {
	hosts := allowedHosts(mustURL(t, "https://h/docs/"))
	prefix := subtreePrefix(mustURL(t, "https://h/docs/"))

	assert.True(t, isAllowedChild(mustURL(t, "https://h/docs"), hosts, prefix), "root itself without trailing slash is admitted")
	assert.False(t, isAllowedChild(mustURL(t, "https://h/other"), hosts, prefix))
}

func TestIsAllowedChild_RootPrefixAdmitsEverySamehostPath(t *testing.T) {
	hosts := allowedHosts(mustURL(t, "https://h/"))
	prefix := subtreePrefix(mustURL(t, "https://h/"))

	assert.True(t, isAllowedChild(mustURL(t, "https://h/anything/deep"), hosts, prefix))
}
