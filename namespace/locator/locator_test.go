package locator

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoot(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		root      string
		wantProto Protocol
		wantBase  string
	}{
		{name: "empty root", root: "", wantProto: Bundled, wantBase: ""},
		{name: "bare path", root: "/etc/app", wantProto: LocalPath, wantBase: "/etc/app"},
		{name: "file scheme", root: "file:///etc/app", wantProto: LocalPath, wantBase: "/etc/app"},
		{name: "classpath scheme", root: "classpath://conf", wantProto: Bundled, wantBase: "conf"},
		{name: "bundle scheme", root: "bundle://conf/sub", wantProto: Bundled, wantBase: "conf/sub"},
		{name: "http", root: "http://host/conf", wantProto: Remote, wantBase: "http://host/conf"},
		{name: "https upper", root: "HTTPS://host", wantProto: Remote, wantBase: "HTTPS://host"},
	}

	for _, testInfo := range tests {
		t.Run(testInfo.name, func(t *testing.T) {
			t.Parallel()

			proto, base, err := ParseRoot(testInfo.root)
			require.NoError(t, err)
			assert.Equal(t, testInfo.wantProto, proto)
			assert.Equal(t, testInfo.wantBase, base)
		})
	}
}

func TestParseRoot_UnsupportedScheme(t *testing.T) {
	t.Parallel()

	_, _, err := ParseRoot("ftp://host/conf")
	require.ErrorIs(t, err, ErrUnsupportedProtocol)

	_, err = New("ldap://host")
	require.ErrorIs(t, err, ErrUnsupportedProtocol)
}

func TestNew_SelectsLocator(t *testing.T) {
	t.Parallel()

	loc, err := New(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, LocalPath, loc.Protocol())

	loc, err = New("classpath://conf", WithBundle(fstest.MapFS{}))
	require.NoError(t, err)
	assert.Equal(t, Bundled, loc.Protocol())
	assert.Equal(t, "conf", loc.Root())

	loc, err = New("", WithBundle(fstest.MapFS{}))
	require.NoError(t, err)
	assert.Equal(t, Bundled, loc.Protocol())
	assert.Equal(t, ".", loc.Root())

	loc, err = New("http://example.invalid/conf/", WithTimeout(0))
	require.NoError(t, err)
	assert.Equal(t, Remote, loc.Protocol())
	assert.Equal(t, "http://example.invalid/conf", loc.Root())
}

func TestHandle_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "file:///etc/a.ini", Handle{Protocol: LocalPath, Location: "/etc/a.ini"}.String())
	assert.Equal(t, "classpath://conf/a.xml", Handle{Protocol: Bundled, Location: "conf/a.xml"}.String())
	assert.Equal(t, "http://h/a.xml", Handle{Protocol: Remote, Location: "http://h/a.xml"}.String())
	assert.Equal(t, "container", Container.String())
}
