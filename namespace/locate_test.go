package namespace

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver_BundledRoot(t *testing.T) {
	t.Parallel()

	bundle := fstest.MapFS{
		"conf/test.properties":         {Data: []byte("value=13\n")},
		"conf/java/default.properties": {Data: []byte("magic=42\n")},
		"conf/markup":                  {Data: []byte("<a>\n<b>\n")},
	}

	resolver, err := New(WithRoot("classpath://conf"), WithBundle(bundle))
	require.NoError(t, err)

	ctx := context.Background()

	for range 2 {
		got, err := resolver.Lookup(ctx, "java.magic")
		require.NoError(t, err)
		assert.Equal(t, "42", got)
	}

	got, err := resolver.Lookup(ctx, "test.value")
	require.NoError(t, err)
	assert.Equal(t, "13", got)

	// classification is remembered per resource
	assert.InDelta(t, 1, testutil.ToFloat64(resolver.Metrics().Probes.WithLabelValues("container")), 0)

	entries, err := resolver.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []Entry{
		{Name: "java", Kind: KindNamespace},
		{Name: "test", Kind: KindDocument},
	}, entries)
}

func TestResolver_ClassifyBundleResources(t *testing.T) {
	t.Parallel()

	bundle := fstest.MapFS{
		"dir/inner.properties": {Data: []byte("a=b\n")},
		"markup":               {Data: []byte("<a>\n<b>\n")},
		"empty":                {Data: []byte("")},
		"page":                 {Data: []byte("<!DOCTYPE html><html><body>index</body></html>")},
		"flat":                 {Data: []byte("key=value\n")},
	}

	resolver, err := New(WithRoot("classpath://"), WithBundle(bundle))
	require.NoError(t, err)

	tests := []struct {
		name     string
		location string
		want     string
	}{
		{name: "directory", location: "dir", want: "container"},
		{name: "only markup keys", location: "markup", want: "container"},
		{name: "empty", location: "empty", want: "container"},
		{name: "html", location: "page", want: "container"},
		{name: "flat document", location: "flat", want: "leaf"},
	}

	for _, testInfo := range tests {
		t.Run(testInfo.name, func(t *testing.T) {
			t.Parallel()

			kind, err := resolver.classify(context.Background(), resolver.loc, testInfo.location)
			require.NoError(t, err)
			assert.Equal(t, testInfo.want, kind.String())
		})
	}
}

func newRemoteTree(t *testing.T, files map[string]string) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := files[r.URL.Path]
		if !ok {
			http.NotFound(w, r)

			return
		}

		if strings.HasPrefix(body, "<") {
			w.Header().Set("Content-Type", "text/html")
		}

		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	return server
}

func TestResolver_RemoteRoot(t *testing.T) {
	t.Parallel()

	server := newRemoteTree(t, map[string]string{
		"/conf/java":                    `<html><body><a href="default.properties">default.properties</a></body></html>`,
		"/conf/java/default.properties": "magic=42\n",
		"/conf/test.properties":         "value=13\nitem=a\nitem=b\n",
	})

	resolver, err := New(WithRoot(server.URL+"/conf"), WithRetries(0))
	require.NoError(t, err)

	ctx := context.Background()

	got, err := resolver.Lookup(ctx, "java.magic")
	require.NoError(t, err)
	assert.Equal(t, "42", got)

	got, err = resolver.Lookup(ctx, "test.item")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)

	_, err = resolver.Lookup(ctx, "absent.key")
	require.ErrorIs(t, err, ErrNotFound)

	entries, err := resolver.List(ctx, "test")
	require.NoError(t, err)
	assert.Equal(t, []Entry{{Name: "value", Kind: KindValue}, {Name: "item", Kind: KindValue}}, entries)
}

func TestResolver_RemoteRootWithoutHead(t *testing.T) {
	t.Parallel()

	files := map[string]string{"/test.properties": "value=13\n"}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)

			return
		}

		body, ok := files[r.URL.Path]
		if !ok {
			http.NotFound(w, r)

			return
		}

		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	resolver, err := New(WithRoot(server.URL), WithRetries(0))
	require.NoError(t, err)

	got, err := resolver.Lookup(context.Background(), "test.value")
	require.NoError(t, err)
	assert.Equal(t, "13", got)
}

func TestResolver_RemoteTimeout(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	t.Cleanup(server.Close)

	resolver, err := New(WithRoot(server.URL), WithTimeout(50*time.Millisecond), WithRetries(0))
	require.NoError(t, err)

	_, err = resolver.Lookup(context.Background(), "test.value")
	require.ErrorIs(t, err, ErrTimeout)

	// nothing was cached, so the lookup can be retried
	assert.Equal(t, 0, resolver.shared.cache.Len())
}
