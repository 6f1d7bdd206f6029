package namespace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeScheme(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		key       string
		delimiter string
		want      string
	}{
		{name: "bare scheme", key: "java:", delimiter: ".", want: "java"},
		{name: "scheme then delimiter", key: "java:.magic", delimiter: ".", want: "java.magic"},
		{name: "scheme then slash", key: "java:/comp", delimiter: ".", want: "java.comp"},
		{name: "scheme then bare slash", key: "java:/", delimiter: ".", want: "java"},
		{name: "colon inside segment", key: "java:comp.env", delimiter: ".", want: "java:comp.env"},
		{name: "host and port", key: "host:8080", delimiter: ".", want: "host:8080"},
		{name: "slash delimiter", key: "java:/comp/env", delimiter: "/", want: "java/comp/env"},
		{name: "no scheme", key: "test.value", delimiter: ".", want: "test.value"},
		{name: "colon after delimiter", key: "test.a:b", delimiter: ".", want: "test.a:b"},
		{name: "not a scheme name", key: "1x:y", delimiter: ".", want: "1x:y"},
		{name: "leading colon", key: ":x", delimiter: ".", want: ":x"},
	}

	for _, testInfo := range tests {
		t.Run(testInfo.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testInfo.want, normalizeScheme(testInfo.key, testInfo.delimiter))
		})
	}
}

func TestSplitKey_DropsEmptySegments(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"a", "b", "c"}, splitKey(".a..b.c.", "."))
	assert.Equal(t, []string{"a", "b"}, splitKey("a::b", "::"))
	assert.Empty(t, splitKey("...", "."))
}

func TestResolver_ReservedKeys(t *testing.T) {
	t.Parallel()

	root := writeTree(t, fixture)
	resolver, err := New(WithRoot(root))
	require.NoError(t, err)

	ctx := context.Background()

	got, err := resolver.Lookup(ctx, RootKey)
	require.NoError(t, err)
	assert.Equal(t, root, got)

	got, err = resolver.Lookup(ctx, DelimiterKey)
	require.NoError(t, err)
	assert.Equal(t, DefaultDelimiter, got)

	assert.Equal(t, map[string]string{RootKey: root, DelimiterKey: "."}, resolver.Environment())
	assert.Empty(t, resolver.Bindings())
}

func TestResolver_DelimiterOverride(t *testing.T) {
	t.Parallel()

	resolver := newFixtureResolver(t)
	ctx := context.Background()

	require.NoError(t, resolver.Bind(DelimiterKey, "/"))
	require.ErrorIs(t, resolver.Bind(DelimiterKey, "::"), ErrAlreadyBound)

	got, err := resolver.Lookup(ctx, "test/value")
	require.NoError(t, err)
	assert.Equal(t, "13", got)

	got, err = resolver.Lookup(ctx, "nested/com/app/server/host")
	require.NoError(t, err)
	assert.Equal(t, "localhost", got)

	_, err = resolver.Lookup(ctx, "test.value")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, resolver.Unbind(DelimiterKey))

	got, err = resolver.Lookup(ctx, "test.value")
	require.NoError(t, err)
	assert.Equal(t, "13", got)

	require.ErrorIs(t, resolver.Rebind(DelimiterKey, ""), ErrInvalidName)
	require.ErrorIs(t, resolver.Rebind(DelimiterKey, 4), ErrInvalidName)
}

func TestResolver_RootOverride(t *testing.T) {
	t.Parallel()

	resolver := newFixtureResolver(t)
	other := writeTree(t, map[string]string{"test.properties": "value=99\n"})
	ctx := context.Background()

	require.NoError(t, resolver.Rebind(RootKey, other))

	got, err := resolver.Lookup(ctx, "test.value")
	require.NoError(t, err)
	assert.Equal(t, "99", got)

	_, err = resolver.Lookup(ctx, "java.magic")
	require.ErrorIs(t, err, ErrNotFound)

	// views inherit the overridden root
	val, err := resolver.Lookup(ctx, "")
	require.NoError(t, err)

	view, ok := val.(*Resolver)
	require.True(t, ok)

	got, err = view.Lookup(ctx, "test.value")
	require.NoError(t, err)
	assert.Equal(t, "99", got)

	require.NoError(t, resolver.Unbind(RootKey))

	got, err = resolver.Lookup(ctx, "test.value")
	require.NoError(t, err)
	assert.Equal(t, "13", got)

	require.ErrorIs(t, resolver.Rebind(RootKey, "ftp://example.com"), ErrUnsupportedProtocol)
	require.ErrorIs(t, resolver.Rebind(RootKey, 42), ErrInvalidName)
}
