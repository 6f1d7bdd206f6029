package yaml

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_Parse_NestedAndOrdered(t *testing.T) {
	t.Parallel()

	data := `
zeta: last-declared-first
config:
  value: 13
  enabled: true
  multi:
    item: [one, two]
  empty:
`

	doc, err := NewParser().Parse(strings.NewReader(data), ".")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"zeta",
		"config.value",
		"config.enabled",
		"config.multi.item",
		"config.empty",
	}, doc.Keys())

	val, ok := doc.Lookup("config.value")
	require.True(t, ok)
	assert.Equal(t, "13", val)

	val, ok = doc.Lookup("config.enabled")
	require.True(t, ok)
	assert.Equal(t, "true", val)

	val, ok = doc.Lookup("config.multi.item")
	require.True(t, ok)
	assert.Equal(t, []string{"one", "two"}, val)

	val, ok = doc.Lookup("config.empty")
	require.True(t, ok)
	assert.Equal(t, "", val)
}

func TestParser_Parse_Empty(t *testing.T) {
	t.Parallel()

	doc, err := NewParser().Parse(strings.NewReader(""), ".")
	require.NoError(t, err)
	assert.Equal(t, 0, doc.Len())
}

func TestParser_Parse_ScalarRoot(t *testing.T) {
	t.Parallel()

	_, err := NewParser().Parse(strings.NewReader("just a string"), ".")
	require.ErrorIs(t, err, ErrNotMapping)
}

func TestParser_Parse_Invalid(t *testing.T) {
	t.Parallel()

	_, err := NewParser().Parse(strings.NewReader("a: [unclosed"), ".")
	require.Error(t, err)
}
