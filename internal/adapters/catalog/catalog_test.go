package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dsaudit/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Libraries: []config.Library{
			{Name: "Design Components", Enabled: true, ComponentKeys: []string{"btn"}, CollectionKeys: []string{"colors"}},
			{Name: "Legacy", Enabled: false, ComponentKeys: []string{"old-btn"}, CollectionKeys: []string{"old-colors"}},
		},
	}
}

func TestCatalog_Lookups(t *testing.T) {
	c := New(testConfig())

	name, ok := c.ComponentLibrary("btn")
	assert.True(t, ok)
	assert.Equal(t, "Design Components", name)

	_, ok = c.ComponentLibrary("missing")
	assert.False(t, ok)

	name, ok = c.CollectionLibrary("old-colors")
	assert.True(t, ok)
	assert.Equal(t, "Legacy", name)
}

func TestCatalog_IsEnabledLibrary(t *testing.T) {
	c := New(testConfig())
	ctx := context.Background()

	enabled, err := c.IsEnabledLibrary(ctx, "colors")
	require.NoError(t, err)
	assert.True(t, enabled)

	enabled, err = c.IsEnabledLibrary(ctx, "old-colors")
	require.NoError(t, err)
	assert.False(t, enabled)

	enabled, err = c.IsEnabledLibrary(ctx, "unknown")
	require.NoError(t, err)
	assert.False(t, enabled)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = c.IsEnabledLibrary(cancelled, "colors")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCatalog_Libraries(t *testing.T) {
	libs := New(testConfig()).Libraries()
	require.Len(t, libs, 2)
	assert.Equal(t, "Design Components", libs[0].Name)
	assert.Equal(t, 1, libs[0].ComponentKeys)
	assert.Equal(t, 1, libs[0].CollectionKeys)
	assert.False(t, libs[1].Enabled)

	assert.Empty(t, New(nil).Libraries())
}
