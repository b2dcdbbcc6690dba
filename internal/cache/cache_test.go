package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryClient(t *testing.T) {
	ctx := context.Background()
	c := NewMemory("test", time.Minute)
	assert.Equal(t, "memory", c.Driver())
	require.NoError(t, c.Ping(ctx))

	_, err := c.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	value := []byte("hello")
	require.NoError(t, c.Set(ctx, "k", value, 0))
	value[0] = 'j'

	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(got), "stored value is a copy")

	require.NoError(t, c.Delete(ctx, "k", "never-set"))
	_, err = c.Get(ctx, "k")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryClientExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemory("", time.Minute)

	require.NoError(t, c.Set(ctx, "short", []byte("x"), 10*time.Millisecond))
	time.Sleep(30 * time.Millisecond)

	_, err := c.Get(ctx, "short")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	c := NewMemory("json", time.Minute)

	type item struct {
		Name  string  `json:"name"`
		Price float64 `json:"price"`
	}
	require.NoError(t, SetJSON(ctx, c, "item", []item{{Name: "hammer", Price: 12.5}}, 0))

	var got []item
	require.NoError(t, GetJSON(ctx, c, "item", &got))
	assert.Equal(t, []item{{Name: "hammer", Price: 12.5}}, got)

	require.ErrorIs(t, GetJSON(ctx, c, "other", &got), ErrNotFound)
}

func TestPrefixed(t *testing.T) {
	assert.Equal(t, "k", prefixed("", "k"))
	assert.Equal(t, "inv:k", prefixed("inv", "k"))
}
