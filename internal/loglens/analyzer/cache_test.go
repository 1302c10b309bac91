package analyzer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_HitReturnsSameResult(t *testing.T) {
	cache := NewCache("v1")
	text := apacheLine("10.0.0.1", "GET", "/index.html", 200, 2048,
		time.Date(2025, 10, 10, 14, 0, 0, 0, time.UTC)) + "\n"

	first, err := Analyze(context.Background(), text, Options{Cache: cache})
	require.NoError(t, err)
	second, err := Analyze(context.Background(), text, Options{Cache: cache})
	require.NoError(t, err)

	assert.Same(t, first, second, "second call must resolve from the cache")
}

func TestCache_DistinctInputsMiss(t *testing.T) {
	cache := NewCache("v1")
	at := time.Date(2025, 10, 10, 14, 0, 0, 0, time.UTC)

	a, err := Analyze(context.Background(),
		apacheLine("10.0.0.1", "GET", "/a", 200, 100, at)+"\n", Options{Cache: cache})
	require.NoError(t, err)
	b, err := Analyze(context.Background(),
		apacheLine("10.0.0.2", "GET", "/b", 200, 100, at)+"\n", Options{Cache: cache})
	require.NoError(t, err)

	assert.NotSame(t, a, b)
}

func TestCache_SetVersionInvalidates(t *testing.T) {
	cache := NewCache("v1")
	text := apacheLine("10.0.0.1", "GET", "/index.html", 200, 2048,
		time.Date(2025, 10, 10, 14, 0, 0, 0, time.UTC)) + "\n"

	first, err := Analyze(context.Background(), text, Options{Cache: cache})
	require.NoError(t, err)

	cache.SetVersion("v2")

	second, err := Analyze(context.Background(), text, Options{Cache: cache})
	require.NoError(t, err)
	assert.NotSame(t, first, second, "version bump must drop prior entries")

	// bumping to the same version keeps entries
	cache.SetVersion("v2")
	third, err := Analyze(context.Background(), text, Options{Cache: cache})
	require.NoError(t, err)
	assert.Same(t, second, third)
}
