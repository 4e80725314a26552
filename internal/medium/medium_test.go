package medium

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
)

// newMedia builds every backend that can run without external services
func newMedia(t *testing.T) map[string]Medium {
	t.Helper()

	dir, err := NewDir(t.TempDir())
	require.NoError(t, err)

	lite, err := OpenSQLite(filepath.Join(t.TempDir(), "market.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = lite.Close() })

	mr := miniredis.RunT(t)
	rds, err := ConnectRedis(context.Background(), RedisConfig{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = rds.Close() })

	media := map[string]Medium{
		"memory": NewMemory(),
		"dir":    dir,
		"sqlite": lite,
		"redis":  rds,
	}

	if uri := os.Getenv("MONGO_URI"); uri != "" {
		mg, err := ConnectMongo(context.Background(), MongoConfig{URI: uri, Database: "harvest_market_test"})
		require.NoError(t, err)
		t.Cleanup(func() { _ = mg.Close(context.Background()) })
		media["mongo"] = mg
	}
	return media
}

func TestKey(t *testing.T) {
	require.Equal(t, "market-auctions", Key("market", "auctions"))
}

func TestMedium_Contract(t *testing.T) {
	ctx := context.Background()

	for name, m := range newMedia(t) {
		m := m
		t.Run(name, func(t *testing.T) {
			key := "contract-" + name

			// absent key is not an error
			_, ok, err := m.Get(ctx, key)
			require.NoError(t, err)
			require.False(t, ok)

			require.NoError(t, m.Set(ctx, key, `[{"id":"a"}]`))
			v, ok, err := m.Get(ctx, key)
			require.NoError(t, err)
			require.True(t, ok)
			require.Equal(t, `[{"id":"a"}]`, v)

			// writes replace the whole value
			require.NoError(t, m.Set(ctx, key, `[]`))
			v, _, err = m.Get(ctx, key)
			require.NoError(t, err)
			require.Equal(t, `[]`, v)

			require.NoError(t, m.Delete(ctx, key))
			_, ok, err = m.Get(ctx, key)
			require.NoError(t, err)
			require.False(t, ok)

			// deleting an absent key is fine
			require.NoError(t, m.Delete(ctx, key))
		})
	}
}

func TestMemory_ConcurrentWrites(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		i := i
		go func() {
			defer wg.Done()
			require.NoError(t, m.Set(ctx, fmt.Sprintf("k-%d", i), "v"))
		}()
	}
	wg.Wait()

	require.Len(t, m.Keys(), 50)
}

func TestDir_KeysMapToDistinctFiles(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	d, err := NewDir(root)
	require.NoError(t, err)

	ctx := context.Background()
	keys := []string{"../escape", "a/b", "a_b", `a\b`, "..", "market-producers"}
	for i, k := range keys {
		require.NoError(t, d.Set(ctx, k, fmt.Sprintf("v%d", i)))
	}

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	require.Len(t, entries, len(keys))
	for _, e := range entries {
		require.False(t, e.IsDir())
	}
	_, err = os.Stat(filepath.Join(filepath.Dir(root), "escape.json"))
	require.True(t, os.IsNotExist(err))
	require.FileExists(t, filepath.Join(root, "market-producers.json"))

	for i, k := range keys {
		got, ok, err := d.Get(ctx, k)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, fmt.Sprintf("v%d", i), got, "key %q", k)
	}
}
