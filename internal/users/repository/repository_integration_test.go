package repository

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mongostore "github.com/error7buddy/KiLagbe.Com/internal/storage/mongo"
	pgstore "github.com/error7buddy/KiLagbe.Com/internal/storage/postgres"
)

func backends(t *testing.T) map[string]Repository {
	t.Helper()
	ctx := context.Background()

	out := map[string]Repository{"memory": NewMemoryRepository()}

	if uri := os.Getenv("TEST_MONGO_URI"); uri != "" {
		store, err := mongostore.Connect(ctx, mongostore.Options{
			URI:      uri,
			Database: fmt.Sprintf("kilagbe_users_test_%d", time.Now().UnixNano()),
		})
		require.NoError(t, err)
		t.Cleanup(func() {
			_ = store.DB.Drop(context.Background())
			_ = store.Close(context.Background())
		})
		out["mongo"] = NewMongoRepository(store.DB)
	}

	if dsn := os.Getenv("TEST_DB_DSN"); dsn != "" {
		pool, err := pgstore.Open(ctx, pgstore.Options{DSN: dsn})
		require.NoError(t, err)
		require.NoError(t, pgstore.Migrate(ctx, pool))
		t.Cleanup(pool.Close)
		out["postgres"] = NewPostgresRepository(pool)
	}

	return out
}

func TestFindOrCreate_OneRecordPerIdentity(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			uid := fmt.Sprintf("uid-%d", time.Now().UnixNano())

			var (
				wg      sync.WaitGroup
				mu      sync.Mutex
				created int
				ids     = map[string]struct{}{}
			)
			for i := 0; i < 8; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					u, c, err := repo.FindOrCreate(ctx, uid, fmt.Sprintf("u%d@example.com", i))
					if !assert.NoError(t, err) {
						return
					}
					mu.Lock()
					defer mu.Unlock()
					ids[u.ID] = struct{}{}
					if c {
						created++
					}
				}(i)
			}
			wg.Wait()

			assert.Equal(t, 1, created)
			assert.Len(t, ids, 1)

			u, c, err := repo.FindOrCreate(ctx, uid, "late@example.com")
			require.NoError(t, err)
			assert.False(t, c)
			assert.NotEqual(t, "late@example.com", u.Email)
			assert.Equal(t, 0, u.TotalAdsPosted)
		})
	}
}
