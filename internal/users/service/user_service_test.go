package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/error7buddy/KiLagbe.Com/internal/common"
	"github.com/error7buddy/KiLagbe.Com/internal/logger"
	"github.com/error7buddy/KiLagbe.Com/internal/users/domain"
	"github.com/error7buddy/KiLagbe.Com/internal/users/repository"
)

func TestUserService_FindOrCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("requires a user id", func(t *testing.T) {
		svc := NewUserService(repository.NewMemoryRepository(), logger.Discard())

		_, _, err := svc.FindOrCreate(ctx, domain.FindOrCreateRequest{UserID: "  ", Email: "a@b.c"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, common.ErrValidation))
		assert.Equal(t, "User ID is required", err.Error())
	})

	t.Run("second call returns the same record unchanged", func(t *testing.T) {
		repo := repository.NewMemoryRepository()
		svc := NewUserService(repo, logger.Discard())

		first, created, err := svc.FindOrCreate(ctx, domain.FindOrCreateRequest{UserID: "uid-1", Email: "first@example.com"})
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, 0, first.TotalAdsPosted)

		second, created, err := svc.FindOrCreate(ctx, domain.FindOrCreateRequest{UserID: "uid-1", Email: "other@example.com"})
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, "first@example.com", second.Email)
		assert.Equal(t, 1, repo.Len())
	})

	t.Run("concurrent calls create one record", func(t *testing.T) {
		repo := repository.NewMemoryRepository()
		svc := NewUserService(repo, logger.Discard())

		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			created int
		)
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, c, err := svc.FindOrCreate(ctx, domain.FindOrCreateRequest{UserID: "uid-2"})
				assert.NoError(t, err)
				if c {
					mu.Lock()
					created++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, created)
		assert.Equal(t, 1, repo.Len())
	})
}
