package repository

import (
	"context"
	"sync"
	"time"

	"github.com/error7buddy/KiLagbe.Com/internal/users/domain"
	"github.com/google/uuid"
)

type MemoryRepository struct {
	mu    sync.Mutex
	byUID map[string]domain.User
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byUID: make(map[string]domain.User)}
}

func (r *MemoryRepository) FindOrCreate(_ context.Context, firebaseUID, email string) (*domain.User, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, ok := r.byUID[firebaseUID]; ok {
		return &u, false, nil
	}

	u := domain.User{
		ID:          uuid.NewString(),
		FirebaseUID: firebaseUID,
		Email:       email,
		CreatedAt:   time.Now(),
	}
	r.byUID[firebaseUID] = u
	return &u, true, nil
}

// Len is the number of stored users.
func (r *MemoryRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byUID)
}
