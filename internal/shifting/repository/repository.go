package repository

import (
	"context"

	"github.com/error7buddy/KiLagbe.Com/internal/shifting/domain"
)

// Repository persists shifting orders.
type Repository interface {
	// List returns every order, newest first.
	List(ctx context.Context) ([]domain.Order, error)
	Create(ctx context.Context, order *domain.Order) error
	SetStatus(ctx context.Context, id string, status domain.Status) (*domain.Order, error)
	Delete(ctx context.Context, id string) error
}
