package repository

import (
	"context"

	"github.com/error7buddy/KiLagbe.Com/internal/ads/domain"
)

// Repository persists advertisements.
type Repository interface {
	// List returns ads newest first; an empty ownerID lists every ad.
	List(ctx context.Context, ownerID string) ([]domain.Ad, error)
	GetByID(ctx context.Context, id string) (*domain.Ad, error)
	// CreateWithinLimit inserts ad only if its owner holds fewer than limit ads,
	// as one atomic step. It returns domain.ErrQuotaReached otherwise.
	CreateWithinLimit(ctx context.Context, ad *domain.Ad, limit int) error
	Update(ctx context.Context, id string, req domain.UpdateAdRequest) (*domain.Ad, error)
	Delete(ctx context.Context, id string) error
	CountByOwner(ctx context.Context, ownerID string) (int64, error)
}

// QuotaReconciler is implemented by backends that keep a per-owner counter
// apart from the ads themselves.
type QuotaReconciler interface {
	// ReconcileQuotas resets counters that drifted from the live ad count and
	// reports how many were corrected.
	ReconcileQuotas(ctx context.Context) (int, error)
}
