package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/error7buddy/KiLagbe.Com/internal/ads/domain"
	"github.com/google/uuid"
)

type memoryAd struct {
	ad  domain.Ad
	seq int64
}

// MemoryRepository keeps ads in process memory. Used by STORE_DRIVER=memory and tests.
type MemoryRepository struct {
	mu  sync.Mutex
	ads map[string]memoryAd
	seq int64
	now func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		ads: make(map[string]memoryAd),
		now: time.Now,
	}
}

func (r *MemoryRepository) List(_ context.Context, ownerID string) ([]domain.Ad, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := make([]memoryAd, 0, len(r.ads))
	for _, m := range r.ads {
		if ownerID != "" && m.ad.UserID != ownerID {
			continue
		}
		items = append(items, m)
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].ad.CreatedAt.Equal(items[j].ad.CreatedAt) {
			return items[i].ad.CreatedAt.After(items[j].ad.CreatedAt)
		}
		return items[i].seq > items[j].seq
	})

	out := make([]domain.Ad, 0, len(items))
	for _, m := range items {
		out = append(out, cloneAd(m.ad))
	}
	return out, nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*domain.Ad, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.ads[id]
	if !ok {
		return nil, domain.ErrAdNotFound
	}
	ad := cloneAd(m.ad)
	return &ad, nil
}

func (r *MemoryRepository) CreateWithinLimit(_ context.Context, ad *domain.Ad, limit int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.countLocked(ad.UserID) >= int64(limit) {
		return domain.ErrQuotaReached
	}

	now := r.now()
	ad.ID = uuid.NewString()
	ad.CreatedAt = now
	ad.UpdatedAt = now
	if ad.Images == nil {
		ad.Images = []string{}
	}

	r.seq++
	r.ads[ad.ID] = memoryAd{ad: cloneAd(*ad), seq: r.seq}
	return nil
}

func (r *MemoryRepository) Update(_ context.Context, id string, req domain.UpdateAdRequest) (*domain.Ad, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.ads[id]
	if !ok {
		return nil, domain.ErrAdNotFound
	}
	req.Apply(&m.ad, r.now())
	r.ads[id] = m

	ad := cloneAd(m.ad)
	return &ad, nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.ads[id]; !ok {
		return domain.ErrAdNotFound
	}
	delete(r.ads, id)
	return nil
}

func (r *MemoryRepository) CountByOwner(_ context.Context, ownerID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.countLocked(ownerID), nil
}

func (r *MemoryRepository) countLocked(ownerID string) int64 {
	var n int64
	for _, m := range r.ads {
		if m.ad.UserID == ownerID {
			n++
		}
	}
	return n
}

func cloneAd(ad domain.Ad) domain.Ad {
	ad.Images = append([]string{}, ad.Images...)
	return ad
}
