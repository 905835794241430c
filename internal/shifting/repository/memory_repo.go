package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/error7buddy/KiLagbe.Com/internal/shifting/domain"
	"github.com/google/uuid"
)

type memoryOrder struct {
	order domain.Order
	seq   int64
}

type MemoryRepository struct {
	mu     sync.Mutex
	orders map[string]memoryOrder
	seq    int64
	now    func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		orders: make(map[string]memoryOrder),
		now:    time.Now,
	}
}

func (r *MemoryRepository) List(_ context.Context) ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := make([]memoryOrder, 0, len(r.orders))
	for _, m := range r.orders {
		items = append(items, m)
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].order.CreatedAt.Equal(items[j].order.CreatedAt) {
			return items[i].order.CreatedAt.After(items[j].order.CreatedAt)
		}
		return items[i].seq > items[j].seq
	})

	out := make([]domain.Order, 0, len(items))
	for _, m := range items {
		out = append(out, m.order)
	}
	return out, nil
}

func (r *MemoryRepository) Create(_ context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	order.ID = uuid.NewString()
	order.CreatedAt = now
	order.UpdatedAt = now

	r.seq++
	r.orders[order.ID] = memoryOrder{order: *order, seq: r.seq}
	return nil
}

func (r *MemoryRepository) SetStatus(_ context.Context, id string, status domain.Status) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	m.order.Status = status
	m.order.UpdatedAt = r.now()
	r.orders[id] = m

	out := m.order
	return &out, nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[id]; !ok {
		return domain.ErrOrderNotFound
	}
	delete(r.orders, id)
	return nil
}
