package payment

import (
	"context"
	"sort"
	"sync"
	"time"

	"daycare/internal/apperr"
)

// MemoryRepository keeps payments in process memory.
type MemoryRepository struct {
	mu       sync.RWMutex
	nextID   int64
	payments map[int64]Payment
}

// NewMemoryRepository creates an empty repo.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{payments: make(map[int64]Payment)}
}

func (r *MemoryRepository) Create(_ context.Context, p Payment) (Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	now := time.Now().UTC()
	p.ID, p.CreatedAt, p.UpdatedAt = r.nextID, now, now
	p.Courses = append(Courses(nil), p.Courses...)
	r.payments[p.ID] = p
	return p, nil
}

func (r *MemoryRepository) Get(_ context.Context, id int64) (Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.payments[id]
	if !ok {
		return Payment{}, apperr.NotFound("Payment %d not found", id)
	}
	return p, nil
}

func (r *MemoryRepository) List(_ context.Context) ([]Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Payment, 0, len(r.payments))
	for _, p := range r.payments {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *MemoryRepository) Update(_ context.Context, p Payment) (Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	old, ok := r.payments[p.ID]
	if !ok {
		return Payment{}, apperr.NotFound("Payment %d not found", p.ID)
	}
	p.CreatedAt, p.UpdatedAt = old.CreatedAt, time.Now().UTC()
	p.Courses = append(Courses(nil), p.Courses...)
	r.payments[p.ID] = p
	return p, nil
}

func (r *MemoryRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.payments[id]; !ok {
		return apperr.NotFound("Payment %d not found", id)
	}
	delete(r.payments, id)
	return nil
}
