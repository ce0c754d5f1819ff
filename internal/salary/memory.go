package salary

import (
	"context"
	"sort"
	"sync"
	"time"

	"daycare/internal/apperr"
)

// MemoryRepository keeps salaries in process memory.
type MemoryRepository struct {
	mu       sync.RWMutex
	nextID   int64
	salaries map[int64]Salary
}

// NewMemoryRepository creates an empty repo.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{salaries: make(map[int64]Salary)}
}

func (r *MemoryRepository) Create(_ context.Context, s Salary) (Salary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	now := time.Now().UTC()
	s.ID, s.CreatedAt, s.UpdatedAt = r.nextID, now, now
	r.salaries[s.ID] = s
	return s, nil
}

func (r *MemoryRepository) Get(_ context.Context, id int64) (Salary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.salaries[id]
	if !ok {
		return Salary{}, apperr.NotFound("Salary %d not found", id)
	}
	return s, nil
}

func (r *MemoryRepository) List(_ context.Context) ([]Salary, error) {
	return r.filter(func(Salary) bool { return true }), nil
}

func (r *MemoryRepository) ListByUser(_ context.Context, userID int64) ([]Salary, error) {
	return r.filter(func(s Salary) bool { return s.UserID == userID }), nil
}

func (r *MemoryRepository) Update(_ context.Context, s Salary) (Salary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	old, ok := r.salaries[s.ID]
	if !ok {
		return Salary{}, apperr.NotFound("Salary %d not found", s.ID)
	}
	s.CreatedAt, s.UpdatedAt = old.CreatedAt, time.Now().UTC()
	r.salaries[s.ID] = s
	return s, nil
}

func (r *MemoryRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.salaries[id]; !ok {
		return apperr.NotFound("Salary %d not found", id)
	}
	delete(r.salaries, id)
	return nil
}

func (r *MemoryRepository) filter(keep func(Salary) bool) []Salary {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []Salary{}
	for _, s := range r.salaries {
		if keep(s) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].SalaryDate.Equal(out[j].SalaryDate) {
			return out[j].SalaryDate.Before(out[i].SalaryDate)
		}
		return out[i].ID > out[j].ID
	})
	return out
}
