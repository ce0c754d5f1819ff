package mood

import (
	"context"
	"sort"
	"sync"
	"time"

	"daycare/internal/apperr"
	"daycare/internal/dates"
)

// MemoryRepository keeps mood records in process memory.
type MemoryRepository struct {
	mu      sync.RWMutex
	nextID  int64
	records map[int64]Record
}

// NewMemoryRepository creates an empty repo.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{records: make(map[int64]Record)}
}

func (r *MemoryRepository) Create(_ context.Context, rec Record) (Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	now := time.Now().UTC()
	rec.ID, rec.CreatedAt, rec.UpdatedAt = r.nextID, now, now
	rec.Entries = append(Entries(nil), rec.Entries...)
	r.records[rec.ID] = rec
	return rec, nil
}

func (r *MemoryRepository) Get(_ context.Context, id int64) (Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[id]
	if !ok {
		return Record{}, apperr.NotFound("Mood record %d not found", id)
	}
	rec.Entries = append(Entries(nil), rec.Entries...)
	return rec, nil
}

func (r *MemoryRepository) List(_ context.Context) ([]Record, error) {
	out := r.filter(func(Record) bool { return true })
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[j].Date.Before(out[i].Date)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *MemoryRepository) ListByDate(_ context.Context, d dates.Date) ([]Record, error) {
	out := r.filter(func(rec Record) bool { return rec.Date.Equal(d) })
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryRepository) Update(_ context.Context, rec Record) (Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	old, ok := r.records[rec.ID]
	if !ok {
		return Record{}, apperr.NotFound("Mood record %d not found", rec.ID)
	}
	rec.CreatedAt, rec.UpdatedAt = old.CreatedAt, time.Now().UTC()
	rec.Entries = append(Entries(nil), rec.Entries...)
	r.records[rec.ID] = rec
	return rec, nil
}

func (r *MemoryRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[id]; !ok {
		return apperr.NotFound("Mood record %d not found", id)
	}
	delete(r.records, id)
	return nil
}

func (r *MemoryRepository) filter(keep func(Record) bool) []Record {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Record, 0, len(r.records))
	for _, rec := range r.records {
		if keep(rec) {
			rec.Entries = append(Entries(nil), rec.Entries...)
			out = append(out, rec)
		}
	}
	return out
}
