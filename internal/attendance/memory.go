package attendance

import (
	"context"
	"sort"
	"sync"
	"time"

	"daycare/internal/apperr"
	"daycare/internal/dates"
)

// MemoryRepository keeps one variant's records in process memory. Date
// uniqueness is enforced under its lock, like the table constraint.
type MemoryRepository struct {
	mu      sync.RWMutex
	variant Variant
	nextID  int64
	records map[int64]Record
}

// NewMemoryRepository creates an empty repo.
func NewMemoryRepository(v Variant) *MemoryRepository {
	return &MemoryRepository{variant: v, records: make(map[int64]Record)}
}

func (r *MemoryRepository) Create(_ context.Context, rec Record) (Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.dateTaken(rec.Date, 0) {
		return Record{}, ErrDateTaken
	}
	r.nextID++
	now := time.Now().UTC()
	rec.ID, rec.CreatedAt, rec.UpdatedAt = r.nextID, now, now
	rec.Entries = copyEntries(rec.Entries)
	r.records[rec.ID] = rec
	return rec, nil
}

func (r *MemoryRepository) Get(_ context.Context, id int64) (Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[id]
	if !ok {
		return Record{}, apperr.NotFound("%s record %d not found", r.variant.Noun, id)
	}
	rec.Entries = copyEntries(rec.Entries)
	return rec, nil
}

func (r *MemoryRepository) List(_ context.Context) ([]Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Record, 0, len(r.records))
	for _, rec := range r.records {
		rec.Entries = copyEntries(rec.Entries)
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[j].Date.Before(out[i].Date)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *MemoryRepository) Update(_ context.Context, rec Record) (Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	old, ok := r.records[rec.ID]
	if !ok {
		return Record{}, apperr.NotFound("%s record %d not found", r.variant.Noun, rec.ID)
	}
	if r.dateTaken(rec.Date, rec.ID) {
		return Record{}, ErrDateTaken
	}
	rec.CreatedAt, rec.UpdatedAt = old.CreatedAt, time.Now().UTC()
	rec.Entries = copyEntries(rec.Entries)
	r.records[rec.ID] = rec
	return rec, nil
}

func (r *MemoryRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[id]; !ok {
		return apperr.NotFound("%s record %d not found", r.variant.Noun, id)
	}
	delete(r.records, id)
	return nil
}

func (r *MemoryRepository) DateTaken(_ context.Context, date dates.Date, exceptID int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.dateTaken(date, exceptID), nil
}

func (r *MemoryRepository) dateTaken(date dates.Date, exceptID int64) bool {
	for id, rec := range r.records {
		if id != exceptID && rec.Date.Equal(date) {
			return true
		}
	}
	return false
}

func copyEntries(e Entries) Entries {
	out := make(Entries, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}
