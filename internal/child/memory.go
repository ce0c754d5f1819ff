package child

import (
	"context"
	"sort"
	"sync"
	"time"

	"daycare/internal/apperr"
)

// MemoryRepository keeps profiles in process memory.
type MemoryRepository struct {
	mu       sync.RWMutex
	nextID   int64
	profiles map[int64]Profile
	now      func() time.Time
}

// NewMemoryRepository creates an empty repo.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		profiles: make(map[int64]Profile),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (r *MemoryRepository) Create(_ context.Context, p Profile) (Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	now := r.now()
	p.ID, p.CreatedAt, p.UpdatedAt = r.nextID, now, now
	r.profiles[p.ID] = p
	return p, nil
}

func (r *MemoryRepository) Get(_ context.Context, id int64) (Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[id]
	if !ok {
		return Profile{}, apperr.NotFound("child profile %d not found", id)
	}
	return p, nil
}

func (r *MemoryRepository) List(_ context.Context) ([]Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryRepository) Update(_ context.Context, p Profile) (Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	old, ok := r.profiles[p.ID]
	if !ok {
		return Profile{}, apperr.NotFound("child profile %d not found", p.ID)
	}
	p.CreatedAt, p.UpdatedAt = old.CreatedAt, r.now()
	r.profiles[p.ID] = p
	return p, nil
}

func (r *MemoryRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[id]; !ok {
		return apperr.NotFound("child profile %d not found", id)
	}
	delete(r.profiles, id)
	return nil
}

func (r *MemoryRepository) LatestByOwner(_ context.Context, userID int64) (Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var (
		latest Profile
		found  bool
	)
	for _, p := range r.profiles {
		if p.UserID != userID {
			continue
		}
		if !found || p.CreatedAt.After(latest.CreatedAt) || (p.CreatedAt.Equal(latest.CreatedAt) && p.ID > latest.ID) {
			latest, found = p, true
		}
	}
	if !found {
		return Profile{}, apperr.NotFound("Child profile not found for this user")
	}
	return latest, nil
}

func (r *MemoryRepository) Lookup(_ context.Context, ids []int64) (map[int64]Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[int64]Profile, len(ids))
	for _, id := range ids {
		if p, ok := r.profiles[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (r *MemoryRepository) SetMood(_ context.Context, id int64, mood string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		return apperr.NotFound("child profile %d not found", id)
	}
	p.Mood, p.UpdatedAt = mood, r.now()
	r.profiles[id] = p
	return nil
}
