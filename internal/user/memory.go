package user

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"daycare/internal/apperr"
)

type refreshToken struct {
	userID    int64
	expiresAt time.Time
	revoked   bool
}

// MemoryRepository keeps users in process memory.
type MemoryRepository struct {
	mu     sync.RWMutex
	nextID int64
	users  map[int64]User
	tokens map[string]*refreshToken
}

// NewMemoryRepository creates an empty repo.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		users:  make(map[int64]User),
		tokens: make(map[string]*refreshToken),
	}
}

func (r *MemoryRepository) Create(_ context.Context, u User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u.Email = strings.ToLower(u.Email)
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return User{}, ErrEmailTaken
		}
	}
	r.nextID++
	now := time.Now().UTC()
	u.ID, u.CreatedAt, u.UpdatedAt = r.nextID, now, now
	r.users[u.ID] = u
	return u, nil
}

func (r *MemoryRepository) Get(_ context.Context, id int64) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return User{}, apperr.NotFound("user %d not found", id)
	}
	return u, nil
}

func (r *MemoryRepository) GetByEmail(_ context.Context, email string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	email = strings.ToLower(email)
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return User{}, apperr.NotFound("no user with email %s", email)
}

func (r *MemoryRepository) ListByRole(_ context.Context, role Role) ([]User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	users := []User{}
	for _, u := range r.users {
		if u.Role == role {
			users = append(users, u)
		}
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].Name != users[j].Name {
			return users[i].Name < users[j].Name
		}
		return users[i].ID < users[j].ID
	})
	return users, nil
}

func (r *MemoryRepository) Lookup(_ context.Context, ids []int64) (map[int64]User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[int64]User, len(ids))
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

func (r *MemoryRepository) SaveRefreshToken(_ context.Context, userID int64, token string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token] = &refreshToken{userID: userID, expiresAt: expiresAt}
	return nil
}

func (r *MemoryRepository) RevokeRefreshToken(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.tokens[token]; ok {
		t.revoked = true
	}
	return nil
}

// Revoked reports whether token has been revoked.
func (r *MemoryRepository) Revoked(token string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tokens[token]
	return ok && t.revoked
}
