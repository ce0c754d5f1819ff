package child

import "context"

// Resolver maps an external user id to that user's current child profile.
// Statistics lookups keyed by user go through it.
type Resolver struct {
	repo Repository
}

// NewResolver creates a resolver over repo.
func NewResolver(repo Repository) *Resolver {
	return &Resolver{repo: repo}
}

// ResolveChildByUser returns the most recently created profile owned by
// userID, or a NotFoundError when the user has none.
func (r *Resolver) ResolveChildByUser(ctx context.Context, userID int64) (Profile, error) {
	return r.repo.LatestByOwner(ctx, userID)
}
