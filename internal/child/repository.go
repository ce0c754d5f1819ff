package child

import "context"

// Repository persists child profiles.
type Repository interface {
	Create(ctx context.Context, p Profile) (Profile, error)
	Get(ctx context.Context, id int64) (Profile, error)
	List(ctx context.Context) ([]Profile, error)
	Update(ctx context.Context, p Profile) (Profile, error)
	Delete(ctx context.Context, id int64) error
	// LatestByOwner returns the most recently created profile of userID.
	LatestByOwner(ctx context.Context, userID int64) (Profile, error)
	// Lookup returns the profiles that exist among ids, keyed by id.
	Lookup(ctx context.Context, ids []int64) (map[int64]Profile, error)
	SetMood(ctx context.Context, id int64, mood string) error
}
