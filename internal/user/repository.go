package user

import (
	"context"
	"errors"
	"time"
)

// ErrEmailTaken is returned when an email is already registered.
var ErrEmailTaken = errors.New("email already registered")

// Repository persists users and their refresh tokens.
type Repository interface {
	Create(ctx context.Context, u User) (User, error)
	Get(ctx context.Context, id int64) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	ListByRole(ctx context.Context, role Role) ([]User, error)
	// Lookup returns the users that exist among ids, keyed by id.
	Lookup(ctx context.Context, ids []int64) (map[int64]User, error)
	SaveRefreshToken(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	RevokeRefreshToken(ctx context.Context, token string) error
}
