package attendance

import (
	"context"
	"errors"

	"daycare/internal/dates"
)

// ErrDateTaken is returned when a record already exists for the date.
var ErrDateTaken = errors.New("date already has an attendance record")

// Repository persists the records of one variant.
type Repository interface {
	Create(ctx context.Context, rec Record) (Record, error)
	Get(ctx context.Context, id int64) (Record, error)
	// List returns every record, newest date first.
	List(ctx context.Context) ([]Record, error)
	Update(ctx context.Context, rec Record) (Record, error)
	Delete(ctx context.Context, id int64) error
	// DateTaken reports whether a record other than exceptID uses date.
	DateTaken(ctx context.Context, date dates.Date, exceptID int64) (bool, error)
}
