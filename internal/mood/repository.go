package mood

import (
	"context"

	"daycare/internal/dates"
)

// Repository persists mood records.
type Repository interface {
	Create(ctx context.Context, rec Record) (Record, error)
	Get(ctx context.Context, id int64) (Record, error)
	// List returns every record, newest date first.
	List(ctx context.Context) ([]Record, error)
	// ListByDate returns the records dated d in creation order.
	ListByDate(ctx context.Context, d dates.Date) ([]Record, error)
	Update(ctx context.Context, rec Record) (Record, error)
	Delete(ctx context.Context, id int64) error
}
