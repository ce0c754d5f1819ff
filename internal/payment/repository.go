package payment

import "context"

// Repository persists payments.
type Repository interface {
	Create(ctx context.Context, p Payment) (Payment, error)
	Get(ctx context.Context, id int64) (Payment, error)
	// List returns every payment, newest first.
	List(ctx context.Context) ([]Payment, error)
	Update(ctx context.Context, p Payment) (Payment, error)
	Delete(ctx context.Context, id int64) error
}
