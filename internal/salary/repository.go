package salary

import "context"

// Repository persists salaries.
type Repository interface {
	Create(ctx context.Context, s Salary) (Salary, error)
	Get(ctx context.Context, id int64) (Salary, error)
	// List returns every salary, latest salary date first.
	List(ctx context.Context) ([]Salary, error)
	// ListByUser returns userID's salaries, latest salary date first.
	ListByUser(ctx context.Context, userID int64) ([]Salary, error)
	Update(ctx context.Context, s Salary) (Salary, error)
	Delete(ctx context.Context, id int64) error
}
