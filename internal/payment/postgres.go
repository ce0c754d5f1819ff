package payment

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"daycare/internal/apperr"
)

const columns = `id, user_id, courses, total_amount, status, created_at, updated_at`

// PostgresRepository persists payments in Postgres.
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a repo.
func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, p Payment) (Payment, error) {
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO payments (user_id, courses, total_amount, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, p.UserID, p.Courses, p.TotalAmount, p.Status).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	return p, errors.Wrap(err, "insert payment")
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (Payment, error) {
	var p Payment
	err := r.db.GetContext(ctx, &p, `SELECT `+columns+` FROM payments WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return Payment{}, apperr.NotFound("Payment %d not found", id)
	}
	return p, errors.Wrap(err, "get payment")
}

func (r *PostgresRepository) List(ctx context.Context) ([]Payment, error) {
	payments := []Payment{}
	err := r.db.SelectContext(ctx, &payments, `SELECT `+columns+` FROM payments ORDER BY created_at DESC, id DESC`)
	return payments, errors.Wrap(err, "list payments")
}

func (r *PostgresRepository) Update(ctx context.Context, p Payment) (Payment, error) {
	err := r.db.QueryRowxContext(ctx, `
		UPDATE payments SET user_id = $2, courses = $3, total_amount = $4, status = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at
	`, p.ID, p.UserID, p.Courses, p.TotalAmount, p.Status).Scan(&p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Payment{}, apperr.NotFound("Payment %d not found", p.ID)
	}
	return p, errors.Wrap(err, "update payment")
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "delete payment")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("Payment %d not found", id)
	}
	return nil
}
