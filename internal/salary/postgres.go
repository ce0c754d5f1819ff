package salary

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"daycare/internal/apperr"
)

const columns = `id, user_id, salary_date, basic_salary, over_time, fuel_allowance, net_salary, created_at, updated_at`

// PostgresRepository persists salaries in Postgres.
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a repo.
func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, s Salary) (Salary, error) {
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO salaries (user_id, salary_date, basic_salary, over_time, fuel_allowance, net_salary)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, s.UserID, s.SalaryDate, s.BasicSalary, s.OverTime, s.FuelAllowance, s.NetSalary).
		Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	return s, errors.Wrap(err, "insert salary")
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (Salary, error) {
	var s Salary
	err := r.db.GetContext(ctx, &s, `SELECT `+columns+` FROM salaries WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return Salary{}, apperr.NotFound("Salary %d not found", id)
	}
	return s, errors.Wrap(err, "get salary")
}

func (r *PostgresRepository) List(ctx context.Context) ([]Salary, error) {
	out := []Salary{}
	err := r.db.SelectContext(ctx, &out, `SELECT `+columns+` FROM salaries ORDER BY salary_date DESC, id DESC`)
	return out, errors.Wrap(err, "list salaries")
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]Salary, error) {
	out := []Salary{}
	err := r.db.SelectContext(ctx, &out, `
		SELECT `+columns+` FROM salaries WHERE user_id = $1 ORDER BY salary_date DESC, id DESC
	`, userID)
	return out, errors.Wrap(err, "list user salaries")
}

func (r *PostgresRepository) Update(ctx context.Context, s Salary) (Salary, error) {
	err := r.db.QueryRowxContext(ctx, `
		UPDATE salaries
		SET user_id = $2, salary_date = $3, basic_salary = $4, over_time = $5,
		    fuel_allowance = $6, net_salary = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at
	`, s.ID, s.UserID, s.SalaryDate, s.BasicSalary, s.OverTime, s.FuelAllowance, s.NetSalary).
		Scan(&s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Salary{}, apperr.NotFound("Salary %d not found", s.ID)
	}
	return s, errors.Wrap(err, "update salary")
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM salaries WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "delete salary")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("Salary %d not found", id)
	}
	return nil
}
