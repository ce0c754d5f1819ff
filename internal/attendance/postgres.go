package attendance

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"daycare/internal/apperr"
	"daycare/internal/dates"
	"daycare/internal/store"
)

// PostgresRepository persists attendance data in Postgres.
type PostgresRepository struct {
	db      *sqlx.DB
	variant Variant
}

// NewPostgresRepository creates a repo over the variant's table.
func NewPostgresRepository(db *sqlx.DB, v Variant) *PostgresRepository {
	return &PostgresRepository{db: db, variant: v}
}

func (r *PostgresRepository) q(query string) string {
	return fmt.Sprintf(query, r.variant.Table)
}

func (r *PostgresRepository) Create(ctx context.Context, rec Record) (Record, error) {
	err := r.db.QueryRowxContext(ctx, r.q(`
		INSERT INTO %s (date, attendance)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`), rec.Date, rec.Entries).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
	if store.IsUniqueViolation(err, r.variant.DateConstraint) {
		return Record{}, ErrDateTaken
	}
	return rec, errors.Wrapf(err, "insert %s", r.variant.Kind)
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (Record, error) {
	var rec Record
	err := r.db.GetContext(ctx, &rec, r.q(`
		SELECT id, date, attendance, created_at, updated_at FROM %s WHERE id = $1
	`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, apperr.NotFound("%s record %d not found", r.variant.Noun, id)
	}
	return rec, errors.Wrapf(err, "get %s", r.variant.Kind)
}

func (r *PostgresRepository) List(ctx context.Context) ([]Record, error) {
	records := []Record{}
	err := r.db.SelectContext(ctx, &records, r.q(`
		SELECT id, date, attendance, created_at, updated_at FROM %s ORDER BY date DESC, id DESC
	`))
	return records, errors.Wrapf(err, "list %s", r.variant.Kind)
}

func (r *PostgresRepository) Update(ctx context.Context, rec Record) (Record, error) {
	err := r.db.QueryRowxContext(ctx, r.q(`
		UPDATE %s SET date = $2, attendance = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at
	`), rec.ID, rec.Date, rec.Entries).Scan(&rec.CreatedAt, &rec.UpdatedAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return Record{}, apperr.NotFound("%s record %d not found", r.variant.Noun, rec.ID)
	case store.IsUniqueViolation(err, r.variant.DateConstraint):
		return Record{}, ErrDateTaken
	}
	return rec, errors.Wrapf(err, "update %s", r.variant.Kind)
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, r.q(`DELETE FROM %s WHERE id = $1`), id)
	if err != nil {
		return errors.Wrapf(err, "delete %s", r.variant.Kind)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("%s record %d not found", r.variant.Noun, id)
	}
	return nil
}

func (r *PostgresRepository) DateTaken(ctx context.Context, date dates.Date, exceptID int64) (bool, error) {
	var taken bool
	err := r.db.GetContext(ctx, &taken, r.q(`
		SELECT EXISTS (SELECT 1 FROM %s WHERE date = $1 AND id <> $2)
	`), date, exceptID)
	return taken, errors.Wrapf(err, "check %s date", r.variant.Kind)
}
