package mood

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"daycare/internal/apperr"
	"daycare/internal/dates"
)

// PostgresRepository persists mood records in Postgres.
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a repo.
func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, rec Record) (Record, error) {
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO moods (date, mood) VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`, rec.Date, rec.Entries).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
	return rec, errors.Wrap(err, "insert mood")
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (Record, error) {
	var rec Record
	err := r.db.GetContext(ctx, &rec, `
		SELECT id, date, mood, created_at, updated_at FROM moods WHERE id = $1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, apperr.NotFound("Mood record %d not found", id)
	}
	return rec, errors.Wrap(err, "get mood")
}

func (r *PostgresRepository) List(ctx context.Context) ([]Record, error) {
	records := []Record{}
	err := r.db.SelectContext(ctx, &records, `
		SELECT id, date, mood, created_at, updated_at FROM moods ORDER BY date DESC, id DESC
	`)
	return records, errors.Wrap(err, "list moods")
}

func (r *PostgresRepository) ListByDate(ctx context.Context, d dates.Date) ([]Record, error) {
	records := []Record{}
	err := r.db.SelectContext(ctx, &records, `
		SELECT id, date, mood, created_at, updated_at FROM moods WHERE date = $1 ORDER BY id
	`, d)
	return records, errors.Wrap(err, "list moods by date")
}

func (r *PostgresRepository) Update(ctx context.Context, rec Record) (Record, error) {
	err := r.db.QueryRowxContext(ctx, `
		UPDATE moods SET date = $2, mood = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at
	`, rec.ID, rec.Date, rec.Entries).Scan(&rec.CreatedAt, &rec.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, apperr.NotFound("Mood record %d not found", rec.ID)
	}
	return rec, errors.Wrap(err, "update mood")
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM moods WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "delete mood")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("Mood record %d not found", id)
	}
	return nil
}
