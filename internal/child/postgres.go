package child

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"daycare/internal/apperr"
)

const profileColumns = `id, user_id, name, profile_pic, profile_pic_id, age, mood,
	behavioural_overview, learning_progress, created_at, updated_at`

// PostgresRepository persists profiles in Postgres.
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a repo.
func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, p Profile) (Profile, error) {
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO child_profiles (user_id, name, profile_pic, profile_pic_id, age, mood, behavioural_overview, learning_progress)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`, p.UserID, p.Name, p.ProfilePic, p.ProfilePicID, p.Age, p.Mood, p.BehaviouralOverview, p.LearningProgress).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	return p, errors.Wrap(err, "insert child profile")
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (Profile, error) {
	var p Profile
	err := r.db.GetContext(ctx, &p, `SELECT `+profileColumns+` FROM child_profiles WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return Profile{}, apperr.NotFound("child profile %d not found", id)
	}
	return p, errors.Wrap(err, "get child profile")
}

func (r *PostgresRepository) List(ctx context.Context) ([]Profile, error) {
	profiles := []Profile{}
	err := r.db.SelectContext(ctx, &profiles, `SELECT `+profileColumns+` FROM child_profiles ORDER BY id`)
	return profiles, errors.Wrap(err, "list child profiles")
}

func (r *PostgresRepository) Update(ctx context.Context, p Profile) (Profile, error) {
	err := r.db.QueryRowxContext(ctx, `
		UPDATE child_profiles
		SET user_id = $2, name = $3, profile_pic = $4, profile_pic_id = $5, age = $6, mood = $7,
			behavioural_overview = $8, learning_progress = $9, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`, p.ID, p.UserID, p.Name, p.ProfilePic, p.ProfilePicID, p.Age, p.Mood, p.BehaviouralOverview, p.LearningProgress).
		Scan(&p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Profile{}, apperr.NotFound("child profile %d not found", p.ID)
	}
	return p, errors.Wrap(err, "update child profile")
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM child_profiles WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "delete child profile")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("child profile %d not found", id)
	}
	return nil
}

func (r *PostgresRepository) LatestByOwner(ctx context.Context, userID int64) (Profile, error) {
	var p Profile
	err := r.db.GetContext(ctx, &p, `
		SELECT `+profileColumns+`
		FROM child_profiles
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return Profile{}, apperr.NotFound("Child profile not found for this user")
	}
	return p, errors.Wrap(err, "latest child profile")
}

func (r *PostgresRepository) Lookup(ctx context.Context, ids []int64) (map[int64]Profile, error) {
	out := make(map[int64]Profile, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	query, args, err := sqlx.In(`SELECT `+profileColumns+` FROM child_profiles WHERE id IN (?)`, ids)
	if err != nil {
		return nil, errors.Wrap(err, "build child profile lookup")
	}
	var profiles []Profile
	if err := r.db.SelectContext(ctx, &profiles, r.db.Rebind(query), args...); err != nil {
		return nil, errors.Wrap(err, "lookup child profiles")
	}
	for _, p := range profiles {
		out[p.ID] = p
	}
	return out, nil
}

func (r *PostgresRepository) SetMood(ctx context.Context, id int64, mood string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE child_profiles SET mood = $2, updated_at = NOW() WHERE id = $1`, id, mood)
	if err != nil {
		return errors.Wrap(err, "set child mood")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("child profile %d not found", id)
	}
	return nil
}
