package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tempus-hq/tempus-backend-go/internal/domain/punch"
	"github.com/tempus-hq/tempus-backend-go/internal/pkg/database"
)

const punchColumns = `id, user_id, timestamp, record_type, source, is_edited, comment, created_at, updated_at`

type punchRepositoryImpl struct {
	db *database.DB
}

func NewPunchRepository(db *database.DB) punch.Repository {
	return &punchRepositoryImpl{db: db}
}

func scanPunch(row pgx.Row) (punch.Punch, error) {
	var p punch.Punch
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Timestamp,
		&p.Kind,
		&p.Source,
		&p.IsEdited,
		&p.Comment,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

// Create implements punch.Repository.
func (r *punchRepositoryImpl) Create(ctx context.Context, p punch.Punch) (punch.Punch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO records (user_id, timestamp, record_type, source, is_edited, comment)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + punchColumns

	created, err := scanPunch(q.QueryRow(ctx, query,
		p.UserID,
		p.Timestamp.UTC(),
		string(p.Kind),
		string(p.Source),
		p.IsEdited,
		p.Comment,
	))
	if err != nil {
		return punch.Punch{}, fmt.Errorf("failed to create record: %w", err)
	}
	return created, nil
}

// GetByID implements punch.Repository.
func (r *punchRepositoryImpl) GetByID(ctx context.Context, id int64, userID int64) (punch.Punch, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + punchColumns + ` FROM records WHERE id = $1 AND user_id = $2`

	p, err := scanPunch(q.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return punch.Punch{}, punch.ErrPunchNotFound
		}
		return punch.Punch{}, fmt.Errorf("failed to get record: %w", err)
	}
	return p, nil
}

// FindInRange implements punch.Repository.
func (r *punchRepositoryImpl) FindInRange(ctx context.Context, userID int64, start, end time.Time) ([]punch.Punch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + punchColumns + `
		FROM records
		WHERE user_id = $1 AND timestamp >= $2 AND timestamp <= $3
		ORDER BY timestamp ASC, id ASC`

	rows, err := q.Query(ctx, query, userID, start.UTC(), end.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	punches := []punch.Punch{}
	for rows.Next() {
		p, err := scanPunch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		punches = append(punches, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate records: %w", err)
	}
	return punches, nil
}

// Update implements punch.Repository.
func (r *punchRepositoryImpl) Update(ctx context.Context, p punch.Punch) (punch.Punch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE records
		SET timestamp = $1, record_type = $2, is_edited = $3, comment = $4, updated_at = NOW()
		WHERE id = $5 AND user_id = $6
		RETURNING ` + punchColumns

	updated, err := scanPunch(q.QueryRow(ctx, query,
		p.Timestamp.UTC(),
		string(p.Kind),
		p.IsEdited,
		p.Comment,
		p.ID,
		p.UserID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return punch.Punch{}, punch.ErrPunchNotFound
		}
		return punch.Punch{}, fmt.Errorf("failed to update record: %w", err)
	}
	return updated, nil
}

// Delete implements punch.Repository.
func (r *punchRepositoryImpl) Delete(ctx context.Context, id int64, userID int64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM records WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return punch.ErrPunchNotFound
	}
	return nil
}
