package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tempus-hq/tempus-backend-go/internal/domain/punch"
)

const punchColumns = `id, user_id, timestamp_ms, record_type, source, is_edited, comment, created_at, updated_at`

// PunchRepo implements punch.Repository on SQLite.
type PunchRepo struct {
	db *sql.DB
}

func NewPunchRepository(db *sql.DB) *PunchRepo {
	return &PunchRepo{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPunch(row rowScanner) (punch.Punch, error) {
	var (
		p                        punch.Punch
		ts, createdAt, updatedAt int64
		kind, source             string
		isEdited                 int
		comment                  sql.NullString
	)
	if err := row.Scan(&p.ID, &p.UserID, &ts, &kind, &source, &isEdited, &comment, &createdAt, &updatedAt); err != nil {
		return punch.Punch{}, err
	}
	p.Timestamp = fromMillis(ts)
	p.Kind = punch.Kind(kind)
	p.Source = punch.Source(source)
	p.IsEdited = isEdited != 0
	if comment.Valid {
		p.Comment = &comment.String
	}
	p.CreatedAt = fromMillis(createdAt)
	p.UpdatedAt = fromMillis(updatedAt)
	return p, nil
}

func (r *PunchRepo) Create(ctx context.Context, p punch.Punch) (punch.Punch, error) {
	now := toMillis(time.Now())
	query := `INSERT INTO records (user_id, timestamp_ms, record_type, source, is_edited, comment, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING ` + punchColumns

	created, err := scanPunch(querier(ctx, r.db).QueryRowContext(ctx, query,
		p.UserID,
		toMillis(p.Timestamp),
		string(p.Kind),
		string(p.Source),
		boolToInt(p.IsEdited),
		p.Comment,
		now,
		now,
	))
	if err != nil {
		return punch.Punch{}, fmt.Errorf("inserting record: %w", err)
	}
	return created, nil
}

func (r *PunchRepo) GetByID(ctx context.Context, id int64, userID int64) (punch.Punch, error) {
	query := `SELECT ` + punchColumns + ` FROM records WHERE id = ? AND user_id = ?`

	p, err := scanPunch(querier(ctx, r.db).QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return punch.Punch{}, punch.ErrPunchNotFound
		}
		return punch.Punch{}, fmt.Errorf("getting record: %w", err)
	}
	return p, nil
}

func (r *PunchRepo) FindInRange(ctx context.Context, userID int64, start, end time.Time) ([]punch.Punch, error) {
	query := `SELECT ` + punchColumns + `
		FROM records
		WHERE user_id = ? AND timestamp_ms >= ? AND timestamp_ms <= ?
		ORDER BY timestamp_ms ASC, id ASC`

	rows, err := querier(ctx, r.db).QueryContext(ctx, query, userID, toMillis(start), toMillis(end))
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}
	defer rows.Close()

	punches := []punch.Punch{}
	for rows.Next() {
		p, err := scanPunch(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		punches = append(punches, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating records: %w", err)
	}
	return punches, nil
}

func (r *PunchRepo) Update(ctx context.Context, p punch.Punch) (punch.Punch, error) {
	query := `UPDATE records
		SET timestamp_ms = ?, record_type = ?, is_edited = ?, comment = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
		RETURNING ` + punchColumns

	updated, err := scanPunch(querier(ctx, r.db).QueryRowContext(ctx, query,
		toMillis(p.Timestamp),
		string(p.Kind),
		boolToInt(p.IsEdited),
		p.Comment,
		toMillis(time.Now()),
		p.ID,
		p.UserID,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return punch.Punch{}, punch.ErrPunchNotFound
		}
		return punch.Punch{}, fmt.Errorf("updating record: %w", err)
	}
	return updated, nil
}

func (r *PunchRepo) Delete(ctx context.Context, id int64, userID int64) error {
	res, err := querier(ctx, r.db).ExecContext(ctx, `DELETE FROM records WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("deleting record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting record: %w", err)
	}
	if n == 0 {
		return punch.ErrPunchNotFound
	}
	return nil
}
