package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/shiftclock/internal/db"
	"github.com/alexanderramin/shiftclock/internal/domain"
)

// SQLiteActivityRepo implements ActivityRepo using a SQLite database.
type SQLiteActivityRepo struct {
	db db.DBTX
}

// NewSQLiteActivityRepo creates a new SQLiteActivityRepo.
func NewSQLiteActivityRepo(conn db.DBTX) *SQLiteActivityRepo {
	return &SQLiteActivityRepo{db: conn}
}

const activityColumns = `id, user_id, activity_type, start_time, end_time, note, created_at`

func (r *SQLiteActivityRepo) Name() string {
	return "sqlite"
}

func (r *SQLiteActivityRepo) Create(ctx context.Context, s *domain.ActivitySpan) error {
	query := `INSERT INTO activity_logs (` + activityColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.UserID,
		string(s.Type),
		formatTime(s.Start),
		nullableTimeToString(s.End, time.RFC3339),
		s.Note,
		formatTime(s.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting activity span: %w", err)
	}
	return nil
}

func (r *SQLiteActivityRepo) GetByID(ctx context.Context, id string) (*domain.ActivitySpan, error) {
	query := `SELECT ` + activityColumns + ` FROM activity_logs WHERE id = ?`
	s, err := r.scanSpan(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("activity span %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return s, nil
}

func (r *SQLiteActivityRepo) GetOpen(ctx context.Context, userID string) (*domain.ActivitySpan, error) {
	query := `SELECT ` + activityColumns + ` FROM activity_logs
		WHERE user_id = ? AND end_time IS NULL
		ORDER BY start_time DESC, id DESC LIMIT 1`
	s, err := r.scanSpan(r.db.QueryRowContext(ctx, query, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("open activity span for %s: %w", userID, ErrNotFound)
		}
		return nil, err
	}
	return s, nil
}

// ListSpans returns spans intersecting [q.From, q.To), open spans included,
// ordered by user then start.
func (r *SQLiteActivityRepo) ListSpans(ctx context.Context, q SpanQuery) ([]domain.ActivitySpan, error) {
	where := []string{`start_time < ?`, `(end_time IS NULL OR end_time > ?)`}
	args := []any{formatTime(q.To), formatTime(q.From)}

	if len(q.UserIDs) > 0 {
		var clause string
		clause, args = inClause("user_id", q.UserIDs, args)
		where = append(where, clause)
	}
	if len(q.Types) > 0 {
		var clause string
		clause, args = inClause("activity_type", q.Types, args)
		where = append(where, clause)
	}

	query := `SELECT ` + activityColumns + ` FROM activity_logs
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY user_id, start_time, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing activity spans: %w", err)
	}
	defer rows.Close()

	var spans []domain.ActivitySpan
	for rows.Next() {
		s, err := r.scanSpan(rows)
		if err != nil {
			return nil, err
		}
		spans = append(spans, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating activity spans: %w", err)
	}
	return spans, nil
}

func (r *SQLiteActivityRepo) Close(ctx context.Context, id string, end time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE activity_logs SET end_time = ? WHERE id = ? AND end_time IS NULL`,
		formatTime(end), id)
	if err != nil {
		return fmt.Errorf("closing activity span: %w", err)
	}
	return expectAffected(res, "open activity span "+id)
}

func (r *SQLiteActivityRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM activity_logs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting activity span: %w", err)
	}
	return expectAffected(res, "activity span "+id)
}

func (r *SQLiteActivityRepo) scanSpan(row rowScanner) (*domain.ActivitySpan, error) {
	var s domain.ActivitySpan
	var typ, startStr, createdAtStr string
	var endStr sql.NullString

	if err := row.Scan(&s.ID, &s.UserID, &typ, &startStr, &endStr, &s.Note, &createdAtStr); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning activity span: %w", err)
	}
	return r.populateSpan(&s, typ, startStr, endStr, createdAtStr)
}

// populateSpan fills in parsed fields after scanning raw strings.
func (r *SQLiteActivityRepo) populateSpan(s *domain.ActivitySpan, typ, startStr string, endStr sql.NullString, createdAtStr string) (*domain.ActivitySpan, error) {
	s.Type = domain.ActivityType(typ)

	var parseErr error
	s.Start, parseErr = time.Parse(time.RFC3339, startStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing start_time: %w", parseErr)
	}
	s.End = parseNullableTime(endStr, time.RFC3339)
	s.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	return s, nil
}
