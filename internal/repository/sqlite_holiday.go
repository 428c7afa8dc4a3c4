package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/shiftclock/internal/calendar"
	"github.com/alexanderramin/shiftclock/internal/db"
	"github.com/alexanderramin/shiftclock/internal/domain"
)

// SQLiteHolidayRepo implements HolidayRepo using a SQLite database.
type SQLiteHolidayRepo struct {
	db db.DBTX
}

// NewSQLiteHolidayRepo creates a new SQLiteHolidayRepo.
func NewSQLiteHolidayRepo(conn db.DBTX) *SQLiteHolidayRepo {
	return &SQLiteHolidayRepo{db: conn}
}

// Upsert stores the holiday, replacing any existing entry for the same date.
func (r *SQLiteHolidayRepo) Upsert(ctx context.Context, h *domain.Holiday) error {
	query := `INSERT INTO holidays (date, name, start_time, end_time, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			name = excluded.name,
			start_time = excluded.start_time,
			end_time = excluded.end_time`
	start, end := "", ""
	if !h.Hours.IsEmpty() {
		start, end = h.Hours.Start.String(), h.Hours.End.String()
	}
	_, err := r.db.ExecContext(ctx, query, h.Date.String(), h.Name, start, end, formatTime(h.CreatedAt))
	if err != nil {
		return fmt.Errorf("upserting holiday: %w", err)
	}
	return nil
}

func (r *SQLiteHolidayRepo) Get(ctx context.Context, d calendar.Date) (*domain.Holiday, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT date, name, start_time, end_time, created_at FROM holidays WHERE date = ?`, d.String())
	h, err := scanHoliday(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("holiday %s: %w", d, ErrNotFound)
		}
		return nil, err
	}
	return h, nil
}

func (r *SQLiteHolidayRepo) List(ctx context.Context) ([]domain.Holiday, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT date, name, start_time, end_time, created_at FROM holidays ORDER BY date`)
	if err != nil {
		return nil, fmt.Errorf("listing holidays: %w", err)
	}
	defer rows.Close()

	var holidays []domain.Holiday
	for rows.Next() {
		h, err := scanHoliday(rows)
		if err != nil {
			return nil, err
		}
		holidays = append(holidays, *h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating holidays: %w", err)
	}
	return holidays, nil
}

func (r *SQLiteHolidayRepo) Delete(ctx context.Context, d calendar.Date) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM holidays WHERE date = ?`, d.String())
	if err != nil {
		return fmt.Errorf("deleting holiday: %w", err)
	}
	return expectAffected(res, "holiday "+d.String())
}

func scanHoliday(row rowScanner) (*domain.Holiday, error) {
	var h domain.Holiday
	var dateStr, start, end, createdAtStr string
	if err := row.Scan(&dateStr, &h.Name, &start, &end, &createdAtStr); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning holiday: %w", err)
	}

	var err error
	if h.Date, err = calendar.ParseDate(dateStr); err != nil {
		return nil, fmt.Errorf("parsing holiday date: %w", err)
	}
	if start != "" {
		if h.Hours, err = calendar.ParseTimeRange(start + "-" + end); err != nil {
			return nil, fmt.Errorf("parsing holiday hours: %w", err)
		}
	}
	if h.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &h, nil
}
