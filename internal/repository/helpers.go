package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// parseNullableTime parses a sql.NullString into a *time.Time using the given layout.
// Returns nil if the value is NULL, empty, or fails to parse.
func parseNullableTime(s sql.NullString, layout string) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(layout, s.String)
	if err != nil {
		return nil
	}
	return &t
}

// nullableTimeToString converts a *time.Time to a value suitable for SQLite storage.
// Returns nil (SQL NULL) if the pointer is nil, otherwise the UTC formatted string.
func nullableTimeToString(t *time.Time, layout string) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC().Format(layout)
}

// formatTime stores instants as UTC RFC3339 so text comparison orders them.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// inClause renders "col IN (?,?,...)" and appends the values to args.
func inClause[T ~string](col string, vals []T, args []any) (string, []any) {
	marks := make([]string, len(vals))
	for i, v := range vals {
		marks[i] = "?"
		args = append(args, string(v))
	}
	return fmt.Sprintf("%s IN (%s)", col, strings.Join(marks, ",")), args
}

// expectAffected turns a zero-row UPDATE or DELETE into ErrNotFound.
func expectAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}
