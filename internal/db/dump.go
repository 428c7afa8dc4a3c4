package db

import (
	"bufio"
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Dump writes the schema and every row of the application tables to w as
// SQL statements. Rows are ordered by their key column so that two dumps of
// the same data are byte-identical.
func Dump(ctx context.Context, q DBTX, w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "BEGIN TRANSACTION;")

	for _, table := range Tables {
		if err := dumpSchema(ctx, q, bw, table); err != nil {
			return err
		}
	}
	for _, table := range Tables {
		if err := dumpRows(ctx, q, bw, table); err != nil {
			return err
		}
	}

	fmt.Fprintln(bw, "COMMIT;")
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing dump: %w", err)
	}
	return nil
}

func dumpSchema(ctx context.Context, q DBTX, w *bufio.Writer, table string) error {
	rows, err := q.QueryContext(ctx,
		`SELECT sql FROM sqlite_master
		 WHERE tbl_name = ? AND sql IS NOT NULL
		 ORDER BY CASE type WHEN 'table' THEN 0 ELSE 1 END, name`, table)
	if err != nil {
		return fmt.Errorf("reading schema for %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var stmt string
		if err := rows.Scan(&stmt); err != nil {
			return fmt.Errorf("scanning schema for %s: %w", table, err)
		}
		fmt.Fprintf(w, "%s;\n", stmt)
	}
	return rows.Err()
}

func dumpRows(ctx context.Context, q DBTX, w *bufio.Writer, table string) error {
	rows, err := q.QueryContext(ctx, fmt.Sprintf(`SELECT * FROM %s ORDER BY 1`, table))
	if err != nil {
		return fmt.Errorf("reading %s: %w", table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return fmt.Errorf("reading columns of %s: %w", table, err)
	}
	prefix := fmt.Sprintf("INSERT INTO %s (%s) VALUES (", table, strings.Join(cols, ", "))

	vals := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return fmt.Errorf("scanning %s: %w", table, err)
		}
		literals := make([]string, len(vals))
		for i, v := range vals {
			literals[i] = sqlLiteral(v)
		}
		fmt.Fprintf(w, "%s%s);\n", prefix, strings.Join(literals, ", "))
	}
	return rows.Err()
}

func sqlLiteral(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case bool:
		if x {
			return "1"
		}
		return "0"
	case []byte:
		return "X'" + hex.EncodeToString(x) + "'"
	case string:
		return quote(x)
	default:
		return quote(fmt.Sprint(x))
	}
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
