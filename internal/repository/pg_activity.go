package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alexanderramin/shiftclock/internal/domain"
)

// PGActivitySource reads activity spans from the hosted Postgres backend.
// The table shape matches the local one: activity_logs(id, user_id,
// activity_type, start_time timestamptz, end_time timestamptz NULL, note).
type PGActivitySource struct {
	pool *pgxpool.Pool
}

// NewPGActivitySource constructs a PGActivitySource.
func NewPGActivitySource(pool *pgxpool.Pool) *PGActivitySource {
	return &PGActivitySource{pool: pool}
}

// OpenPGActivitySource connects to the given URL and verifies the connection.
func OpenPGActivitySource(ctx context.Context, url string) (*PGActivitySource, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}
	return &PGActivitySource{pool: pool}, nil
}

func (p *PGActivitySource) Name() string {
	return "postgres"
}

func (p *PGActivitySource) Close() {
	p.pool.Close()
}

func (p *PGActivitySource) ListSpans(ctx context.Context, q SpanQuery) ([]domain.ActivitySpan, error) {
	const query = `SELECT id::text, user_id::text, activity_type, start_time, end_time, COALESCE(note, '')
		FROM activity_logs
		WHERE start_time < $1
		  AND (end_time IS NULL OR end_time > $2)
		  AND ($3::text[] IS NULL OR user_id::text = ANY($3))
		  AND ($4::text[] IS NULL OR activity_type = ANY($4))
		ORDER BY user_id, start_time, id`

	var users, types []string
	if len(q.UserIDs) > 0 {
		users = q.UserIDs
	}
	for _, t := range q.Types {
		types = append(types, string(t))
	}

	rows, err := p.pool.Query(ctx, query, q.To, q.From, users, types)
	if err != nil {
		return nil, fmt.Errorf("querying postgres activity_logs: %w", err)
	}
	defer rows.Close()

	var spans []domain.ActivitySpan
	for rows.Next() {
		var s domain.ActivitySpan
		var typ string
		var end *time.Time
		if err := rows.Scan(&s.ID, &s.UserID, &typ, &s.Start, &end, &s.Note); err != nil {
			return nil, fmt.Errorf("scanning postgres activity span: %w", err)
		}
		s.Type = domain.ActivityType(typ)
		s.Start = s.Start.UTC()
		if end != nil {
			e := end.UTC()
			s.End = &e
		}
		spans = append(spans, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating postgres activity spans: %w", err)
	}
	return spans, nil
}
