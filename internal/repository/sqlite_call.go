package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/shiftclock/internal/db"
	"github.com/alexanderramin/shiftclock/internal/domain"
)

// SQLiteCallRepo implements CallRepo using a SQLite database.
type SQLiteCallRepo struct {
	db db.DBTX
}

// NewSQLiteCallRepo creates a new SQLiteCallRepo.
func NewSQLiteCallRepo(conn db.DBTX) *SQLiteCallRepo {
	return &SQLiteCallRepo{db: conn}
}

func (r *SQLiteCallRepo) Create(ctx context.Context, c *domain.CallFeedback) error {
	query := `INSERT INTO call_feedback (id, agent_id, contact, outcome, note, called_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.AgentID,
		c.Contact,
		string(c.Outcome),
		c.Note,
		formatTime(c.CalledAt),
		formatTime(c.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting call feedback: %w", err)
	}
	return nil
}

func (r *SQLiteCallRepo) List(ctx context.Context, q CallQuery) ([]*domain.CallFeedback, error) {
	where, args := callFilter(q)
	query := `SELECT id, agent_id, contact, outcome, note, called_at, created_at
		FROM call_feedback` + where + ` ORDER BY called_at, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing call feedback: %w", err)
	}
	defer rows.Close()

	var calls []*domain.CallFeedback
	for rows.Next() {
		var c domain.CallFeedback
		var outcome, calledAtStr, createdAtStr string
		err := rows.Scan(&c.ID, &c.AgentID, &c.Contact, &outcome, &c.Note, &calledAtStr, &createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("scanning call feedback row: %w", err)
		}
		c.Outcome = domain.CallOutcome(outcome)
		if c.CalledAt, err = time.Parse(time.RFC3339, calledAtStr); err != nil {
			return nil, fmt.Errorf("parsing called_at: %w", err)
		}
		if c.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		calls = append(calls, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating call feedback: %w", err)
	}
	return calls, nil
}

// Summaries counts outcomes per agent, ordered by agent id.
func (r *SQLiteCallRepo) Summaries(ctx context.Context, q CallQuery) ([]domain.CallSummary, error) {
	where, args := callFilter(q)
	query := `SELECT agent_id, outcome, COUNT(*) FROM call_feedback` + where +
		` GROUP BY agent_id, outcome ORDER BY agent_id, outcome`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("summarizing call feedback: %w", err)
	}
	defer rows.Close()

	var out []domain.CallSummary
	for rows.Next() {
		var agentID, outcome string
		var n int
		if err := rows.Scan(&agentID, &outcome, &n); err != nil {
			return nil, fmt.Errorf("scanning call summary row: %w", err)
		}
		if len(out) == 0 || out[len(out)-1].AgentID != agentID {
			out = append(out, domain.CallSummary{AgentID: agentID, ByOutcome: map[domain.CallOutcome]int{}})
		}
		cur := &out[len(out)-1]
		cur.ByOutcome[domain.CallOutcome(outcome)] = n
		cur.Total += n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating call summaries: %w", err)
	}
	return out, nil
}

func callFilter(q CallQuery) (string, []any) {
	var where []string
	var args []any
	if len(q.AgentIDs) > 0 {
		var clause string
		clause, args = inClause("agent_id", q.AgentIDs, args)
		where = append(where, clause)
	}
	if !q.From.IsZero() {
		where = append(where, "called_at >= ?")
		args = append(args, formatTime(q.From))
	}
	if !q.To.IsZero() {
		where = append(where, "called_at < ?")
		args = append(args, formatTime(q.To))
	}
	if len(where) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(where, " AND "), args
}
