package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/shiftclock/internal/db"
	"github.com/alexanderramin/shiftclock/internal/domain"
)

// SQLiteAgentRepo implements AgentRepo using a SQLite database.
type SQLiteAgentRepo struct {
	db db.DBTX
}

// NewSQLiteAgentRepo creates a new SQLiteAgentRepo.
func NewSQLiteAgentRepo(conn db.DBTX) *SQLiteAgentRepo {
	return &SQLiteAgentRepo{db: conn}
}

const agentColumns = `id, name, email, team, role, created_at`

func (r *SQLiteAgentRepo) Create(ctx context.Context, a *domain.Agent) error {
	query := `INSERT INTO agents (` + agentColumns + `) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID,
		a.Name,
		a.Email,
		a.Team,
		string(a.Role),
		formatTime(a.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting agent: %w", err)
	}
	return nil
}

func (r *SQLiteAgentRepo) GetByID(ctx context.Context, id string) (*domain.Agent, error) {
	query := `SELECT ` + agentColumns + ` FROM agents WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	a, err := scanAgent(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("agent %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning agent: %w", err)
	}
	return a, nil
}

// List returns agents ordered by name. An empty team lists everyone.
func (r *SQLiteAgentRepo) List(ctx context.Context, team string) ([]*domain.Agent, error) {
	query := `SELECT ` + agentColumns + ` FROM agents`
	var args []any
	if team != "" {
		query += ` WHERE team = ?`
		args = append(args, team)
	}
	query += ` ORDER BY name, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing agents: %w", err)
	}
	defer rows.Close()

	var agents []*domain.Agent
	for rows.Next() {
		a, err := scanAgent(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning agent row: %w", err)
		}
		agents = append(agents, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating agents: %w", err)
	}
	return agents, nil
}

func (r *SQLiteAgentRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM agents WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting agent: %w", err)
	}
	return expectAffected(res, "agent "+id)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAgent(row rowScanner) (*domain.Agent, error) {
	var a domain.Agent
	var role, createdAtStr string
	if err := row.Scan(&a.ID, &a.Name, &a.Email, &a.Team, &role, &createdAtStr); err != nil {
		return nil, err
	}
	a.Role = domain.AgentRole(role)

	var err error
	a.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &a, nil
}
