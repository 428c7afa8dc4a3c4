package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/shiftclock/internal/domain"
	"github.com/alexanderramin/shiftclock/internal/repository"
	"github.com/google/uuid"
)

type agentService struct {
	agents   repository.AgentRepo
	spans    *SpanCache
	observer UseCaseObserver
}

func NewAgentService(agents repository.AgentRepo, spans *SpanCache, observers ...UseCaseObserver) AgentService {
	return &agentService{agents: agents, spans: spans, observer: useCaseObserverOrNoop(observers)}
}

func (s *agentService) Create(ctx context.Context, a *domain.Agent) (err error) {
	startedAt := time.Now()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "agent.create",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"team": a.Team, "role": string(a.Role)},
		})
	}()

	a.Name = strings.TrimSpace(a.Name)
	a.Team = strings.TrimSpace(a.Team)
	a.Role = domain.AgentRole(domain.CoalesceStr(strings.TrimSpace(string(a.Role)), string(domain.RoleAgent)))
	if err = a.Validate(); err != nil {
		return err
	}
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	a.CreatedAt = time.Now().UTC()
	if err = s.agents.Create(ctx, a); err != nil {
		return fmt.Errorf("creating agent: %w", err)
	}
	return nil
}

func (s *agentService) GetByID(ctx context.Context, id string) (*domain.Agent, error) {
	return s.agents.GetByID(ctx, id)
}

func (s *agentService) List(ctx context.Context, team string) ([]*domain.Agent, error) {
	return s.agents.List(ctx, team)
}

// Delete removes the agent and, through the foreign key, every span and call
// they logged.
func (s *agentService) Delete(ctx context.Context, id string) error {
	if err := s.agents.Delete(ctx, id); err != nil {
		return err
	}
	if s.spans != nil {
		s.spans.InvalidateUser(id)
	}
	return nil
}
