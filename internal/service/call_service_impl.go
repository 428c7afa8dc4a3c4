package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/shiftclock/internal/app"
	"github.com/alexanderramin/shiftclock/internal/db"
	"github.com/alexanderramin/shiftclock/internal/domain"
	"github.com/alexanderramin/shiftclock/internal/repository"
	"github.com/google/uuid"
)

type callService struct {
	calls     repository.CallRepo
	agents    repository.AgentRepo
	calendars CalendarProvider
	uow       db.UnitOfWork
	observer  UseCaseObserver
}

func NewCallService(calls repository.CallRepo, agents repository.AgentRepo, calendars CalendarProvider, uow db.UnitOfWork, observers ...UseCaseObserver) CallService {
	return &callService{
		calls:     calls,
		agents:    agents,
		calendars: calendars,
		uow:       uow,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *callService) Log(ctx context.Context, c *domain.CallFeedback) (err error) {
	startedAt := time.Now()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "call.log",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"agent_id": c.AgentID, "outcome": string(c.Outcome)},
		})
	}()

	if _, err = domain.ParseCallOutcome(string(c.Outcome)); err != nil {
		return err
	}
	c.Contact = strings.TrimSpace(c.Contact)
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if c.CalledAt.IsZero() {
		c.CalledAt = now
	}
	c.CalledAt = c.CalledAt.UTC()
	c.CreatedAt = now

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := ensureAgent(ctx, repository.NewSQLiteAgentRepo(tx), c.AgentID); err != nil {
			return err
		}
		return repository.NewSQLiteCallRepo(tx).Create(ctx, c)
	})
}

func (s *callService) List(ctx context.Context, q repository.CallQuery) ([]*domain.CallFeedback, error) {
	return s.calls.List(ctx, q)
}

// CallReport counts outcomes per agent over the inclusive date range.
// Agents without calls are still listed with zero totals.
func (s *callService) CallReport(ctx context.Context, req app.CallReportRequest) (resp *app.CallReportResponse, err error) {
	startedAt := time.Now()
	defer func() {
		fields := map[string]any{}
		if resp != nil {
			fields["agents"] = len(resp.Agents)
			fields["calls"] = resp.Total
		}
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "call.report",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	now := nowOr(req.Now)
	cal, err := s.calendars.Calendar(ctx)
	if err != nil {
		return nil, err
	}
	from, to, err := resolveRange(cal, now, req.From, req.To)
	if err != nil {
		return nil, err
	}
	agents, err := resolveAgents(ctx, s.agents, req.AgentIDs, req.Team)
	if err != nil {
		return nil, err
	}

	resp = &app.CallReportResponse{GeneratedAt: now, From: from, To: to, Agents: make([]app.AgentCallStats, 0, len(agents))}
	if len(agents) == 0 {
		return resp, nil
	}

	rangeStart, _ := cal.DayBounds(from)
	_, rangeEnd := cal.DayBounds(to)
	summaries, err := s.calls.Summaries(ctx, repository.CallQuery{
		AgentIDs: agentIDs(agents),
		From:     rangeStart,
		To:       rangeEnd,
	})
	if err != nil {
		return nil, fmt.Errorf("summarizing calls: %w", err)
	}
	byAgent := make(map[string]domain.CallSummary, len(summaries))
	for _, sum := range summaries {
		byAgent[sum.AgentID] = sum
	}

	for _, a := range agents {
		sum := byAgent[a.ID]
		byOutcome := sum.ByOutcome
		if byOutcome == nil {
			byOutcome = map[domain.CallOutcome]int{}
		}
		resp.Agents = append(resp.Agents, app.AgentCallStats{
			AgentID:       a.ID,
			AgentName:     a.Name,
			Total:         sum.Total,
			ByOutcome:     byOutcome,
			ConversionPct: sum.ConversionPct(),
		})
		resp.Total += sum.Total
		resp.Converted += byOutcome[domain.OutcomeConverted]
	}
	resp.ConversionPct = app.Pct(resp.Converted, resp.Total)
	return resp, nil
}
