package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/shiftclock/internal/app"
	"github.com/alexanderramin/shiftclock/internal/calendar"
	"github.com/alexanderramin/shiftclock/internal/domain"
	"github.com/alexanderramin/shiftclock/internal/repository"
)

func nowOr(override *time.Time) time.Time {
	if override != nil {
		return *override
	}
	return time.Now()
}

// resolveRange defaults an unset range to today and enforces ordering and
// the maximum report length.
func resolveRange(cal *calendar.Calendar, now time.Time, from, to calendar.Date) (calendar.Date, calendar.Date, error) {
	today := cal.Today(now)
	if from.IsZero() && to.IsZero() {
		return today, today, nil
	}
	if from.IsZero() {
		from = to
	}
	if to.IsZero() {
		to = from
	}
	if to.Before(from) {
		return calendar.Date{}, calendar.Date{}, &app.ReportError{
			Code:    app.ReportErrInvalidRange,
			Message: fmt.Sprintf("end date %s is before start date %s", to, from),
		}
	}
	if days := from.DaysUntil(to) + 1; days > app.MaxReportDays {
		return calendar.Date{}, calendar.Date{}, &app.ReportError{
			Code:    app.ReportErrInvalidRange,
			Message: fmt.Sprintf("range covers %d days, at most %d allowed", days, app.MaxReportDays),
		}
	}
	return from, to, nil
}

// resolveAgents picks explicit ids first, then a team, then everyone.
func resolveAgents(ctx context.Context, agents repository.AgentRepo, ids []string, team string) ([]*domain.Agent, error) {
	if len(ids) == 0 {
		list, err := agents.List(ctx, team)
		if err != nil {
			return nil, fmt.Errorf("listing agents: %w", err)
		}
		return list, nil
	}

	seen := make(map[string]bool, len(ids))
	out := make([]*domain.Agent, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		a, err := agents.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, &app.ReportError{Code: app.ReportErrUnknownAgent, Message: fmt.Sprintf("agent %q not found", id)}
			}
			return nil, fmt.Errorf("loading agent %s: %w", id, err)
		}
		out = append(out, a)
	}
	return out, nil
}

func agentIDs(agents []*domain.Agent) []string {
	ids := make([]string, len(agents))
	for i, a := range agents {
		ids[i] = a.ID
	}
	return ids
}
