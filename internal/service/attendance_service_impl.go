package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alexanderramin/shiftclock/internal/app"
	"github.com/alexanderramin/shiftclock/internal/cache"
	"github.com/alexanderramin/shiftclock/internal/calendar"
	"github.com/alexanderramin/shiftclock/internal/domain"
	"github.com/alexanderramin/shiftclock/internal/observability"
	"github.com/alexanderramin/shiftclock/internal/reconcile"
	"github.com/alexanderramin/shiftclock/internal/repository"
)

// AttendanceOptions tunes how spans become attendance.
type AttendanceOptions struct {
	Policy reconcile.Policy
	// LateGrace is how long after shift start a first activity still counts as on time.
	LateGrace time.Duration
	// Logger receives ceiling-violation warnings. Nil discards them.
	Logger *slog.Logger
}

type attendanceService struct {
	agents    repository.AgentRepo
	source    repository.ActivitySource
	calendars CalendarProvider
	spans     *SpanCache
	opts      AttendanceOptions
	observer  UseCaseObserver
}

// NewAttendanceService builds reports from source. A nil spans cache makes
// every report query the source directly.
func NewAttendanceService(
	agents repository.AgentRepo,
	source repository.ActivitySource,
	calendars CalendarProvider,
	spans *SpanCache,
	opts AttendanceOptions,
	observers ...UseCaseObserver,
) AttendanceService {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	return &attendanceService{
		agents:    agents,
		source:    source,
		calendars: calendars,
		spans:     spans,
		opts:      opts,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *attendanceService) Report(ctx context.Context, req app.AttendanceRequest) (resp *app.AttendanceResponse, err error) {
	startedAt := time.Now()
	defer func() {
		fields := map[string]any{"source": s.source.Name()}
		if resp != nil {
			fields["agents"] = resp.Summary.AgentCount
			fields["days"] = resp.Summary.DayCount
			fields["ceiling_violations"] = resp.Summary.CeilingViolations
		}
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "attendance.report",
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

	byUser, err := s.loadSpans(ctx, cal, agents, from, to)
	if err != nil {
		return nil, err
	}

	dates := calendar.Range(from, to)
	resp = &app.AttendanceResponse{
		Summary: app.AttendanceSummary{
			GeneratedAt: now,
			From:        from,
			To:          to,
			Source:      s.source.Name(),
			AgentCount:  len(agents),
			DayCount:    len(dates),
		},
		Agents: make([]app.AgentAttendance, 0, len(agents)),
	}
	if len(agents) == 0 {
		resp.Warnings = append(resp.Warnings, "no agents matched the selection")
	}

	for _, a := range agents {
		row := app.AgentAttendance{AgentID: a.ID, AgentName: a.Name, Team: a.Team}
		for _, d := range dates {
			day := s.reconcileDay(cal, d, byUser[a.ID], now)
			if day.CeilingExceeded {
				resp.Summary.CeilingViolations++
				resp.Warnings = append(resp.Warnings, fmt.Sprintf(
					"%s on %s: %d raw minutes exceed the %d minute shift, clamped",
					a.Name, d, day.RawMinutes, day.ShiftMinutes))
				s.opts.Logger.WarnContext(ctx, "worked minutes exceed shift window",
					"user_id", a.ID,
					"date", d.String(),
					"raw_minutes", day.RawMinutes,
					"window_minutes", day.ShiftMinutes,
				)
			}
			accumulate(&row, day)
			row.Days = append(row.Days, day)
		}
		row.AttendancePct = app.Pct(row.WorkedMinutes, row.ShiftMinutes)

		resp.Summary.TotalWorkedMinutes += row.WorkedMinutes
		resp.Summary.TotalShiftMinutes += row.ShiftMinutes
		resp.Summary.PresentDays += row.PresentDays
		resp.Summary.AbsentDays += row.AbsentDays
		resp.Summary.LateDays += row.LateDays
		resp.Agents = append(resp.Agents, row)
	}

	observability.RecordReport(now, time.Since(startedAt))
	return resp, nil
}

// loadSpans fetches every work span for the selected agents over the whole
// range in one query, then groups them by user.
func (s *attendanceService) loadSpans(ctx context.Context, cal *calendar.Calendar, agents []*domain.Agent, from, to calendar.Date) (map[string][]domain.ActivitySpan, error) {
	if len(agents) == 0 {
		return nil, nil
	}
	ids := agentIDs(agents)
	types := domain.WorkActivityTypes()
	rangeStart, _ := cal.DayBounds(from)
	_, rangeEnd := cal.DayBounds(to)

	load := func(ctx context.Context) ([]domain.ActivitySpan, error) {
		spans, err := s.source.ListSpans(ctx, repository.SpanQuery{
			UserIDs: ids,
			Types:   types,
			From:    rangeStart,
			To:      rangeEnd,
		})
		if err != nil {
			return nil, fmt.Errorf("loading spans from %s: %w", s.source.Name(), err)
		}
		return spans, nil
	}

	var spans []domain.ActivitySpan
	var err error
	if s.spans != nil {
		key := cache.Key{Source: s.source.Name(), UserIDs: ids, From: from, To: to, Types: types}
		spans, err = s.spans.GetOrLoad(ctx, key, load)
	} else {
		spans, err = load(ctx)
	}
	if err != nil {
		return nil, err
	}

	byUser := make(map[string][]domain.ActivitySpan, len(agents))
	for _, sp := range spans {
		if !sp.Type.IsWork() {
			continue
		}
		byUser[sp.UserID] = append(byUser[sp.UserID], sp)
	}
	return byUser, nil
}

func (s *attendanceService) reconcileDay(cal *calendar.Calendar, d calendar.Date, userSpans []domain.ActivitySpan, now time.Time) app.AttendanceDay {
	day := app.AttendanceDay{Date: d, Status: domain.AttendanceOff}
	if _, exc := cal.Hours(d); exc != nil {
		day.HolidayName = exc.Name
	}

	w, ok := cal.Window(d)
	if !ok {
		observability.ReconciliationsTotal.WithLabelValues(string(day.Status)).Inc()
		return day
	}
	start, end := w.Start, w.End
	day.ShiftStart = &start
	day.ShiftEnd = &end
	day.ShiftMinutes = w.Minutes()

	dayStart, dayEnd := cal.DayBounds(d)
	var daySpans []domain.ActivitySpan
	for i := range userSpans {
		if userSpans[i].Overlaps(dayStart, dayEnd) {
			daySpans = append(daySpans, userSpans[i])
		}
	}

	res := reconcile.Reconcile(s.opts.Policy, reconcile.Input{Spans: daySpans, Window: &w, Now: now})
	day.WorkedMinutes = res.Minutes
	day.RawMinutes = res.RawMinutes
	day.OpenCounted = res.OpenIncluded
	day.CeilingExceeded = res.CeilingExceeded
	day.FirstStart = res.FirstStart
	day.AttendancePct = app.Pct(res.Minutes, day.ShiftMinutes)

	switch {
	case now.Before(w.Start):
		day.Status = domain.AttendancePending
	case res.Minutes > 0:
		day.Status = domain.AttendancePresent
		if res.FirstStart != nil && res.FirstStart.After(w.Start.Add(s.opts.LateGrace)) {
			day.Late = true
			day.LateByMin = reconcile.RoundMinutes(res.FirstStart.Sub(w.Start))
		}
	default:
		day.Status = domain.AttendanceAbsent
	}

	observability.ReconciliationsTotal.WithLabelValues(string(day.Status)).Inc()
	if res.OpenIncluded {
		observability.OpenSpansExtrapolatedTotal.Inc()
	}
	if res.Dropped > 0 {
		observability.DroppedSpansTotal.Add(float64(res.Dropped))
	}
	if res.CeilingExceeded {
		observability.CeilingViolationsTotal.Inc()
	}
	return day
}

// accumulate adds one day to the agent totals. Pending days have no bearing
// on the percentage yet.
func accumulate(row *app.AgentAttendance, day app.AttendanceDay) {
	switch day.Status {
	case domain.AttendancePresent:
		row.PresentDays++
		if day.Late {
			row.LateDays++
		}
	case domain.AttendanceAbsent:
		row.AbsentDays++
	case domain.AttendancePending, domain.AttendanceOff:
		return
	}
	row.WorkedMinutes += day.WorkedMinutes
	row.ShiftMinutes += day.ShiftMinutes
}
