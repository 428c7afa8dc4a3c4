package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/shiftclock/internal/calendar"
	"github.com/alexanderramin/shiftclock/internal/domain"
	"github.com/alexanderramin/shiftclock/internal/repository"
)

type holidayService struct {
	holidays repository.HolidayRepo
	loc      *time.Location
	policy   calendar.Policy
}

// NewHolidayService manages date overrides and assembles them with the
// weekly policy into the calendar used by reports.
func NewHolidayService(holidays repository.HolidayRepo, loc *time.Location, policy calendar.Policy) HolidayService {
	return &holidayService{holidays: holidays, loc: loc, policy: policy}
}

func (s *holidayService) Add(ctx context.Context, h *domain.Holiday) error {
	if h.Date.IsZero() {
		return fmt.Errorf("holiday date is required")
	}
	h.Name = strings.TrimSpace(h.Name)
	if h.Name == "" {
		return fmt.Errorf("holiday name is required")
	}
	h.CreatedAt = time.Now().UTC()
	return s.holidays.Upsert(ctx, h)
}

func (s *holidayService) List(ctx context.Context) ([]domain.Holiday, error) {
	return s.holidays.List(ctx)
}

func (s *holidayService) Remove(ctx context.Context, d calendar.Date) error {
	return s.holidays.Delete(ctx, d)
}

func (s *holidayService) Calendar(ctx context.Context) (*calendar.Calendar, error) {
	list, err := s.holidays.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading holidays: %w", err)
	}
	exceptions := make([]calendar.Exception, len(list))
	for i, h := range list {
		exceptions[i] = h.Exception()
	}
	return calendar.New(s.loc, s.policy, exceptions...), nil
}
