package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/shiftclock/internal/db"
	"github.com/alexanderramin/shiftclock/internal/domain"
	"github.com/alexanderramin/shiftclock/internal/repository"
	"github.com/google/uuid"
)

type activityService struct {
	activities repository.ActivityRepo
	uow        db.UnitOfWork
	spans      *SpanCache
	observer   UseCaseObserver
}

func NewActivityService(activities repository.ActivityRepo, uow db.UnitOfWork, spans *SpanCache, observers ...UseCaseObserver) ActivityService {
	return &activityService{
		activities: activities,
		uow:        uow,
		spans:      spans,
		observer:   useCaseObserverOrNoop(observers),
	}
}

func (s *activityService) Start(ctx context.Context, userID string, typ domain.ActivityType, at time.Time, note string) (span *domain.ActivitySpan, err error) {
	startedAt := time.Now()
	var closedPrev bool
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "activity.start",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"user_id": userID, "type": string(typ), "closed_previous": closedPrev},
		})
	}()

	if !typ.Valid() {
		return nil, fmt.Errorf("%w: unknown activity type %q", ErrInvalidSpan, typ)
	}

	span = &domain.ActivitySpan{
		ID:        uuid.New().String(),
		UserID:    userID,
		Type:      typ,
		Start:     at.UTC(),
		Note:      note,
		CreatedAt: time.Now().UTC(),
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := ensureAgent(ctx, repository.NewSQLiteAgentRepo(tx), userID); err != nil {
			return err
		}

		txActivities := repository.NewSQLiteActivityRepo(tx)
		open, err := txActivities.GetOpen(ctx, userID)
		switch {
		case errors.Is(err, repository.ErrNotFound):
		case err != nil:
			return err
		default:
			if err := open.Close(span.Start); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidSpan, err)
			}
			if err := txActivities.Close(ctx, open.ID, *open.End); err != nil {
				return err
			}
			closedPrev = true
		}
		return txActivities.Create(ctx, span)
	})
	if err != nil {
		return nil, err
	}
	s.invalidate(userID)
	return span, nil
}

func (s *activityService) Stop(ctx context.Context, userID string, at time.Time) (span *domain.ActivitySpan, err error) {
	startedAt := time.Now()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "activity.stop",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"user_id": userID},
		})
	}()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txActivities := repository.NewSQLiteActivityRepo(tx)
		open, err := txActivities.GetOpen(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("user %s: %w", userID, ErrNoOpenSpan)
			}
			return err
		}
		if err := open.Close(at.UTC()); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSpan, err)
		}
		span = open
		return txActivities.Close(ctx, open.ID, *open.End)
	})
	if err != nil {
		return nil, err
	}
	s.invalidate(userID)
	return span, nil
}

func (s *activityService) Current(ctx context.Context, userID string) (*domain.ActivitySpan, error) {
	open, err := s.activities.GetOpen(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("user %s: %w", userID, ErrNoOpenSpan)
	}
	return open, err
}

// Log records a span that already has both ends, for backfilling.
func (s *activityService) Log(ctx context.Context, span *domain.ActivitySpan) (err error) {
	startedAt := time.Now()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "activity.log",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"user_id": span.UserID, "type": string(span.Type)},
		})
	}()

	if !span.Type.Valid() {
		return fmt.Errorf("%w: unknown activity type %q", ErrInvalidSpan, span.Type)
	}
	if span.End == nil || !span.End.After(span.Start) {
		return fmt.Errorf("%w: end must be after start", ErrInvalidSpan)
	}
	if span.ID == "" {
		span.ID = uuid.New().String()
	}
	span.Start = span.Start.UTC()
	end := span.End.UTC()
	span.End = &end
	span.CreatedAt = time.Now().UTC()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := ensureAgent(ctx, repository.NewSQLiteAgentRepo(tx), span.UserID); err != nil {
			return err
		}
		return repository.NewSQLiteActivityRepo(tx).Create(ctx, span)
	})
	if err != nil {
		return err
	}
	s.invalidate(span.UserID)
	return nil
}

func (s *activityService) List(ctx context.Context, q repository.SpanQuery) ([]domain.ActivitySpan, error) {
	return s.activities.ListSpans(ctx, q)
}

func (s *activityService) Delete(ctx context.Context, id string) error {
	span, err := s.activities.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.activities.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(span.UserID)
	return nil
}

func (s *activityService) invalidate(userID string) {
	if s.spans != nil {
		s.spans.InvalidateUser(userID)
	}
}

func ensureAgent(ctx context.Context, agents repository.AgentRepo, id string) error {
	if _, err := agents.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrUnknownAgent, id)
		}
		return err
	}
	return nil
}
