package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"

	"github.com/carebase/counseld/internal/domain"
	"github.com/carebase/counseld/internal/logging"
	"github.com/carebase/counseld/internal/metrics"
)

const sweepTimeout = 60 * time.Second

// Repositories bundles the persistence dependencies of the service.
type Repositories struct {
	Sessions    domain.SessionRepository
	Counselees  domain.CounseleeRepository
	Counselors  domain.CounselorRepository
	Medications domain.MedicationCounselRepository
	Summaries   domain.AISummaryRepository
}

// Service orchestrates the scheduling use cases: reservations, the status
// lifecycle, the overdue sweep, listings, and the cached read models.
type Service struct {
	repos       Repositories
	cache       domain.Cache
	clock       clockwork.Clock
	graceWindow time.Duration

	statsGroup singleflight.Group

	sweepInterval time.Duration
	sweepStopCh   chan struct{}
	stopOnce      sync.Once
}

// NewService creates the application layer service and starts the periodic
// overdue sweep.
func NewService(repos Repositories, cache domain.Cache, clock clockwork.Clock, sweepInterval, graceWindow time.Duration) *Service {
	s := &Service{
		repos:         repos,
		cache:         cache,
		clock:         clock,
		graceWindow:   graceWindow,
		sweepInterval: sweepInterval,
		sweepStopCh:   make(chan struct{}),
	}

	s.startSweepTimer()
	return s
}

// GetSession retrieves a single session by ID.
func (s *Service) GetSession(ctx context.Context, sessionID uuid.UUID) (*domain.CounselSession, error) {
	return s.repos.Sessions.GetByID(ctx, sessionID)
}

// CreateReservation reserves a session slot for a counselee. The store
// creates the session's counsel card and consent record in the same
// transaction, so a failure leaves no reservation behind.
func (s *Service) CreateReservation(ctx context.Context, counseleeID uuid.UUID, scheduledStartAt time.Time) (*domain.CounselSession, error) {
	if _, err := s.repos.Counselees.GetByID(ctx, counseleeID); err != nil {
		return nil, err
	}

	session, err := s.repos.Sessions.CreateReservation(ctx, counseleeID, scheduledStartAt)
	if err != nil {
		if errors.Is(err, domain.ErrScheduleConflict) {
			metrics.ReservationConflictsTotal.Inc()
		}
		return nil, err
	}

	s.invalidate(ctx, domain.CacheSessionDates, domain.CacheSessionStats, domain.CacheSessionList)
	return session, nil
}

// ModifyReservation moves a session to a new counselee and/or time slot.
func (s *Service) ModifyReservation(ctx context.Context, sessionID, counseleeID uuid.UUID, scheduledStartAt time.Time) (*domain.CounselSession, error) {
	if _, err := s.repos.Counselees.GetByID(ctx, counseleeID); err != nil {
		return nil, err
	}

	session, err := s.repos.Sessions.ModifyReservation(ctx, sessionID, counseleeID, scheduledStartAt)
	if err != nil {
		if errors.Is(err, domain.ErrScheduleConflict) {
			metrics.ReservationConflictsTotal.Inc()
		}
		return nil, err
	}

	s.invalidate(ctx, domain.CacheSessionDates, domain.CacheSessionStats, domain.CacheSessionList)
	return session, nil
}

// UpdateStatus applies a lifecycle transition to a session. A status change
// never moves the session's slot, so the dates read model stays valid.
func (s *Service) UpdateStatus(ctx context.Context, sessionID uuid.UUID, requested domain.ScheduleStatus) (*domain.CounselSession, error) {
	session, err := s.repos.Sessions.UpdateStatus(ctx, sessionID, requested, s.clock.Now().UTC())
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, domain.CacheSessionStats, domain.CacheSessionList)
	return session, nil
}

// AssignCounselor sets the counselor responsible for a session.
func (s *Service) AssignCounselor(ctx context.Context, sessionID, counselorID uuid.UUID) (*domain.CounselSession, error) {
	if _, err := s.repos.Counselors.GetByID(ctx, counselorID); err != nil {
		return nil, err
	}

	if err := s.repos.Sessions.UpdateCounselor(ctx, sessionID, counselorID); err != nil {
		return nil, err
	}

	s.invalidate(ctx, domain.CacheSessionList)
	return s.repos.Sessions.GetByID(ctx, sessionID)
}

// DeleteSession removes a session entirely. The remaining sessions of the
// counselee keep their numbers until the next renumbering touchpoint.
func (s *Service) DeleteSession(ctx context.Context, sessionID uuid.UUID) error {
	if err := s.repos.Sessions.Delete(ctx, sessionID); err != nil {
		return err
	}

	s.invalidate(ctx, domain.CacheSessionDates, domain.CacheSessionStats, domain.CacheSessionList)
	return nil
}

// SessionDates returns the distinct days of a month that have at least one
// session, cached under the session_dates tag.
func (s *Service) SessionDates(ctx context.Context, year int, month time.Month) ([]time.Time, error) {
	key := fmt.Sprintf("%d-%d", year, int(month))

	var cached []time.Time
	if hit, _ := s.cache.Get(ctx, domain.CacheSessionDates, key, &cached); hit {
		return cached, nil
	}

	dates, err := s.repos.Sessions.DistinctDates(ctx, year, month)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, domain.CacheSessionDates, key, dates); err != nil {
		slog.Warn("failed to cache session dates", "key", key, "error", err)
	}
	return dates, nil
}

// ListSessionsByDate returns the day listing (sessions joined with card and
// consent state), cached under the session_list tag.
func (s *Service) ListSessionsByDate(ctx context.Context, day time.Time) ([]domain.SessionListItem, error) {
	key := day.UTC().Format("2006-01-02")

	var cached []domain.SessionListItem
	if hit, _ := s.cache.Get(ctx, domain.CacheSessionList, key, &cached); hit {
		return cached, nil
	}

	items, err := s.repos.Sessions.ListByDay(ctx, day)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, domain.CacheSessionList, key, items); err != nil {
		slog.Warn("failed to cache session list", "key", key, "error", err)
	}
	return items, nil
}

// SearchSessions runs the paginated filtered search. Always hits the store:
// the filter space is too wide to cache usefully.
func (s *Service) SearchSessions(ctx context.Context, filter domain.SessionSearchFilter, page domain.PageReq) (*domain.Page[domain.CounselSession], error) {
	return s.repos.Sessions.Search(ctx, filter, page)
}

// Stats returns the aggregated summary metrics for the current month and
// year, cached under the session_stats tag. Concurrent cold-cache calls are
// collapsed into one computation.
func (s *Service) Stats(ctx context.Context) (*domain.SessionStats, error) {
	now := s.clock.Now().UTC()
	key := fmt.Sprintf("%d-%d", now.Year(), int(now.Month()))

	var cached domain.SessionStats
	if hit, _ := s.cache.Get(ctx, domain.CacheSessionStats, key, &cached); hit {
		return &cached, nil
	}

	result, err, _ := s.statsGroup.Do(key, func() (any, error) {
		stats, err := s.computeStats(ctx, now)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Set(ctx, domain.CacheSessionStats, key, stats); err != nil {
			slog.Warn("failed to cache session stats", "key", key, "error", err)
		}
		return stats, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*domain.SessionStats), nil
}

func (s *Service) computeStats(ctx context.Context, now time.Time) (*domain.SessionStats, error) {
	completed, err := s.repos.Sessions.CompletedInMonth(ctx, now.Year(), now.Month())
	if err != nil {
		return nil, err
	}

	// Whole hours per session, fractions dropped, then summed.
	var hours int64
	for i := range completed {
		hours += int64(completed[i].Duration().Minutes()) / 60
	}

	counselees, err := s.repos.Sessions.CountDistinctCounseleesInMonth(ctx, now.Year(), now.Month())
	if err != nil {
		return nil, err
	}

	yearStart := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	medications, err := s.repos.Medications.CountCreatedBetween(ctx, yearStart, yearStart.AddDate(1, 0, 0))
	if err != nil {
		return nil, err
	}

	counselors, err := s.repos.Sessions.CountActiveCounselorsCompletedInYear(ctx, now.Year())
	if err != nil {
		return nil, err
	}

	return &domain.SessionStats{
		CounselHoursThisMonth:          hours,
		CounseleeCountThisMonth:        counselees,
		MedicationCounselCountThisYear: medications,
		CounselorCountThisYear:         counselors,
	}, nil
}

// PreviousSessions lists the counselee's completed sessions before the given
// session, newest first.
func (s *Service) PreviousSessions(ctx context.Context, sessionID uuid.UUID) ([]domain.PreviousSessionSummary, error) {
	session, err := s.repos.Sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	previous, err := s.repos.Sessions.ListCompletedBefore(ctx, session.CounseleeID, session.ScheduledStartAt)
	if err != nil {
		return nil, err
	}

	summaries := make([]domain.PreviousSessionSummary, 0, len(previous))
	for i := range previous {
		summaries = append(summaries, domain.PreviousSessionSummary{
			SessionID:     previous[i].ID,
			SessionNumber: previous[i].SessionNumber,
			SessionDate:   previous[i].ScheduledStartAt,
			CounselorName: s.counselorDisplayName(ctx, previous[i].CounselorID),
		})
	}
	return summaries, nil
}

// PreviousSessionDetails is the paginated variant of PreviousSessions,
// enriched with each session's medication counsel record and AI summary
// where present.
func (s *Service) PreviousSessionDetails(ctx context.Context, sessionID uuid.UUID, page domain.PageReq) (*domain.Page[domain.PreviousSessionDetail], error) {
	session, err := s.repos.Sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	previous, err := s.repos.Sessions.PageCompletedBefore(ctx, session.CounseleeID, session.ScheduledStartAt, page)
	if err != nil {
		return nil, err
	}

	details := make([]domain.PreviousSessionDetail, 0, len(previous.Content))
	for i := range previous.Content {
		detail := domain.PreviousSessionDetail{
			SessionID:     previous.Content[i].ID,
			SessionNumber: previous.Content[i].SessionNumber,
			SessionDate:   previous.Content[i].ScheduledStartAt,
			CounselorName: s.counselorDisplayName(ctx, previous.Content[i].CounselorID),
		}

		if record, err := s.repos.Medications.GetBySessionID(ctx, previous.Content[i].ID); err == nil {
			detail.MedicationRecord = &record.CounselRecord
		} else if !errors.Is(err, domain.ErrMedicationNotFound) {
			return nil, err
		}

		if summary, err := s.repos.Summaries.GetBySessionID(ctx, previous.Content[i].ID); err == nil {
			detail.AISummary = &summary.AnalysedText
		} else if !errors.Is(err, domain.ErrSummaryNotFound) {
			return nil, err
		}

		details = append(details, detail)
	}

	return &domain.Page[domain.PreviousSessionDetail]{
		Content:       details,
		Page:          previous.Page,
		Size:          previous.Size,
		TotalElements: previous.TotalElements,
		TotalPages:    previous.TotalPages,
	}, nil
}

func (s *Service) counselorDisplayName(ctx context.Context, counselorID *uuid.UUID) string {
	if counselorID == nil {
		return domain.UnassignedCounselorName
	}

	counselor, err := s.repos.Counselors.GetByID(ctx, *counselorID)
	if err != nil {
		slog.Warn("failed to resolve counselor", "counselor_id", *counselorID, "error", err)
		return domain.UnassignedCounselorName
	}
	if counselor.Status == domain.CounselorInactive {
		return domain.InactiveCounselorName
	}
	return counselor.Name
}

// SweepOverdueSessions cancels every session still SCHEDULED or IN_PROGRESS
// whose slot lies more than the grace window in the past, and renumbers the
// affected counselees. Safe to run from multiple instances concurrently.
func (s *Service) SweepOverdueSessions(ctx context.Context) {
	start := s.clock.Now()
	cutoff := start.UTC().Add(-s.graceWindow)

	sweepCtx, cancel := context.WithTimeout(ctx, sweepTimeout)
	defer cancel()

	affected, err := s.repos.Sessions.CancelOverdue(sweepCtx, cutoff)
	metrics.SweepDurationSeconds.Observe(s.clock.Since(start).Seconds())
	if err != nil {
		slog.ErrorContext(ctx, "overdue sweep failed", "cutoff", cutoff, "error", err)
		metrics.SweepRunsTotal.WithLabelValues("error").Inc()
		return
	}

	if len(affected) == 0 {
		metrics.SweepRunsTotal.WithLabelValues("empty").Inc()
		return
	}

	metrics.SweepRunsTotal.WithLabelValues("canceled").Inc()
	metrics.SweepCanceledSessionsTotal.Add(float64(len(affected)))
	slog.InfoContext(ctx, "overdue sweep canceled sessions", "cutoff", cutoff, "affected_counselees", len(affected))

	s.invalidate(ctx, domain.CacheSessionStats, domain.CacheSessionList)
}

func (s *Service) startSweepTimer() {
	ticker := s.clock.NewTicker(s.sweepInterval)
	go func() {
		for {
			select {
			case <-ticker.Chan():
				tickCtx := logging.WithCorrelationID(context.Background(), logging.NewCorrelationID())
				s.SweepOverdueSessions(tickCtx)
			case <-s.sweepStopCh:
				ticker.Stop()
				return
			}
		}
	}()
	slog.Info("overdue sweep timer started", "interval", s.sweepInterval)
}

// Stop stops the sweep timer.
func (s *Service) Stop() {
	s.stopOnce.Do(func() {
		close(s.sweepStopCh)
	})
}

func (s *Service) invalidate(ctx context.Context, tags ...domain.CacheTag) {
	if err := s.cache.Invalidate(ctx, tags...); err != nil {
		slog.ErrorContext(ctx, "cache invalidation failed", "tags", tags, "error", err)
	}
}
