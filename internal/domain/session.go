package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ScheduleStatus is the lifecycle state of a counsel session.
type ScheduleStatus string

const (
	StatusScheduled  ScheduleStatus = "SCHEDULED"
	StatusInProgress ScheduleStatus = "IN_PROGRESS"
	StatusCompleted  ScheduleStatus = "COMPLETED"
	StatusCanceled   ScheduleStatus = "CANCELED"
)

// ParseScheduleStatus validates a status string coming from the outside.
func ParseScheduleStatus(s string) (ScheduleStatus, error) {
	switch ScheduleStatus(s) {
	case StatusScheduled, StatusInProgress, StatusCompleted, StatusCanceled:
		return ScheduleStatus(s), nil
	default:
		return "", fmt.Errorf("unknown schedule status %q", s)
	}
}

// Terminal reports whether the status accepts no further transitions.
func (s ScheduleStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCanceled
}

// CounselSession is the aggregate root of the scheduling engine. The session
// number is the 1-based rank within the counselee's non-canceled sessions,
// ordered by scheduled start time.
type CounselSession struct {
	ID               uuid.UUID
	CounseleeID      uuid.UUID
	CounselorID      *uuid.UUID
	Status           ScheduleStatus
	SessionNumber    int
	ScheduledStartAt time.Time
	StartedAt        *time.Time
	EndedAt          *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Transition applies a requested status change. Terminal states reject every
// request. Entering IN_PROGRESS stamps the actual start, COMPLETED stamps the
// actual end and requires the session to currently be IN_PROGRESS; CANCELED
// and the SCHEDULED reset branch touch no time fields.
func (cs *CounselSession) Transition(target ScheduleStatus, now time.Time) error {
	if cs.Status.Terminal() {
		return &InvalidTransitionError{From: cs.Status, To: target}
	}

	switch target {
	case StatusCompleted:
		if cs.Status != StatusInProgress || cs.StartedAt == nil {
			return &InvalidTransitionError{From: cs.Status, To: target}
		}
		cs.EndedAt = &now
	case StatusInProgress:
		cs.StartedAt = &now
	case StatusCanceled, StatusScheduled:
		// no time-field side effects
	default:
		return &InvalidTransitionError{From: cs.Status, To: target}
	}

	cs.Status = target
	return nil
}

// Duration returns the counseled time of a completed session, or zero when
// either timestamp is missing.
func (cs *CounselSession) Duration() time.Duration {
	if cs.StartedAt == nil || cs.EndedAt == nil {
		return 0
	}
	return cs.EndedAt.Sub(*cs.StartedAt)
}

// SessionRepository abstracts counsel session persistence. Every mutating
// method runs as one atomic unit against the store: the conflict check, the
// row change, and the renumbering of the affected counselee commit together
// or not at all.
type SessionRepository interface {
	GetByID(ctx context.Context, sessionID uuid.UUID) (*CounselSession, error)

	// CreateReservation reserves the slot and creates the session's counsel
	// card and consent record in the same unit of work.
	CreateReservation(ctx context.Context, counseleeID uuid.UUID, scheduledStartAt time.Time) (*CounselSession, error)
	ModifyReservation(ctx context.Context, sessionID, counseleeID uuid.UUID, scheduledStartAt time.Time) (*CounselSession, error)
	UpdateStatus(ctx context.Context, sessionID uuid.UUID, requested ScheduleStatus, now time.Time) (*CounselSession, error)
	UpdateCounselor(ctx context.Context, sessionID, counselorID uuid.UUID) error
	Delete(ctx context.Context, sessionID uuid.UUID) error

	// RenumberSessions recomputes the counselee's numbering in its own
	// transaction and returns the number of rows rewritten.
	RenumberSessions(ctx context.Context, counseleeID uuid.UUID) (int, error)

	// CancelOverdue batch-cancels sessions still in SCHEDULED or IN_PROGRESS
	// scheduled before the cutoff and returns the distinct affected
	// counselee ids. The status predicate is part of the atomic update, so
	// overlapping sweep runs never double-process a session.
	CancelOverdue(ctx context.Context, cutoff time.Time) ([]uuid.UUID, error)

	ListByDay(ctx context.Context, day time.Time) ([]SessionListItem, error)
	Search(ctx context.Context, filter SessionSearchFilter, page PageReq) (*Page[CounselSession], error)
	DistinctDates(ctx context.Context, year int, month time.Month) ([]time.Time, error)
	ListCompletedBefore(ctx context.Context, counseleeID uuid.UUID, before time.Time) ([]CounselSession, error)
	PageCompletedBefore(ctx context.Context, counseleeID uuid.UUID, before time.Time, page PageReq) (*Page[CounselSession], error)

	CompletedInMonth(ctx context.Context, year int, month time.Month) ([]CounselSession, error)
	CountDistinctCounseleesInMonth(ctx context.Context, year int, month time.Month) (int64, error)
	CountActiveCounselorsCompletedInYear(ctx context.Context, year int) (int64, error)
}
