package domain

import (
	"errors"
	"fmt"
)

var (
	ErrSessionNotFound    = errors.New("counsel session not found")
	ErrCounseleeNotFound  = errors.New("counselee not found")
	ErrCounselorNotFound  = errors.New("counselor not found")
	ErrScheduleConflict   = errors.New("counselee already has a reservation at this time")
	ErrSummaryNotFound    = errors.New("ai counsel summary not found")
	ErrMedicationNotFound = errors.New("medication counsel record not found")
)

// InvalidTransitionError reports a rejected status change. It carries the
// exact from/to pair so callers can tell a terminal-state violation apart
// from a skipped-state request.
type InvalidTransitionError struct {
	From ScheduleStatus
	To   ScheduleStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %s to %s", e.From, e.To)
}
