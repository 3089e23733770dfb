package domain

import (
	"math/rand"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numberedSession(number int) CounselSession {
	return CounselSession{ID: uuid.New(), SessionNumber: number}
}

func TestAssignSessionNumbers_Empty(t *testing.T) {
	assert.Empty(t, AssignSessionNumbers(nil))
}

func TestAssignSessionNumbers_AllCorrectYieldsNoUpdates(t *testing.T) {
	sessions := []CounselSession{numberedSession(1), numberedSession(2), numberedSession(3)}
	assert.Empty(t, AssignSessionNumbers(sessions))
}

func TestAssignSessionNumbers_OnlyWrongRowsChange(t *testing.T) {
	sessions := []CounselSession{numberedSession(1), numberedSession(3), numberedSession(4)}

	updates := AssignSessionNumbers(sessions)
	require.Len(t, updates, 2)
	assert.Equal(t, 2, updates[sessions[1].ID])
	assert.Equal(t, 3, updates[sessions[2].ID])
}

func TestAssignSessionNumbers_GapAfterCancellation(t *testing.T) {
	// Numbers {1,2,3}; the middle session was canceled and removed from the
	// valid set, so the remaining two must renumber to {1,2}.
	first := numberedSession(1)
	third := numberedSession(3)

	updates := AssignSessionNumbers([]CounselSession{first, third})
	require.Len(t, updates, 1)
	assert.Equal(t, 2, updates[third.ID])
}

func TestAssignSessionNumbers_Idempotent(t *testing.T) {
	sessions := []CounselSession{numberedSession(4), numberedSession(1), numberedSession(7)}

	updates := AssignSessionNumbers(sessions)
	for i := range sessions {
		if n, ok := updates[sessions[i].ID]; ok {
			sessions[i].SessionNumber = n
		}
	}

	assert.Empty(t, AssignSessionNumbers(sessions))
}

// TestAssignSessionNumbers_RandomOperationSequences drives a counselee's
// session set through random creates, cancellations, and reschedules,
// renumbering after each structural change, and checks the numbering
// invariant: valid sessions carry exactly {1..N} ordered by scheduled time.
func TestAssignSessionNumbers_RandomOperationSequences(t *testing.T) {
	rng := rand.New(rand.NewSource(20260301))
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	var sessions []CounselSession

	validOrdered := func() []CounselSession {
		var valid []CounselSession
		for _, s := range sessions {
			if s.Status != StatusCanceled {
				valid = append(valid, s)
			}
		}
		sort.Slice(valid, func(i, j int) bool {
			return valid[i].ScheduledStartAt.Before(valid[j].ScheduledStartAt)
		})
		return valid
	}

	renumber := func() {
		updates := AssignSessionNumbers(validOrdered())
		for i := range sessions {
			if n, ok := updates[sessions[i].ID]; ok {
				sessions[i].SessionNumber = n
			}
		}
	}

	for op := 0; op < 500; op++ {
		switch rng.Intn(3) {
		case 0: // create
			sessions = append(sessions, CounselSession{
				ID:               uuid.New(),
				Status:           StatusScheduled,
				ScheduledStartAt: base.Add(time.Duration(rng.Int63n(1 << 50))),
			})
		case 1: // cancel a random session
			if len(sessions) > 0 {
				sessions[rng.Intn(len(sessions))].Status = StatusCanceled
			}
		case 2: // reschedule a random session
			if len(sessions) > 0 {
				i := rng.Intn(len(sessions))
				sessions[i].ScheduledStartAt = base.Add(time.Duration(rng.Int63n(1 << 50)))
			}
		}
		renumber()

		valid := validOrdered()
		for i, s := range valid {
			require.Equal(t, i+1, s.SessionNumber,
				"op %d: session at rank %d carries number %d", op, i+1, s.SessionNumber)
		}

		// A second pass with no intervening mutation must be empty.
		require.Empty(t, AssignSessionNumbers(valid), "op %d: renumbering not idempotent", op)
	}
}
