package domain

import "github.com/google/uuid"

// AssignSessionNumbers walks the counselee's valid sessions (ordered by
// scheduled start time ascending, canceled sessions excluded by the caller)
// and returns the id to number change-set for rows whose stored number
// differs from the recomputed one. Rows that already carry the right number
// are left out, so the pass is idempotent: a second run over the result of
// the first yields an empty map.
func AssignSessionNumbers(sessions []CounselSession) map[uuid.UUID]int {
	updates := make(map[uuid.UUID]int)

	number := 1
	for _, s := range sessions {
		if s.SessionNumber != number {
			updates[s.ID] = number
		}
		number++
	}

	return updates
}
