package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CardRecordStatus tracks the completion of a session's counsel card.
type CardRecordStatus string

const (
	CardNotStarted CardRecordStatus = "NOT_STARTED"
	CardInProgress CardRecordStatus = "IN_PROGRESS"
	CardCompleted  CardRecordStatus = "COMPLETED"
)

// MedicationCounsel is the medication counseling record written during a
// session.
type MedicationCounsel struct {
	ID            uuid.UUID
	SessionID     uuid.UUID
	CounselRecord string
	CreatedAt     time.Time
}

// AICounselSummary holds the analysed transcript text for a session.
// Read-only from the core's perspective.
type AICounselSummary struct {
	ID           uuid.UUID
	SessionID    uuid.UUID
	AnalysedText string
	CreatedAt    time.Time
}

type MedicationCounselRepository interface {
	GetBySessionID(ctx context.Context, sessionID uuid.UUID) (*MedicationCounsel, error)
	CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error)
}

type AISummaryRepository interface {
	GetBySessionID(ctx context.Context, sessionID uuid.UUID) (*AICounselSummary, error)
}
