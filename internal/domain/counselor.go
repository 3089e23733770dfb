package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type CounselorStatus string

const (
	CounselorActive   CounselorStatus = "ACTIVE"
	CounselorInactive CounselorStatus = "INACTIVE"
)

// InactiveCounselorName is the placeholder reported in listings instead of
// the real name of a deactivated counselor.
const InactiveCounselorName = "Deactivated Counselor"

// UnassignedCounselorName is reported when a session has no counselor.
const UnassignedCounselorName = "Unassigned"

type Counselor struct {
	ID        uuid.UUID
	Name      string
	Status    CounselorStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CounselorRepository interface {
	GetByID(ctx context.Context, counselorID uuid.UUID) (*Counselor, error)
}
