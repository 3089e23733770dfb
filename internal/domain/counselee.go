package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Counselee is the person receiving counseling. Each counselee owns one
// numbering sequence of sessions.
type Counselee struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CounseleeRepository interface {
	GetByID(ctx context.Context, counseleeID uuid.UUID) (*Counselee, error)
}
