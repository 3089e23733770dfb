package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carebase/counseld/internal/domain"
)

type MedicationCounselRepo struct {
	pool *pgxpool.Pool
}

func NewMedicationCounselRepo(pool *pgxpool.Pool) *MedicationCounselRepo {
	return &MedicationCounselRepo{pool: pool}
}

func (r *MedicationCounselRepo) GetBySessionID(ctx context.Context, sessionID uuid.UUID) (*domain.MedicationCounsel, error) {
	var m domain.MedicationCounsel
	err := r.pool.QueryRow(ctx, `
		SELECT id, counsel_session_id, counsel_record, created_at
		FROM medication_counsels
		WHERE counsel_session_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, sessionID).Scan(&m.ID, &m.SessionID, &m.CounselRecord, &m.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrMedicationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get medication counsel: %w", err)
	}
	return &m, nil
}

func (r *MedicationCounselRepo) CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM medication_counsels WHERE created_at >= $1 AND created_at < $2
	`, from, to).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count medication counsels: %w", err)
	}
	return count, nil
}
