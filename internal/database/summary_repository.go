package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carebase/counseld/internal/domain"
)

type AISummaryRepo struct {
	pool *pgxpool.Pool
}

func NewAISummaryRepo(pool *pgxpool.Pool) *AISummaryRepo {
	return &AISummaryRepo{pool: pool}
}

func (r *AISummaryRepo) GetBySessionID(ctx context.Context, sessionID uuid.UUID) (*domain.AICounselSummary, error) {
	var s domain.AICounselSummary
	err := r.pool.QueryRow(ctx, `
		SELECT id, counsel_session_id, analysed_text, created_at
		FROM ai_counsel_summaries
		WHERE counsel_session_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, sessionID).Scan(&s.ID, &s.SessionID, &s.AnalysedText, &s.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrSummaryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get counsel summary: %w", err)
	}
	return &s, nil
}
