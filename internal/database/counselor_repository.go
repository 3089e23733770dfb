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

type CounselorRepo struct {
	pool *pgxpool.Pool
}

func NewCounselorRepo(pool *pgxpool.Pool) *CounselorRepo {
	return &CounselorRepo{pool: pool}
}

func (r *CounselorRepo) GetByID(ctx context.Context, counselorID uuid.UUID) (*domain.Counselor, error) {
	var c domain.Counselor
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, status, created_at, updated_at FROM counselors WHERE id = $1`, counselorID,
	).Scan(&c.ID, &c.Name, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCounselorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get counselor: %w", err)
	}
	return &c, nil
}
