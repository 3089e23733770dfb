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

type CounseleeRepo struct {
	pool *pgxpool.Pool
}

func NewCounseleeRepo(pool *pgxpool.Pool) *CounseleeRepo {
	return &CounseleeRepo{pool: pool}
}

func (r *CounseleeRepo) GetByID(ctx context.Context, counseleeID uuid.UUID) (*domain.Counselee, error) {
	var c domain.Counselee
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, created_at, updated_at FROM counselees WHERE id = $1`, counseleeID,
	).Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCounseleeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get counselee: %w", err)
	}
	return &c, nil
}
