package database

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/carebase/counseld/internal/domain"
)

// CreateTestCounselee inserts a counselee with the given name for testing.
func CreateTestCounselee(t *testing.T, pool *pgxpool.Pool, name string) *domain.Counselee {
	t.Helper()

	var c domain.Counselee
	err := pool.QueryRow(context.Background(),
		`INSERT INTO counselees (name) VALUES ($1) RETURNING id, name, created_at, updated_at`, name,
	).Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, c.ID)

	return &c
}

// CreateTestCounselor inserts a counselor with the given name and status.
func CreateTestCounselor(t *testing.T, pool *pgxpool.Pool, name string, status domain.CounselorStatus) *domain.Counselor {
	t.Helper()

	var c domain.Counselor
	err := pool.QueryRow(context.Background(),
		`INSERT INTO counselors (name, status) VALUES ($1, $2) RETURNING id, name, status, created_at, updated_at`,
		name, status,
	).Scan(&c.ID, &c.Name, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	require.NoError(t, err)

	return &c
}

// CreateTestReservation reserves a session via the repository and fails the
// test on any error.
func CreateTestReservation(t *testing.T, pool *pgxpool.Pool, counseleeID uuid.UUID, at time.Time) *domain.CounselSession {
	t.Helper()

	repo := NewSessionRepo(pool)
	session, err := repo.CreateReservation(context.Background(), counseleeID, at)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, session.ID)

	return session
}

// MarkTestCompleted drives a session through IN_PROGRESS into COMPLETED with
// the given start and end times.
func MarkTestCompleted(t *testing.T, pool *pgxpool.Pool, sessionID uuid.UUID, startedAt, endedAt time.Time) {
	t.Helper()

	repo := NewSessionRepo(pool)
	ctx := context.Background()

	_, err := repo.UpdateStatus(ctx, sessionID, domain.StatusInProgress, startedAt)
	require.NoError(t, err)
	_, err = repo.UpdateStatus(ctx, sessionID, domain.StatusCompleted, endedAt)
	require.NoError(t, err)
}
