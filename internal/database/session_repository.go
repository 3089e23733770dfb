package database

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carebase/counseld/internal/domain"
	"github.com/carebase/counseld/internal/metrics"
)

// sessionColumns must match the Scan order in scanSession.
const sessionColumns = `id, counselee_id, counselor_id, status, session_number, scheduled_start_at, started_at, ended_at, created_at, updated_at`

const uniqueViolationCode = "23505"

// SessionRepo implements domain.SessionRepository backed by PostgreSQL.
type SessionRepo struct {
	pool *pgxpool.Pool
}

func NewSessionRepo(pool *pgxpool.Pool) *SessionRepo {
	return &SessionRepo{pool: pool}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*domain.CounselSession, error) {
	var s domain.CounselSession
	err := row.Scan(
		&s.ID, &s.CounseleeID, &s.CounselorID, &s.Status, &s.SessionNumber,
		&s.ScheduledStartAt, &s.StartedAt, &s.EndedAt, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// lockCounselee serializes all mutations of one counselee's session set for
// the duration of the transaction. Renumbering reads would otherwise miss
// rows inserted by a concurrent, uncommitted writer.
func lockCounselee(ctx context.Context, tx pgx.Tx, counseleeID uuid.UUID) error {
	_, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, counseleeID.String())
	if err != nil {
		return fmt.Errorf("failed to lock counselee %s: %w", counseleeID, err)
	}
	return nil
}

// readCounseleeID resolves the owning counselee without locking the row, so
// the advisory lock can be taken before any row lock.
func readCounseleeID(ctx context.Context, tx pgx.Tx, sessionID uuid.UUID) (uuid.UUID, error) {
	var counseleeID uuid.UUID
	err := tx.QueryRow(ctx,
		`SELECT counselee_id FROM counsel_sessions WHERE id = $1`, sessionID).Scan(&counseleeID)
	if errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to resolve session owner: %w", err)
	}
	return counseleeID, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

func (r *SessionRepo) GetByID(ctx context.Context, sessionID uuid.UUID) (*domain.CounselSession, error) {
	session, err := scanSession(r.pool.QueryRow(ctx,
		`SELECT `+sessionColumns+` FROM counsel_sessions WHERE id = $1`, sessionID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return session, nil
}

func (r *SessionRepo) CreateReservation(ctx context.Context, counseleeID uuid.UUID, scheduledStartAt time.Time) (*domain.CounselSession, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	if err := lockCounselee(ctx, tx, counseleeID); err != nil {
		return nil, err
	}

	if err := checkSlotFree(ctx, tx, counseleeID, scheduledStartAt); err != nil {
		return nil, err
	}

	session, err := scanSession(tx.QueryRow(ctx, `
		INSERT INTO counsel_sessions (counselee_id, status, scheduled_start_at, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING `+sessionColumns,
		counseleeID, domain.StatusScheduled, scheduledStartAt))
	if isUniqueViolation(err) {
		// Backstop: the slot unique index caught a writer that slipped
		// past the exists check.
		return nil, domain.ErrScheduleConflict
	}
	if err != nil {
		return nil, fmt.Errorf("failed to insert reservation: %w", err)
	}

	// The dependent records commit with the session or not at all: a
	// reservation must never exist without its card and consent rows.
	if err := initializeCard(ctx, tx, session.ID); err != nil {
		return nil, err
	}
	if err := initializeConsent(ctx, tx, session.ID, counseleeID); err != nil {
		return nil, err
	}

	if _, err := renumberInTx(ctx, tx, counseleeID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit reservation: %w", err)
	}

	// The renumbering pass may have changed the returned row.
	return r.GetByID(ctx, session.ID)
}

func (r *SessionRepo) ModifyReservation(ctx context.Context, sessionID, counseleeID uuid.UUID, scheduledStartAt time.Time) (*domain.CounselSession, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	// Advisory locks come before any session row lock, matching the order
	// used by creation and renumbering. Both counselees are locked in a
	// fixed order so concurrent reassignments cannot deadlock on each other.
	currentCounseleeID, err := readCounseleeID(ctx, tx, sessionID)
	if err != nil {
		return nil, err
	}
	for _, id := range orderedCounselees(currentCounseleeID, counseleeID) {
		if err := lockCounselee(ctx, tx, id); err != nil {
			return nil, err
		}
	}

	session, err := scanSession(tx.QueryRow(ctx,
		`SELECT `+sessionColumns+` FROM counsel_sessions WHERE id = $1 FOR UPDATE`, sessionID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session.CounseleeID != currentCounseleeID {
		// A concurrent reassignment moved the session between the plain read
		// and the row lock. Lock its current owner too.
		if err := lockCounselee(ctx, tx, session.CounseleeID); err != nil {
			return nil, err
		}
	}

	// Deliberately checks against all of the counselee's sessions with no
	// self-exclusion: keeping the current time slot counts as a conflict.
	if err := checkSlotFree(ctx, tx, counseleeID, scheduledStartAt); err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, `
		UPDATE counsel_sessions
		SET counselee_id = $1, scheduled_start_at = $2, updated_at = NOW()
		WHERE id = $3
	`, counseleeID, scheduledStartAt, sessionID); err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrScheduleConflict
		}
		return nil, fmt.Errorf("failed to update reservation: %w", err)
	}

	if _, err := renumberInTx(ctx, tx, counseleeID); err != nil {
		return nil, err
	}
	if session.CounseleeID != counseleeID {
		// Moving the session to another counselee leaves a gap in the old
		// counselee's sequence.
		if _, err := renumberInTx(ctx, tx, session.CounseleeID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit reservation change: %w", err)
	}

	return r.GetByID(ctx, sessionID)
}

func (r *SessionRepo) UpdateStatus(ctx context.Context, sessionID uuid.UUID, requested domain.ScheduleStatus, now time.Time) (*domain.CounselSession, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	// Advisory lock first, then the row lock, same order as every other
	// writer of this counselee's session set.
	counseleeID, err := readCounseleeID(ctx, tx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := lockCounselee(ctx, tx, counseleeID); err != nil {
		return nil, err
	}

	session, err := scanSession(tx.QueryRow(ctx,
		`SELECT `+sessionColumns+` FROM counsel_sessions WHERE id = $1 FOR UPDATE`, sessionID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session.CounseleeID != counseleeID {
		if err := lockCounselee(ctx, tx, session.CounseleeID); err != nil {
			return nil, err
		}
	}

	if err := session.Transition(requested, now); err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, `
		UPDATE counsel_sessions
		SET status = $1, started_at = $2, ended_at = $3, updated_at = NOW()
		WHERE id = $4
	`, session.Status, session.StartedAt, session.EndedAt, sessionID); err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}

	if _, err := renumberInTx(ctx, tx, session.CounseleeID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit status change: %w", err)
	}

	return r.GetByID(ctx, sessionID)
}

func (r *SessionRepo) UpdateCounselor(ctx context.Context, sessionID, counselorID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE counsel_sessions SET counselor_id = $1, updated_at = NOW() WHERE id = $2
	`, counselorID, sessionID)
	if err != nil {
		return fmt.Errorf("failed to update counselor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

func (r *SessionRepo) Delete(ctx context.Context, sessionID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM counsel_sessions WHERE id = $1`, sessionID)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

func (r *SessionRepo) RenumberSessions(ctx context.Context, counseleeID uuid.UUID) (int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if err := lockCounselee(ctx, tx, counseleeID); err != nil {
		return 0, err
	}

	changed, err := renumberInTx(ctx, tx, counseleeID)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit renumbering: %w", err)
	}
	return changed, nil
}

// renumberInTx recomputes the counselee's session numbers inside the
// caller's transaction. Rows already carrying the right number are not
// rewritten.
func renumberInTx(ctx context.Context, tx pgx.Tx, counseleeID uuid.UUID) (int, error) {
	rows, err := tx.Query(ctx, `
		SELECT id, session_number FROM counsel_sessions
		WHERE counselee_id = $1 AND status <> $2
		ORDER BY scheduled_start_at ASC
		FOR UPDATE
	`, counseleeID, domain.StatusCanceled)
	if err != nil {
		return 0, fmt.Errorf("failed to list valid sessions: %w", err)
	}

	var sessions []domain.CounselSession
	for rows.Next() {
		var s domain.CounselSession
		if err := rows.Scan(&s.ID, &s.SessionNumber); err != nil {
			rows.Close()
			return 0, fmt.Errorf("failed to scan session row: %w", err)
		}
		sessions = append(sessions, s)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("failed to read valid sessions: %w", err)
	}

	updates := domain.AssignSessionNumbers(sessions)
	if len(updates) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for id, number := range updates {
		batch.Queue(`UPDATE counsel_sessions SET session_number = $1, updated_at = NOW() WHERE id = $2`, number, id)
	}

	results := tx.SendBatch(ctx, batch)
	for range updates {
		if _, err := results.Exec(); err != nil {
			results.Close() //nolint:errcheck
			return 0, fmt.Errorf("failed to apply session numbers: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return 0, fmt.Errorf("failed to close renumber batch: %w", err)
	}

	metrics.SessionNumberRewritesTotal.Add(float64(len(updates)))
	return len(updates), nil
}

func (r *SessionRepo) CancelOverdue(ctx context.Context, cutoff time.Time) ([]uuid.UUID, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	// Lock the affected counselees first, in a fixed order, before touching
	// any session rows. Keeps the lock order consistent with the
	// reservation paths.
	rows, err := tx.Query(ctx, `
		SELECT id, counselee_id FROM counsel_sessions
		WHERE status = ANY($1) AND scheduled_start_at < $2
	`, []string{string(domain.StatusScheduled), string(domain.StatusInProgress)}, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to select overdue sessions: %w", err)
	}
	var (
		overdueIDs []uuid.UUID
		counselees = make(map[uuid.UUID]struct{})
	)
	for rows.Next() {
		var sessionID, counseleeID uuid.UUID
		if err := rows.Scan(&sessionID, &counseleeID); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan overdue session: %w", err)
		}
		overdueIDs = append(overdueIDs, sessionID)
		counselees[counseleeID] = struct{}{}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read overdue sessions: %w", err)
	}

	if len(overdueIDs) == 0 {
		return nil, tx.Commit(ctx)
	}

	affected := make([]uuid.UUID, 0, len(counselees))
	for id := range counselees {
		affected = append(affected, id)
	}
	sort.Slice(affected, func(i, j int) bool { return affected[i].String() < affected[j].String() })
	for _, id := range affected {
		if err := lockCounselee(ctx, tx, id); err != nil {
			return nil, err
		}
	}

	// The update is bound to the pre-selected ids so every canceled session
	// belongs to a locked, renumbered, reported counselee; a session that
	// became overdue after the select waits for the next run. The status
	// predicate skips sessions a concurrent writer already moved out of
	// SCHEDULED/IN_PROGRESS.
	if _, err := tx.Exec(ctx, `
		UPDATE counsel_sessions SET status = $1, updated_at = NOW()
		WHERE id = ANY($2) AND status = ANY($3)
	`, domain.StatusCanceled, overdueIDs,
		[]string{string(domain.StatusScheduled), string(domain.StatusInProgress)}); err != nil {
		return nil, fmt.Errorf("failed to cancel overdue sessions: %w", err)
	}

	for _, id := range affected {
		if _, err := renumberInTx(ctx, tx, id); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit overdue sweep: %w", err)
	}

	return affected, nil
}

func (r *SessionRepo) ListValidByCounselee(ctx context.Context, counseleeID uuid.UUID) ([]domain.CounselSession, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+sessionColumns+` FROM counsel_sessions
		WHERE counselee_id = $1 AND status <> $2
		ORDER BY scheduled_start_at ASC
	`, counseleeID, domain.StatusCanceled)
	if err != nil {
		return nil, fmt.Errorf("failed to list valid sessions: %w", err)
	}
	defer rows.Close()
	return collectSessions(rows)
}

func (r *SessionRepo) ListByDay(ctx context.Context, day time.Time) ([]domain.SessionListItem, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	rows, err := r.pool.Query(ctx, `
		SELECT cs.id, cs.scheduled_start_at, cs.counselee_id, ce.name,
			CASE WHEN co.id IS NULL OR co.status = $3 THEN '' ELSE co.id::text END,
			CASE WHEN co.id IS NULL THEN $4 WHEN co.status = $3 THEN $5 ELSE co.name END,
			cs.status, cc.card_record_status, cst.is_consent
		FROM counsel_sessions cs
		JOIN counselees ce ON ce.id = cs.counselee_id
		LEFT JOIN counselors co ON co.id = cs.counselor_id
		LEFT JOIN counsel_cards cc ON cc.counsel_session_id = cs.id
		LEFT JOIN counselee_consents cst ON cst.counsel_session_id = cs.id
		WHERE cs.scheduled_start_at >= $1 AND cs.scheduled_start_at < $2
		ORDER BY cs.scheduled_start_at ASC
	`, start, end, domain.CounselorInactive, domain.UnassignedCounselorName, domain.InactiveCounselorName)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions by day: %w", err)
	}
	defer rows.Close()

	var items []domain.SessionListItem
	for rows.Next() {
		var item domain.SessionListItem
		if err := rows.Scan(
			&item.SessionID, &item.ScheduledStartAt, &item.CounseleeID, &item.CounseleeName,
			&item.CounselorID, &item.CounselorName, &item.Status,
			&item.CardRecordStatus, &item.ConsentGiven,
		); err != nil {
			return nil, fmt.Errorf("failed to scan list item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read list items: %w", err)
	}
	return items, nil
}

func (r *SessionRepo) Search(ctx context.Context, filter domain.SessionSearchFilter, page domain.PageReq) (*domain.Page[domain.CounselSession], error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.CounseleeName != "" {
		conds = append(conds, fmt.Sprintf("ce.name ILIKE %s", arg("%"+filter.CounseleeName+"%")))
	}
	if len(filter.CounselorNames) > 0 {
		conds = append(conds, fmt.Sprintf("co.name = ANY(%s) AND co.status = %s",
			arg(filter.CounselorNames), arg(domain.CounselorActive)))
	}
	if len(filter.ScheduledDates) > 0 {
		var dateConds []string
		for _, date := range filter.ScheduledDates {
			start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
			end := start.AddDate(0, 0, 1)
			dateConds = append(dateConds, fmt.Sprintf(
				"(cs.scheduled_start_at >= %s AND cs.scheduled_start_at < %s)", arg(start), arg(end)))
		}
		conds = append(conds, "("+strings.Join(dateConds, " OR ")+")")
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		conds = append(conds, fmt.Sprintf("cs.status = ANY(%s)", arg(statuses)))
	}

	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	const fromClause = `
		FROM counsel_sessions cs
		JOIN counselees ce ON ce.id = cs.counselee_id
		LEFT JOIN counselors co ON co.id = cs.counselor_id
	`

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) `+fromClause+where, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count search results: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT cs.id, cs.counselee_id, cs.counselor_id, cs.status, cs.session_number,
			cs.scheduled_start_at, cs.started_at, cs.ended_at, cs.created_at, cs.updated_at
		%s %s
		ORDER BY cs.scheduled_start_at DESC
		LIMIT %s OFFSET %s
	`, fromClause, where, arg(page.Limit()), arg(page.Offset()))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search sessions: %w", err)
	}
	defer rows.Close()

	sessions, err := collectSessions(rows)
	if err != nil {
		return nil, err
	}
	return domain.NewPage(sessions, total, page), nil
}

func (r *SessionRepo) DistinctDates(ctx context.Context, year int, month time.Month) ([]time.Time, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	rows, err := r.pool.Query(ctx, `
		SELECT DISTINCT date_trunc('day', scheduled_start_at AT TIME ZONE 'UTC') AS day
		FROM counsel_sessions
		WHERE scheduled_start_at >= $1 AND scheduled_start_at < $2
		ORDER BY day ASC
	`, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list session dates: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan date: %w", err)
		}
		dates = append(dates, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dates: %w", err)
	}
	return dates, nil
}

func (r *SessionRepo) ListCompletedBefore(ctx context.Context, counseleeID uuid.UUID, before time.Time) ([]domain.CounselSession, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+sessionColumns+` FROM counsel_sessions
		WHERE counselee_id = $1 AND status = $2 AND scheduled_start_at < $3
		ORDER BY ended_at DESC
	`, counseleeID, domain.StatusCompleted, before)
	if err != nil {
		return nil, fmt.Errorf("failed to list previous sessions: %w", err)
	}
	defer rows.Close()
	return collectSessions(rows)
}

func (r *SessionRepo) PageCompletedBefore(ctx context.Context, counseleeID uuid.UUID, before time.Time, page domain.PageReq) (*domain.Page[domain.CounselSession], error) {
	var total int64
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM counsel_sessions
		WHERE counselee_id = $1 AND status = $2 AND scheduled_start_at < $3
	`, counseleeID, domain.StatusCompleted, before).Scan(&total)
	if err != nil {
		return nil, fmt.Errorf("failed to count previous sessions: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+sessionColumns+` FROM counsel_sessions
		WHERE counselee_id = $1 AND status = $2 AND scheduled_start_at < $3
		ORDER BY ended_at DESC
		LIMIT $4 OFFSET $5
	`, counseleeID, domain.StatusCompleted, before, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to page previous sessions: %w", err)
	}
	defer rows.Close()

	sessions, err := collectSessions(rows)
	if err != nil {
		return nil, err
	}
	return domain.NewPage(sessions, total, page), nil
}

func (r *SessionRepo) CompletedInMonth(ctx context.Context, year int, month time.Month) ([]domain.CounselSession, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	rows, err := r.pool.Query(ctx, `
		SELECT `+sessionColumns+` FROM counsel_sessions
		WHERE status = $1 AND started_at >= $2 AND started_at < $3 AND ended_at IS NOT NULL
	`, domain.StatusCompleted, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list completed sessions: %w", err)
	}
	defer rows.Close()
	return collectSessions(rows)
}

func (r *SessionRepo) CountDistinctCounseleesInMonth(ctx context.Context, year int, month time.Month) (int64, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	var count int64
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(DISTINCT counselee_id) FROM counsel_sessions
		WHERE scheduled_start_at >= $1 AND scheduled_start_at < $2
	`, start, end).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count counselees: %w", err)
	}
	return count, nil
}

func (r *SessionRepo) CountActiveCounselorsCompletedInYear(ctx context.Context, year int) (int64, error) {
	start := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	var count int64
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(DISTINCT cs.counselor_id)
		FROM counsel_sessions cs
		JOIN counselors co ON co.id = cs.counselor_id
		WHERE cs.status = $1 AND co.status = $2
			AND cs.started_at >= $3 AND cs.started_at < $4
	`, domain.StatusCompleted, domain.CounselorActive, start, end).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count counselors: %w", err)
	}
	return count, nil
}

// checkSlotFree rejects a slot held by any existing session of the
// counselee, canceled ones included. Only deletion frees a slot.
func checkSlotFree(ctx context.Context, tx pgx.Tx, counseleeID uuid.UUID, scheduledStartAt time.Time) error {
	var taken bool
	err := tx.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM counsel_sessions
			WHERE counselee_id = $1 AND scheduled_start_at = $2
		)
	`, counseleeID, scheduledStartAt).Scan(&taken)
	if err != nil {
		return fmt.Errorf("failed to check schedule conflict: %w", err)
	}
	if taken {
		return domain.ErrScheduleConflict
	}
	return nil
}

func orderedCounselees(a, b uuid.UUID) []uuid.UUID {
	if a == b {
		return []uuid.UUID{a}
	}
	if a.String() < b.String() {
		return []uuid.UUID{a, b}
	}
	return []uuid.UUID{b, a}
}

func collectSessions(rows pgx.Rows) ([]domain.CounselSession, error) {
	var sessions []domain.CounselSession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read sessions: %w", err)
	}
	return sessions, nil
}
