package app

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carebase/counseld/internal/domain"
)

// --- function-field mocks ---

type mockSessionRepo struct {
	getByIDFn            func(ctx context.Context, sessionID uuid.UUID) (*domain.CounselSession, error)
	createReservationFn  func(ctx context.Context, counseleeID uuid.UUID, at time.Time) (*domain.CounselSession, error)
	modifyReservationFn  func(ctx context.Context, sessionID, counseleeID uuid.UUID, at time.Time) (*domain.CounselSession, error)
	updateStatusFn       func(ctx context.Context, sessionID uuid.UUID, requested domain.ScheduleStatus, now time.Time) (*domain.CounselSession, error)
	updateCounselorFn    func(ctx context.Context, sessionID, counselorID uuid.UUID) error
	deleteFn             func(ctx context.Context, sessionID uuid.UUID) error
	renumberFn           func(ctx context.Context, counseleeID uuid.UUID) (int, error)
	cancelOverdueFn      func(ctx context.Context, cutoff time.Time) ([]uuid.UUID, error)
	listByDayFn          func(ctx context.Context, day time.Time) ([]domain.SessionListItem, error)
	searchFn             func(ctx context.Context, filter domain.SessionSearchFilter, page domain.PageReq) (*domain.Page[domain.CounselSession], error)
	distinctDatesFn      func(ctx context.Context, year int, month time.Month) ([]time.Time, error)
	listCompletedFn      func(ctx context.Context, counseleeID uuid.UUID, before time.Time) ([]domain.CounselSession, error)
	pageCompletedFn      func(ctx context.Context, counseleeID uuid.UUID, before time.Time, page domain.PageReq) (*domain.Page[domain.CounselSession], error)
	completedInMonthFn   func(ctx context.Context, year int, month time.Month) ([]domain.CounselSession, error)
	countCounseleesFn    func(ctx context.Context, year int, month time.Month) (int64, error)
	countCounselorsFn    func(ctx context.Context, year int) (int64, error)
}

func (m *mockSessionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.CounselSession, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockSessionRepo) CreateReservation(ctx context.Context, counseleeID uuid.UUID, at time.Time) (*domain.CounselSession, error) {
	return m.createReservationFn(ctx, counseleeID, at)
}

func (m *mockSessionRepo) ModifyReservation(ctx context.Context, sessionID, counseleeID uuid.UUID, at time.Time) (*domain.CounselSession, error) {
	return m.modifyReservationFn(ctx, sessionID, counseleeID, at)
}

func (m *mockSessionRepo) UpdateStatus(ctx context.Context, sessionID uuid.UUID, requested domain.ScheduleStatus, now time.Time) (*domain.CounselSession, error) {
	return m.updateStatusFn(ctx, sessionID, requested, now)
}

func (m *mockSessionRepo) UpdateCounselor(ctx context.Context, sessionID, counselorID uuid.UUID) error {
	return m.updateCounselorFn(ctx, sessionID, counselorID)
}

func (m *mockSessionRepo) Delete(ctx context.Context, sessionID uuid.UUID) error {
	return m.deleteFn(ctx, sessionID)
}

func (m *mockSessionRepo) RenumberSessions(ctx context.Context, counseleeID uuid.UUID) (int, error) {
	return m.renumberFn(ctx, counseleeID)
}

func (m *mockSessionRepo) CancelOverdue(ctx context.Context, cutoff time.Time) ([]uuid.UUID, error) {
	return m.cancelOverdueFn(ctx, cutoff)
}

func (m *mockSessionRepo) ListByDay(ctx context.Context, day time.Time) ([]domain.SessionListItem, error) {
	return m.listByDayFn(ctx, day)
}

func (m *mockSessionRepo) Search(ctx context.Context, filter domain.SessionSearchFilter, page domain.PageReq) (*domain.Page[domain.CounselSession], error) {
	return m.searchFn(ctx, filter, page)
}

func (m *mockSessionRepo) DistinctDates(ctx context.Context, year int, month time.Month) ([]time.Time, error) {
	return m.distinctDatesFn(ctx, year, month)
}

func (m *mockSessionRepo) ListCompletedBefore(ctx context.Context, counseleeID uuid.UUID, before time.Time) ([]domain.CounselSession, error) {
	return m.listCompletedFn(ctx, counseleeID, before)
}

func (m *mockSessionRepo) PageCompletedBefore(ctx context.Context, counseleeID uuid.UUID, before time.Time, page domain.PageReq) (*domain.Page[domain.CounselSession], error) {
	return m.pageCompletedFn(ctx, counseleeID, before, page)
}

func (m *mockSessionRepo) CompletedInMonth(ctx context.Context, year int, month time.Month) ([]domain.CounselSession, error) {
	return m.completedInMonthFn(ctx, year, month)
}

func (m *mockSessionRepo) CountDistinctCounseleesInMonth(ctx context.Context, year int, month time.Month) (int64, error) {
	return m.countCounseleesFn(ctx, year, month)
}

func (m *mockSessionRepo) CountActiveCounselorsCompletedInYear(ctx context.Context, year int) (int64, error) {
	return m.countCounselorsFn(ctx, year)
}

type mockCounseleeRepo struct {
	getByIDFn func(ctx context.Context, id uuid.UUID) (*domain.Counselee, error)
}

func (m *mockCounseleeRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Counselee, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return &domain.Counselee{ID: id, Name: "Jane Doe"}, nil
}

type mockCounselorRepo struct {
	getByIDFn func(ctx context.Context, id uuid.UUID) (*domain.Counselor, error)
}

func (m *mockCounselorRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Counselor, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return &domain.Counselor{ID: id, Name: "Dr. Smith", Status: domain.CounselorActive}, nil
}

type mockMedicationRepo struct {
	getBySessionFn func(ctx context.Context, sessionID uuid.UUID) (*domain.MedicationCounsel, error)
	countFn        func(ctx context.Context, from, to time.Time) (int64, error)
}

func (m *mockMedicationRepo) GetBySessionID(ctx context.Context, sessionID uuid.UUID) (*domain.MedicationCounsel, error) {
	if m.getBySessionFn != nil {
		return m.getBySessionFn(ctx, sessionID)
	}
	return nil, domain.ErrMedicationNotFound
}

func (m *mockMedicationRepo) CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	if m.countFn != nil {
		return m.countFn(ctx, from, to)
	}
	return 0, nil
}

type mockSummaryRepo struct {
	getBySessionFn func(ctx context.Context, sessionID uuid.UUID) (*domain.AICounselSummary, error)
}

func (m *mockSummaryRepo) GetBySessionID(ctx context.Context, sessionID uuid.UUID) (*domain.AICounselSummary, error) {
	if m.getBySessionFn != nil {
		return m.getBySessionFn(ctx, sessionID)
	}
	return nil, domain.ErrSummaryNotFound
}

// mockCache records invalidations and serves optional canned entries.
type mockCache struct {
	mu          sync.Mutex
	entries     map[string]any
	invalidated []domain.CacheTag
	sets        int
}

func newMockCache() *mockCache {
	return &mockCache{entries: make(map[string]any)}
}

func (m *mockCache) Get(_ context.Context, tag domain.CacheTag, key string, dest any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.entries[string(tag)+":"+key]
	if !ok {
		return false, nil
	}
	switch d := dest.(type) {
	case *domain.SessionStats:
		*d = value.(domain.SessionStats)
	case *[]time.Time:
		*d = value.([]time.Time)
	case *[]domain.SessionListItem:
		*d = value.([]domain.SessionListItem)
	default:
		return false, nil
	}
	return true, nil
}

func (m *mockCache) Set(_ context.Context, tag domain.CacheTag, key string, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
	switch v := value.(type) {
	case *domain.SessionStats:
		m.entries[string(tag)+":"+key] = *v
	default:
		m.entries[string(tag)+":"+key] = v
	}
	return nil
}

func (m *mockCache) Invalidate(_ context.Context, tags ...domain.CacheTag) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invalidated = append(m.invalidated, tags...)
	return nil
}

func (m *mockCache) invalidatedTags() []domain.CacheTag {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.CacheTag(nil), m.invalidated...)
}

func newTestService(t *testing.T, sessions *mockSessionRepo, cache *mockCache, clock clockwork.Clock) *Service {
	t.Helper()
	return newTestServiceWith(t, Repositories{
		Sessions:    sessions,
		Counselees:  &mockCounseleeRepo{},
		Counselors:  &mockCounselorRepo{},
		Medications: &mockMedicationRepo{},
		Summaries:   &mockSummaryRepo{},
	}, cache, clock)
}

func newTestServiceWith(t *testing.T, repos Repositories, cache *mockCache, clock clockwork.Clock) *Service {
	t.Helper()
	svc := NewService(repos, cache, clock, time.Hour, 24*time.Hour)
	t.Cleanup(svc.Stop)
	return svc
}

// --- tests ---

func TestCreateReservation_UnknownCounselee(t *testing.T) {
	cache := newMockCache()
	svc := newTestServiceWith(t, Repositories{
		Sessions: &mockSessionRepo{},
		Counselees: &mockCounseleeRepo{
			getByIDFn: func(_ context.Context, _ uuid.UUID) (*domain.Counselee, error) {
				return nil, domain.ErrCounseleeNotFound
			},
		},
	}, cache, clockwork.NewFakeClock())

	_, err := svc.CreateReservation(context.Background(), uuid.New(), time.Now())
	assert.ErrorIs(t, err, domain.ErrCounseleeNotFound)
	assert.Empty(t, cache.invalidatedTags())
}

func TestCreateReservation_InvalidatesAll(t *testing.T) {
	counseleeID := uuid.New()
	session := &domain.CounselSession{ID: uuid.New(), CounseleeID: counseleeID, Status: domain.StatusScheduled}
	cache := newMockCache()

	svc := newTestService(t, &mockSessionRepo{
		createReservationFn: func(_ context.Context, _ uuid.UUID, _ time.Time) (*domain.CounselSession, error) {
			return session, nil
		},
	}, cache, clockwork.NewFakeClock())

	created, err := svc.CreateReservation(context.Background(), counseleeID, time.Now())
	require.NoError(t, err)
	assert.Equal(t, session.ID, created.ID)
	assert.ElementsMatch(t,
		[]domain.CacheTag{domain.CacheSessionDates, domain.CacheSessionStats, domain.CacheSessionList},
		cache.invalidatedTags())
}

func TestCreateReservation_StoreErrorPropagates(t *testing.T) {
	cache := newMockCache()
	svc := newTestService(t, &mockSessionRepo{
		createReservationFn: func(_ context.Context, _ uuid.UUID, _ time.Time) (*domain.CounselSession, error) {
			return nil, assert.AnError
		},
	}, cache, clockwork.NewFakeClock())

	// A failed creation (including its dependent-record inserts, which run
	// in the same transaction) surfaces to the caller; nothing is committed
	// and no cache entry is dropped.
	created, err := svc.CreateReservation(context.Background(), uuid.New(), time.Now())
	assert.ErrorIs(t, err, assert.AnError)
	assert.Nil(t, created)
	assert.Empty(t, cache.invalidatedTags())
}

func TestCreateReservation_ConflictPropagates(t *testing.T) {
	cache := newMockCache()
	svc := newTestService(t, &mockSessionRepo{
		createReservationFn: func(_ context.Context, _ uuid.UUID, _ time.Time) (*domain.CounselSession, error) {
			return nil, domain.ErrScheduleConflict
		},
	}, cache, clockwork.NewFakeClock())

	_, err := svc.CreateReservation(context.Background(), uuid.New(), time.Now())
	assert.ErrorIs(t, err, domain.ErrScheduleConflict)
	assert.Empty(t, cache.invalidatedTags())
}

func TestUpdateStatus_KeepsDatesCache(t *testing.T) {
	clock := clockwork.NewFakeClock()
	cache := newMockCache()

	var passedNow time.Time
	svc := newTestService(t, &mockSessionRepo{
		updateStatusFn: func(_ context.Context, id uuid.UUID, requested domain.ScheduleStatus, now time.Time) (*domain.CounselSession, error) {
			passedNow = now
			return &domain.CounselSession{ID: id, Status: requested}, nil
		},
	}, cache, clock)

	_, err := svc.UpdateStatus(context.Background(), uuid.New(), domain.StatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, clock.Now().UTC(), passedNow)

	// A status change keeps the slot, so session_dates stays warm.
	tags := cache.invalidatedTags()
	assert.ElementsMatch(t, []domain.CacheTag{domain.CacheSessionStats, domain.CacheSessionList}, tags)
	assert.NotContains(t, tags, domain.CacheSessionDates)
}

func TestUpdateStatus_InvalidTransitionPropagates(t *testing.T) {
	cache := newMockCache()
	svc := newTestService(t, &mockSessionRepo{
		updateStatusFn: func(_ context.Context, _ uuid.UUID, _ domain.ScheduleStatus, _ time.Time) (*domain.CounselSession, error) {
			return nil, &domain.InvalidTransitionError{From: domain.StatusCompleted, To: domain.StatusScheduled}
		},
	}, cache, clockwork.NewFakeClock())

	_, err := svc.UpdateStatus(context.Background(), uuid.New(), domain.StatusScheduled)

	var transitionErr *domain.InvalidTransitionError
	assert.ErrorAs(t, err, &transitionErr)
	assert.Empty(t, cache.invalidatedTags())
}

func TestAssignCounselor(t *testing.T) {
	sessionID := uuid.New()
	counselorID := uuid.New()
	cache := newMockCache()

	svc := newTestService(t, &mockSessionRepo{
		updateCounselorFn: func(_ context.Context, sid, cid uuid.UUID) error {
			assert.Equal(t, sessionID, sid)
			assert.Equal(t, counselorID, cid)
			return nil
		},
		getByIDFn: func(_ context.Context, id uuid.UUID) (*domain.CounselSession, error) {
			return &domain.CounselSession{ID: id, CounselorID: &counselorID}, nil
		},
	}, cache, clockwork.NewFakeClock())

	session, err := svc.AssignCounselor(context.Background(), sessionID, counselorID)
	require.NoError(t, err)
	require.NotNil(t, session.CounselorID)
	assert.Equal(t, counselorID, *session.CounselorID)
	assert.Equal(t, []domain.CacheTag{domain.CacheSessionList}, cache.invalidatedTags())
}

func TestAssignCounselor_UnknownCounselor(t *testing.T) {
	cache := newMockCache()
	svc := newTestServiceWith(t, Repositories{
		Sessions: &mockSessionRepo{},
		Counselors: &mockCounselorRepo{
			getByIDFn: func(_ context.Context, _ uuid.UUID) (*domain.Counselor, error) {
				return nil, domain.ErrCounselorNotFound
			},
		},
	}, cache, clockwork.NewFakeClock())

	_, err := svc.AssignCounselor(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrCounselorNotFound)
}

func TestDeleteSession_InvalidatesAll(t *testing.T) {
	cache := newMockCache()
	svc := newTestService(t, &mockSessionRepo{
		deleteFn: func(_ context.Context, _ uuid.UUID) error { return nil },
	}, cache, clockwork.NewFakeClock())

	require.NoError(t, svc.DeleteSession(context.Background(), uuid.New()))
	assert.ElementsMatch(t,
		[]domain.CacheTag{domain.CacheSessionDates, domain.CacheSessionStats, domain.CacheSessionList},
		cache.invalidatedTags())
}

func TestSessionDates_CacheMissThenHit(t *testing.T) {
	cache := newMockCache()
	calls := 0
	dates := []time.Time{time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)}

	svc := newTestService(t, &mockSessionRepo{
		distinctDatesFn: func(_ context.Context, year int, month time.Month) ([]time.Time, error) {
			calls++
			assert.Equal(t, 2026, year)
			assert.Equal(t, time.March, month)
			return dates, nil
		},
	}, cache, clockwork.NewFakeClock())

	got, err := svc.SessionDates(context.Background(), 2026, time.March)
	require.NoError(t, err)
	assert.Equal(t, dates, got)
	assert.Equal(t, 1, calls)

	got, err = svc.SessionDates(context.Background(), 2026, time.March)
	require.NoError(t, err)
	assert.Equal(t, dates, got)
	assert.Equal(t, 1, calls, "second call must be served from cache")
}

func TestListSessionsByDate_Cached(t *testing.T) {
	cache := newMockCache()
	calls := 0
	items := []domain.SessionListItem{{SessionID: uuid.New(), CounseleeName: "Jane Doe"}}

	svc := newTestService(t, &mockSessionRepo{
		listByDayFn: func(_ context.Context, _ time.Time) ([]domain.SessionListItem, error) {
			calls++
			return items, nil
		},
	}, cache, clockwork.NewFakeClock())

	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	got, err := svc.ListSessionsByDate(context.Background(), day)
	require.NoError(t, err)
	assert.Equal(t, items, got)

	_, err = svc.ListSessionsByDate(context.Background(), day)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestStats_TruncatesHoursPerSession(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC))
	cache := newMockCache()

	completed := []domain.CounselSession{
		completedSession(90 * time.Minute),  // 1 hour
		completedSession(50 * time.Minute),  // 0 hours
		completedSession(125 * time.Minute), // 2 hours
	}

	svc := newTestServiceWith(t, Repositories{
		Sessions: &mockSessionRepo{
			completedInMonthFn: func(_ context.Context, year int, month time.Month) ([]domain.CounselSession, error) {
				assert.Equal(t, 2026, year)
				assert.Equal(t, time.March, month)
				return completed, nil
			},
			countCounseleesFn: func(_ context.Context, _ int, _ time.Month) (int64, error) { return 7, nil },
			countCounselorsFn: func(_ context.Context, year int) (int64, error) {
				assert.Equal(t, 2026, year)
				return 3, nil
			},
		},
		Medications: &mockMedicationRepo{
			countFn: func(_ context.Context, from, to time.Time) (int64, error) {
				assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), from)
				assert.Equal(t, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), to)
				return 42, nil
			},
		},
	}, cache, clock)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.CounselHoursThisMonth, "hours truncate per session, not on the sum")
	assert.EqualValues(t, 7, stats.CounseleeCountThisMonth)
	assert.EqualValues(t, 42, stats.MedicationCounselCountThisYear)
	assert.EqualValues(t, 3, stats.CounselorCountThisYear)
}

func TestStats_ServedFromCache(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC))
	cache := newMockCache()
	cache.entries["session_stats:2026-3"] = domain.SessionStats{CounselHoursThisMonth: 9}

	svc := newTestService(t, &mockSessionRepo{}, cache, clock)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 9, stats.CounselHoursThisMonth)
}

func completedSession(d time.Duration) domain.CounselSession {
	start := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	end := start.Add(d)
	return domain.CounselSession{
		ID:        uuid.New(),
		Status:    domain.StatusCompleted,
		StartedAt: &start,
		EndedAt:   &end,
	}
}

func TestPreviousSessions_CounselorMasking(t *testing.T) {
	inactiveID := uuid.New()
	activeID := uuid.New()
	ref := &domain.CounselSession{ID: uuid.New(), CounseleeID: uuid.New(), ScheduledStartAt: time.Now()}

	previous := []domain.CounselSession{
		{ID: uuid.New(), SessionNumber: 2, CounselorID: &activeID},
		{ID: uuid.New(), SessionNumber: 1, CounselorID: &inactiveID},
		{ID: uuid.New(), SessionNumber: 3},
	}

	svc := newTestServiceWith(t, Repositories{
		Sessions: &mockSessionRepo{
			getByIDFn: func(_ context.Context, _ uuid.UUID) (*domain.CounselSession, error) { return ref, nil },
			listCompletedFn: func(_ context.Context, _ uuid.UUID, _ time.Time) ([]domain.CounselSession, error) {
				return previous, nil
			},
		},
		Counselors: &mockCounselorRepo{
			getByIDFn: func(_ context.Context, id uuid.UUID) (*domain.Counselor, error) {
				if id == inactiveID {
					return &domain.Counselor{ID: id, Name: "Dr. Gone", Status: domain.CounselorInactive}, nil
				}
				return &domain.Counselor{ID: id, Name: "Dr. Smith", Status: domain.CounselorActive}, nil
			},
		},
	}, newMockCache(), clockwork.NewFakeClock())

	summaries, err := svc.PreviousSessions(context.Background(), ref.ID)
	require.NoError(t, err)
	require.Len(t, summaries, 3)
	assert.Equal(t, "Dr. Smith", summaries[0].CounselorName)
	assert.Equal(t, domain.InactiveCounselorName, summaries[1].CounselorName)
	assert.Equal(t, domain.UnassignedCounselorName, summaries[2].CounselorName)
}

func TestPreviousSessionDetails_MissingRecordsAreNil(t *testing.T) {
	ref := &domain.CounselSession{ID: uuid.New(), CounseleeID: uuid.New(), ScheduledStartAt: time.Now()}
	withRecord := uuid.New()
	without := uuid.New()

	var requestedPage domain.PageReq
	svc := newTestServiceWith(t, Repositories{
		Sessions: &mockSessionRepo{
			getByIDFn: func(_ context.Context, _ uuid.UUID) (*domain.CounselSession, error) { return ref, nil },
			pageCompletedFn: func(_ context.Context, _ uuid.UUID, _ time.Time, page domain.PageReq) (*domain.Page[domain.CounselSession], error) {
				requestedPage = page
				return domain.NewPage([]domain.CounselSession{{ID: withRecord}, {ID: without}}, 5, page), nil
			},
		},
		Medications: &mockMedicationRepo{
			getBySessionFn: func(_ context.Context, id uuid.UUID) (*domain.MedicationCounsel, error) {
				if id == withRecord {
					return &domain.MedicationCounsel{SessionID: id, CounselRecord: "record"}, nil
				}
				return nil, domain.ErrMedicationNotFound
			},
		},
		Summaries: &mockSummaryRepo{
			getBySessionFn: func(_ context.Context, id uuid.UUID) (*domain.AICounselSummary, error) {
				if id == withRecord {
					return &domain.AICounselSummary{SessionID: id, AnalysedText: "summary"}, nil
				}
				return nil, domain.ErrSummaryNotFound
			},
		},
	}, newMockCache(), clockwork.NewFakeClock())

	details, err := svc.PreviousSessionDetails(context.Background(), ref.ID, domain.PageReq{Page: 1, Size: 2})
	require.NoError(t, err)
	require.Len(t, details.Content, 2)
	assert.Equal(t, domain.PageReq{Page: 1, Size: 2}, requestedPage)
	assert.EqualValues(t, 5, details.TotalElements)
	assert.Equal(t, 3, details.TotalPages)

	require.NotNil(t, details.Content[0].MedicationRecord)
	assert.Equal(t, "record", *details.Content[0].MedicationRecord)
	require.NotNil(t, details.Content[0].AISummary)
	assert.Equal(t, "summary", *details.Content[0].AISummary)

	assert.Nil(t, details.Content[1].MedicationRecord)
	assert.Nil(t, details.Content[1].AISummary)
}
