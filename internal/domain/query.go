package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// PageReq is a zero-based page request.
type PageReq struct {
	Page int
	Size int
}

// Limit returns the effective page size, clamped to sane bounds.
func (p PageReq) Limit() int {
	if p.Size <= 0 {
		return defaultPageSize
	}
	if p.Size > maxPageSize {
		return maxPageSize
	}
	return p.Size
}

// Offset returns the row offset of the requested page.
func (p PageReq) Offset() int {
	if p.Page < 0 {
		return 0
	}
	return p.Page * p.Limit()
}

// Page is one page of results plus totals.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

func NewPage[T any](content []T, total int64, req PageReq) *Page[T] {
	size := req.Limit()
	pages := int((total + int64(size) - 1) / int64(size))
	return &Page[T]{
		Content:       content,
		Page:          req.Page,
		Size:          size,
		TotalElements: total,
		TotalPages:    pages,
	}
}

// SessionListItem is one row of the day listing: the session joined with its
// card-completion status and consent flag. A deactivated counselor is
// reported with an empty id and a placeholder name.
type SessionListItem struct {
	SessionID        uuid.UUID         `json:"counselSessionId"`
	ScheduledStartAt time.Time         `json:"scheduledStartDateTime"`
	CounseleeID      uuid.UUID         `json:"counseleeId"`
	CounseleeName    string            `json:"counseleeName"`
	CounselorID      string            `json:"counselorId"`
	CounselorName    string            `json:"counselorName"`
	Status           ScheduleStatus    `json:"status"`
	CardRecordStatus *CardRecordStatus `json:"cardRecordStatus"`
	ConsentGiven     *bool             `json:"isConsent"`
}

// SessionSearchFilter narrows the paginated session search. Zero values mean
// "no restriction" for that dimension. Dates match by day boundary.
type SessionSearchFilter struct {
	CounseleeName  string
	CounselorNames []string
	ScheduledDates []time.Time
	Statuses       []ScheduleStatus
}

// PreviousSessionSummary is one entry of a counselee's completed-session
// history before a reference session.
type PreviousSessionSummary struct {
	SessionID     uuid.UUID `json:"counselSessionId"`
	SessionNumber int       `json:"sessionNumber"`
	SessionDate   time.Time `json:"counselSessionDate"`
	CounselorName string    `json:"counselorName"`
}

// PreviousSessionDetail adds the medication counsel record and AI summary
// text to a history entry.
type PreviousSessionDetail struct {
	SessionID        uuid.UUID `json:"counselSessionId"`
	SessionNumber    int       `json:"sessionNumber"`
	SessionDate      time.Time `json:"counselSessionDate"`
	CounselorName    string    `json:"counselorName"`
	MedicationRecord *string   `json:"medicationCounselRecord"`
	AISummary        *string   `json:"aiSummary"`
}
