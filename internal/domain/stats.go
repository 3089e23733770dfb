package domain

// SessionStats holds the derived summary metrics served from the stats
// cache. Hours are truncated per session (whole hours of each completed
// session, fractions dropped) before summing.
type SessionStats struct {
	CounselHoursThisMonth          int64 `json:"counselHoursThisMonth"`
	CounseleeCountThisMonth        int64 `json:"counseleeCountForThisMonth"`
	MedicationCounselCountThisYear int64 `json:"medicationCounselCountThisYear"`
	CounselorCountThisYear         int64 `json:"counselorCountThisYear"`
}
