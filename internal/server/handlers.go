package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/carebase/counseld/internal/domain"
	apperrors "github.com/carebase/counseld/internal/errors"
)

const dateLayout = "2006-01-02"

type reservationRequest struct {
	CounseleeID      uuid.UUID `json:"counseleeId"`
	ScheduledStartAt time.Time `json:"scheduledStartDateTime"`
}

type statusRequest struct {
	Status string `json:"status"`
}

type counselorRequest struct {
	CounselorID uuid.UUID `json:"counselorId"`
}

type sessionResponse struct {
	SessionID        uuid.UUID             `json:"counselSessionId"`
	CounseleeID      uuid.UUID             `json:"counseleeId"`
	CounselorID      *uuid.UUID            `json:"counselorId"`
	Status           domain.ScheduleStatus `json:"status"`
	SessionNumber    int                   `json:"sessionNumber"`
	ScheduledStartAt time.Time             `json:"scheduledStartDateTime"`
	StartedAt        *time.Time            `json:"startedDateTime"`
	EndedAt          *time.Time            `json:"endedDateTime"`
}

func toSessionResponse(s *domain.CounselSession) sessionResponse {
	return sessionResponse{
		SessionID:        s.ID,
		CounseleeID:      s.CounseleeID,
		CounselorID:      s.CounselorID,
		Status:           s.Status,
		SessionNumber:    s.SessionNumber,
		ScheduledStartAt: s.ScheduledStartAt,
		StartedAt:        s.StartedAt,
		EndedAt:          s.EndedAt,
	}
}

func toSessionResponses(sessions []domain.CounselSession) []sessionResponse {
	out := make([]sessionResponse, 0, len(sessions))
	for i := range sessions {
		out = append(out, toSessionResponse(&sessions[i]))
	}
	return out
}

// mapDomainError translates domain sentinels into structured HTTP errors.
func mapDomainError(err error, operation string) error {
	var transitionErr *domain.InvalidTransitionError
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return apperrors.NotFoundError("session not found")
	case errors.Is(err, domain.ErrCounseleeNotFound):
		return apperrors.NotFoundError("counselee not found")
	case errors.Is(err, domain.ErrCounselorNotFound):
		return apperrors.NotFoundError("counselor not found")
	case errors.Is(err, domain.ErrScheduleConflict):
		return apperrors.ConflictError("the counselee already has a session at this time")
	case errors.As(err, &transitionErr):
		return apperrors.InvalidTransitionError("status transition not allowed",
			string(transitionErr.From), string(transitionErr.To))
	default:
		return apperrors.InternalError(fmt.Sprintf("failed to %s", operation), err)
	}
}

func parseSessionID(c echo.Context) (uuid.UUID, error) {
	raw := c.Param("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperrors.ValidationError("invalid session id").WithField("id", raw)
	}
	return id, nil
}

func (s *Server) handleCreateSession(c echo.Context) error {
	var req reservationRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if req.CounseleeID == uuid.Nil {
		return apperrors.ValidationError("counseleeId is required")
	}
	if req.ScheduledStartAt.IsZero() {
		return apperrors.ValidationError("scheduledStartDateTime is required")
	}

	session, err := s.app.CreateReservation(c.Request().Context(), req.CounseleeID, req.ScheduledStartAt)
	if err != nil {
		return mapDomainError(err, "create reservation")
	}
	return c.JSON(http.StatusCreated, toSessionResponse(session))
}

func (s *Server) handleGetSession(c echo.Context) error {
	id, err := parseSessionID(c)
	if err != nil {
		return err
	}

	session, err := s.app.GetSession(c.Request().Context(), id)
	if err != nil {
		return mapDomainError(err, "get session")
	}
	return c.JSON(http.StatusOK, toSessionResponse(session))
}

func (s *Server) handleModifySession(c echo.Context) error {
	id, err := parseSessionID(c)
	if err != nil {
		return err
	}

	var req reservationRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if req.CounseleeID == uuid.Nil {
		return apperrors.ValidationError("counseleeId is required")
	}
	if req.ScheduledStartAt.IsZero() {
		return apperrors.ValidationError("scheduledStartDateTime is required")
	}

	session, err := s.app.ModifyReservation(c.Request().Context(), id, req.CounseleeID, req.ScheduledStartAt)
	if err != nil {
		return mapDomainError(err, "modify reservation")
	}
	return c.JSON(http.StatusOK, toSessionResponse(session))
}

func (s *Server) handleDeleteSession(c echo.Context) error {
	id, err := parseSessionID(c)
	if err != nil {
		return err
	}

	if err := s.app.DeleteSession(c.Request().Context(), id); err != nil {
		return mapDomainError(err, "delete session")
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleUpdateStatus(c echo.Context) error {
	id, err := parseSessionID(c)
	if err != nil {
		return err
	}

	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	status, err := domain.ParseScheduleStatus(req.Status)
	if err != nil {
		return apperrors.ValidationError("unknown status").WithField("status", req.Status)
	}

	session, err := s.app.UpdateStatus(c.Request().Context(), id, status)
	if err != nil {
		return mapDomainError(err, "update status")
	}
	return c.JSON(http.StatusOK, toSessionResponse(session))
}

func (s *Server) handleAssignCounselor(c echo.Context) error {
	id, err := parseSessionID(c)
	if err != nil {
		return err
	}

	var req counselorRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if req.CounselorID == uuid.Nil {
		return apperrors.ValidationError("counselorId is required")
	}

	session, err := s.app.AssignCounselor(c.Request().Context(), id, req.CounselorID)
	if err != nil {
		return mapDomainError(err, "assign counselor")
	}
	return c.JSON(http.StatusOK, toSessionResponse(session))
}

func (s *Server) handleListSessions(c echo.Context) error {
	raw := c.QueryParam("baseDate")
	if raw == "" {
		return apperrors.ValidationError("baseDate is required")
	}
	day, err := time.Parse(dateLayout, raw)
	if err != nil {
		return apperrors.ValidationError("baseDate must be formatted as YYYY-MM-DD").WithField("baseDate", raw)
	}

	items, err := s.app.ListSessionsByDate(c.Request().Context(), day)
	if err != nil {
		return mapDomainError(err, "list sessions")
	}
	if items == nil {
		items = []domain.SessionListItem{}
	}
	return c.JSON(http.StatusOK, items)
}

func (s *Server) handleSearchSessions(c echo.Context) error {
	filter := domain.SessionSearchFilter{
		CounseleeName:  c.QueryParam("counseleeName"),
		CounselorNames: c.QueryParams()["counselorNames"],
	}

	for _, raw := range c.QueryParams()["scheduledDates"] {
		date, err := time.Parse(dateLayout, raw)
		if err != nil {
			return apperrors.ValidationError("scheduledDates entries must be formatted as YYYY-MM-DD").
				WithField("scheduledDates", raw)
		}
		filter.ScheduledDates = append(filter.ScheduledDates, date)
	}

	for _, raw := range c.QueryParams()["statuses"] {
		status, err := domain.ParseScheduleStatus(raw)
		if err != nil {
			return apperrors.ValidationError("unknown status").WithField("statuses", raw)
		}
		filter.Statuses = append(filter.Statuses, status)
	}

	page, err := parsePageReq(c)
	if err != nil {
		return err
	}

	result, err := s.app.SearchSessions(c.Request().Context(), filter, page)
	if err != nil {
		return mapDomainError(err, "search sessions")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"content":       toSessionResponses(result.Content),
		"page":          result.Page,
		"size":          result.Size,
		"totalElements": result.TotalElements,
		"totalPages":    result.TotalPages,
	})
}

func parsePageReq(c echo.Context) (domain.PageReq, error) {
	var page domain.PageReq

	if raw := c.QueryParam("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return page, apperrors.ValidationError("page must be a non-negative integer").WithField("page", raw)
		}
		page.Page = n
	}
	if raw := c.QueryParam("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return page, apperrors.ValidationError("size must be a positive integer").WithField("size", raw)
		}
		page.Size = n
	}
	return page, nil
}

func (s *Server) handleSessionDates(c echo.Context) error {
	year, err := strconv.Atoi(c.QueryParam("year"))
	if err != nil || year < 1 {
		return apperrors.ValidationError("year must be a positive integer").WithField("year", c.QueryParam("year"))
	}
	month, err := strconv.Atoi(c.QueryParam("month"))
	if err != nil || month < 1 || month > 12 {
		return apperrors.ValidationError("month must be between 1 and 12").WithField("month", c.QueryParam("month"))
	}

	dates, err := s.app.SessionDates(c.Request().Context(), year, time.Month(month))
	if err != nil {
		return mapDomainError(err, "list session dates")
	}

	formatted := make([]string, 0, len(dates))
	for _, d := range dates {
		formatted = append(formatted, d.Format(dateLayout))
	}
	return c.JSON(http.StatusOK, formatted)
}

func (s *Server) handleStats(c echo.Context) error {
	stats, err := s.app.Stats(c.Request().Context())
	if err != nil {
		return mapDomainError(err, "compute stats")
	}
	return c.JSON(http.StatusOK, stats)
}

func (s *Server) handlePreviousSessions(c echo.Context) error {
	id, err := parseSessionID(c)
	if err != nil {
		return err
	}

	previous, err := s.app.PreviousSessions(c.Request().Context(), id)
	if err != nil {
		return mapDomainError(err, "list previous sessions")
	}
	if previous == nil {
		previous = []domain.PreviousSessionSummary{}
	}
	return c.JSON(http.StatusOK, previous)
}

func (s *Server) handlePreviousSessionDetails(c echo.Context) error {
	id, err := parseSessionID(c)
	if err != nil {
		return err
	}

	page, err := parsePageReq(c)
	if err != nil {
		return err
	}

	details, err := s.app.PreviousSessionDetails(c.Request().Context(), id, page)
	if err != nil {
		return mapDomainError(err, "list previous session details")
	}
	if details.Content == nil {
		details.Content = []domain.PreviousSessionDetail{}
	}
	return c.JSON(http.StatusOK, details)
}
