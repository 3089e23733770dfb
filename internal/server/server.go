package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/carebase/counseld/internal/config"
	"github.com/carebase/counseld/internal/domain"
	apperrors "github.com/carebase/counseld/internal/errors"
	"github.com/carebase/counseld/internal/logging"
)

// appService is the application surface the HTTP layer depends on.
type appService interface {
	GetSession(ctx context.Context, sessionID uuid.UUID) (*domain.CounselSession, error)
	CreateReservation(ctx context.Context, counseleeID uuid.UUID, scheduledStartAt time.Time) (*domain.CounselSession, error)
	ModifyReservation(ctx context.Context, sessionID, counseleeID uuid.UUID, scheduledStartAt time.Time) (*domain.CounselSession, error)
	UpdateStatus(ctx context.Context, sessionID uuid.UUID, requested domain.ScheduleStatus) (*domain.CounselSession, error)
	AssignCounselor(ctx context.Context, sessionID, counselorID uuid.UUID) (*domain.CounselSession, error)
	DeleteSession(ctx context.Context, sessionID uuid.UUID) error
	SessionDates(ctx context.Context, year int, month time.Month) ([]time.Time, error)
	ListSessionsByDate(ctx context.Context, day time.Time) ([]domain.SessionListItem, error)
	SearchSessions(ctx context.Context, filter domain.SessionSearchFilter, page domain.PageReq) (*domain.Page[domain.CounselSession], error)
	Stats(ctx context.Context) (*domain.SessionStats, error)
	PreviousSessions(ctx context.Context, sessionID uuid.UUID) ([]domain.PreviousSessionSummary, error)
	PreviousSessionDetails(ctx context.Context, sessionID uuid.UUID, page domain.PageReq) (*domain.Page[domain.PreviousSessionDetail], error)
}

// pinger is the minimal connectivity check used by the readiness probe.
type pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	echo      *echo.Echo
	config    *config.Config
	app       appService
	postgres  pinger
	redis     pinger
	startTime time.Time
}

func NewServer(cfg *config.Config, app appService, postgres, redis pinger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(correlationMiddleware())
	e.Use(apperrors.Middleware())

	srv := &Server{
		echo:      e,
		config:    cfg,
		app:       app,
		postgres:  postgres,
		redis:     redis,
		startTime: time.Now(),
	}

	srv.registerRoutes()
	return srv
}

// correlationMiddleware tags each request context with a correlation ID so
// every log line emitted while handling it can be tied back together.
func correlationMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			ctx := logging.WithCorrelationID(req.Context(), logging.NewCorrelationID())
			c.SetRequest(req.WithContext(ctx))
			return next(c)
		}
	}
}

func (s *Server) Start() error {
	slog.Info("starting server", "port", s.config.Port)
	return s.echo.Start(fmt.Sprintf(":%s", s.config.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
