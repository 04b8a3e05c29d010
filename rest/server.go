package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/homemade/notebook-inject/ticket"
	"github.com/iancoleman/strcase"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Deps are the host services the endpoints use.
type Deps struct {
	Tickets       *ticket.Store
	Notebook      Notebook
	Authorizer    Authorizer
	Authenticator Authenticator
	Logger        *slog.Logger
}

type Server struct {
	echo *echo.Echo
	Deps
}

// JSONResponse is the envelope every endpoint answers with.
type JSONResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Body    any    `json:"body,omitempty"`
}

func NewServer(deps Deps) *Server {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Tickets == nil {
		deps.Tickets = ticket.NewStore(deps.Logger)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	srv := &Server{echo: e, Deps: deps}
	e.HTTPErrorHandler = srv.handleError
	srv.registerRoutes()
	return srv
}

func (s *Server) registerRoutes() {
	s.echo.Use(s.setupRequestLoggerMiddleware())
	s.echo.Use(middleware.Recover())

	api := s.echo.Group("/api")
	s.registerSecurityRoutes(api)
	s.registerParagraphRoutes(api)
}

func (s *Server) setupRequestLoggerMiddleware() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
			}
			if v.Error != nil {
				attrs = append(attrs, "error", v.Error)
			}
			s.Logger.Info("Request", attrs...)
			return nil
		},
	})
}

// Handler returns the server as an http.Handler.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) Start(addr string) error {
	s.Logger.Info("Starting server", "addr", addr)
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}

// handleError writes errors returned by handlers in the JSONResponse envelope.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := http.StatusText(code)
	var httpErr *echo.HTTPError
	switch {
	case errors.Is(err, ErrNoteNotFound), errors.Is(err, ErrParagraphNotFound):
		code, message = http.StatusNotFound, err.Error()
	case errors.Is(err, ErrForbidden):
		code, message = http.StatusForbidden, err.Error()
	case errors.As(err, &httpErr):
		code, message = httpErr.Code, fmt.Sprint(httpErr.Message)
	default:
		s.Logger.Error("Request failed", "path", c.Request().URL.Path, "error", err)
	}

	status := http.StatusText(code)
	if err := c.JSON(code, JSONResponse{Status: strcase.ToScreamingSnake(status), Message: message}); err != nil {
		s.Logger.Error("Failed to write error response", "error", err)
	}
}

func ok(c echo.Context, body any) error {
	if err := c.JSON(http.StatusOK, JSONResponse{Status: "OK", Body: body}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}
