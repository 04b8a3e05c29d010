package rest

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/homemade/notebook-inject/paragraph"
	"github.com/labstack/echo/v4"
)

func (s *Server) registerParagraphRoutes(api *echo.Group) {
	api.GET("/notebook/:noteId/paragraph/:paragraphId/analysis", s.handleAnalysis)
	api.GET("/notebook/:noteId/paragraph/:paragraphId/reconnect", s.handleReconnect)
}

func (s *Server) handleAnalysis(c echo.Context) error {
	ctx := c.Request().Context()
	p, err := s.paragraph(c)
	if err != nil {
		return err
	}

	interpreters, err := p.Interpreters(ctx)
	if err != nil {
		return fmt.Errorf("failed to get interpreters: %w", err)
	}
	properties := make([]map[string]string, 0, len(interpreters))
	for _, interpreter := range interpreters {
		properties = append(properties, interpreter.Properties())
	}

	result, err := paragraph.Analyze(p.Text(), properties...)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return ok(c, result)
}

// handleReconnect recovers the paragraph. With includeProcess=true it first reconnects
// the interpreter's remote process and recovers the paragraph only if that succeeds.
func (s *Server) handleReconnect(c echo.Context) error {
	ctx := c.Request().Context()
	paragraphID := c.Param("paragraphId")
	includeProcess, _ := strconv.ParseBool(c.QueryParam("includeProcess"))

	p, err := s.paragraph(c)
	if err != nil {
		return err
	}

	if !includeProcess {
		s.Logger.Info("Recovering paragraph", "paragraph_id", paragraphID)
		if err := p.Recover(ctx); err != nil {
			return fmt.Errorf("failed to recover paragraph %s: %w", paragraphID, err)
		}
		return ok(c, "OK")
	}

	s.Logger.Info("Recovering remote interpreter process and paragraph", "paragraph_id", paragraphID)
	if !s.reconnectProcess(ctx, p) {
		s.Logger.Info("Failed to recover remote interpreter process, skipping paragraph recovery", "paragraph_id", paragraphID)
		return ok(c, "ERROR")
	}
	if err := p.Recover(ctx); err != nil {
		return fmt.Errorf("failed to recover paragraph %s: %w", paragraphID, err)
	}
	return ok(c, "OK")
}

func (s *Server) reconnectProcess(ctx context.Context, p Paragraph) bool {
	process, err := p.RemoteProcess(ctx)
	if err != nil {
		s.Logger.Warn("Failed to get remote interpreter process", "error", err)
		return false
	}
	if process == nil {
		return false
	}
	return process.Reconnect(ctx)
}

// paragraph resolves the note and paragraph named in the path, checking that the caller
// can read the note.
func (s *Server) paragraph(c echo.Context) (Paragraph, error) {
	ctx := c.Request().Context()
	noteID := c.Param("noteId")
	paragraphID := c.Param("paragraphId")

	note, found, err := s.Notebook.Note(ctx, noteID)
	if err != nil {
		return nil, fmt.Errorf("failed to get note %s: %w", noteID, err)
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrNoteNotFound, noteID)
	}

	if !s.canRead(c, noteID) {
		return nil, ErrForbidden
	}

	p, found := note.Paragraph(paragraphID)
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrParagraphNotFound, paragraphID)
	}
	return p, nil
}

func (s *Server) canRead(c echo.Context, noteID string) bool {
	if s.Authorizer == nil {
		return true
	}
	var userAndRoles []string
	if s.Authenticator != nil {
		userAndRoles = append(userAndRoles, s.Authenticator.Principal(c.Request()))
		userAndRoles = append(userAndRoles, s.Authenticator.Roles(c.Request())...)
	}
	return s.Authorizer.HasReadPermission(c.Request().Context(), userAndRoles, noteID)
}
