package rest

import (
	"io"
	"net/http"

	"github.com/homemade/notebook-inject/ticket"
	"github.com/labstack/echo/v4"
)

func (s *Server) registerSecurityRoutes(api *echo.Group) {
	api.POST("/security/ticket/check", s.handleTicketCheck)
}

// handleTicketCheck answers whether the posted ticket is the principal's current one.
func (s *Server) handleTicketCheck(c echo.Context) error {
	b, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "failed to read ticket")
	}
	t, err := ticket.Parse(b)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid ticket")
	}
	return ok(c, s.Tickets.Check(t))
}
