package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fakhama/costume_rental/internal/logging"
	"github.com/fakhama/costume_rental/internal/service"
)

type ReportingHTTP struct {
	Svc *service.ReportingService
}

func (h *ReportingHTTP) Stats(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.stats")

	stats, err := h.Svc.Stats(ctx)
	if err != nil {
		l.Error("stats_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot compute stats")
	}

	return c.JSON(http.StatusOK, stats)
}
