package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fakhama/costume_rental/internal/logging"
	"github.com/fakhama/costume_rental/internal/middleware"
	"github.com/fakhama/costume_rental/internal/service"
	"github.com/fakhama/costume_rental/internal/transport"
)

type FavoritesHTTP struct {
	Svc *service.FavoritesService
}

func (h *FavoritesHTTP) Toggle(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "favorites.toggle")

	userID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var req transport.ToggleFavoriteRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("toggle_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	res, err := h.Svc.Toggle(ctx, userID, req.ProductID)
	if err != nil {
		return serviceError(err, "cannot toggle favorite")
	}

	return c.JSON(http.StatusOK, res)
}

func (h *FavoritesHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "favorites.list")

	userID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	items, err := h.Svc.List(ctx, userID)
	if err != nil {
		l.Error("list_favorites_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list favorites")
	}

	return c.JSON(http.StatusOK, items)
}
