package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/fakhama/costume_rental/internal/logging"
	"github.com/fakhama/costume_rental/internal/middleware"
	"github.com/fakhama/costume_rental/internal/service"
	"github.com/fakhama/costume_rental/internal/storage"
	"github.com/fakhama/costume_rental/internal/transport"
)

type BookingHTTP struct {
	Svc   *service.BookingService
	Files storage.Store
}

// CreateReservations handles the multipart cart submission: a "cin"
// identity-document image plus an "items" field holding the line items as a
// JSON-encoded string. The image is stored once and its URL attached to
// every reservation created from this cart.
func (h *BookingHTTP) CreateReservations(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "reservation.create")

	userID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	itemsRaw := c.FormValue("items")
	if itemsRaw == "" {
		l.Warn("create_reservations_failed", "status", 400, "reason", "items required")
		return echo.NewHTTPError(http.StatusBadRequest, "items required")
	}

	var items []transport.CartItem
	if err := json.Unmarshal([]byte(itemsRaw), &items); err != nil {
		l.Warn("create_reservations_failed", "status", 400, "reason", "invalid items format", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid items format")
	}

	file, err := c.FormFile("cin")
	if err != nil {
		l.Warn("create_reservations_failed", "status", 400, "reason", "cin image required")
		return echo.NewHTTPError(http.StatusBadRequest, "cin image required")
	}

	cinURL, err := h.Files.SaveUpload("cins", file)
	if err != nil {
		l.Error("create_reservations_failed", "status", 500, "reason", "cannot store cin image", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot store cin image")
	}

	result, err := h.Svc.SubmitCart(ctx, userID, cinURL, items)
	if err != nil {
		return serviceError(err, "cannot create reservations")
	}

	return c.JSON(http.StatusCreated, result)
}

func (h *BookingHTTP) ListReservations(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "reservation.list")

	userID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	items, err := h.Svc.List(ctx, userID, middleware.IsAdmin(c))
	if err != nil {
		l.Error("list_reservations_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list reservations")
	}

	return c.JSON(http.StatusOK, items)
}

func (h *BookingHTTP) MyReservations(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "reservation.list_my")

	userID, ok := middleware.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	items, err := h.Svc.ListMine(ctx, userID)
	if err != nil {
		l.Error("list_my_reservations_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list reservations")
	}

	return c.JSON(http.StatusOK, items)
}

func (h *BookingHTTP) MarkReturned(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "reservation.mark_returned")

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		l.Warn("mark_returned_failed", "status", 400, "reason", "id is not an integer")
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	reservation, err := h.Svc.MarkReturned(ctx, uint(id))
	if err != nil {
		return serviceError(err, "cannot mark reservation as returned")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":     "Costume marked as returned",
		"reservation": reservation,
	})
}

func (h *BookingHTTP) SetStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "reservation.set_status")

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		l.Warn("set_status_failed", "status", 400, "reason", "id is not an integer")
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	var req transport.SetStatusRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("set_status_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	reservation, err := h.Svc.SetStatus(ctx, uint(id), req.Status)
	if err != nil {
		return serviceError(err, "cannot update reservation status")
	}

	return c.JSON(http.StatusOK, reservation)
}
