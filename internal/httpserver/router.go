package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fakhama/costume_rental/internal/middleware"
)

type Deps struct {
	AuthHandler      *AuthHTTP
	CatalogHandler   *CatalogHTTP
	BookingHandler   *BookingHTTP
	FavoritesHandler *FavoritesHTTP
	ReportingHandler *ReportingHTTP
	SearchHandler    *SearchHTTP

	JWTSecret []byte
	UploadDir string
}

func Register(e *echo.Echo, d *Deps) {
	e.Validator = NewRequestValidator()

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	if d.UploadDir != "" {
		e.Static("/storage", d.UploadDir)
	}

	authMW := middleware.NewBearerAuth(d.JWTSecret)

	e.POST("/auth/register", d.AuthHandler.Register)
	e.POST("/auth/login", d.AuthHandler.Login)

	e.GET("/products", d.CatalogHandler.GetProducts)
	e.GET("/products/featured", d.CatalogHandler.GetFeatured)
	e.GET("/products/search", d.SearchHandler.Search)
	e.GET("/products/:id", d.CatalogHandler.GetProduct)

	auth := e.Group("", authMW.RequireAuth)

	auth.POST("/logout", d.AuthHandler.Logout)
	auth.GET("/profile", d.AuthHandler.Me)
	auth.GET("/profile/:id", d.AuthHandler.Show)
	auth.PUT("/profile", d.AuthHandler.UpdateProfile)

	auth.POST("/reservations", d.BookingHandler.CreateReservations)
	auth.GET("/reservations", d.BookingHandler.ListReservations)
	auth.GET("/reservations/my", d.BookingHandler.MyReservations)

	auth.POST("/favorites/toggle", d.FavoritesHandler.Toggle)
	auth.GET("/favorites", d.FavoritesHandler.List)

	admin := e.Group("", authMW.RequireAdmin)

	admin.POST("/products", d.CatalogHandler.CreateProduct)
	admin.PUT("/products/:id", d.CatalogHandler.UpdateProduct)
	admin.DELETE("/products/:id", d.CatalogHandler.DeleteProduct)

	admin.PUT("/reservations/:id/return", d.BookingHandler.MarkReturned)
	admin.PUT("/reservations/:id/status", d.BookingHandler.SetStatus)

	admin.GET("/admin/stats", d.ReportingHandler.Stats)
}
