package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/datatypes"

	"github.com/fakhama/costume_rental/internal/logging"
	"github.com/fakhama/costume_rental/internal/models"
	"github.com/fakhama/costume_rental/internal/service"
	"github.com/fakhama/costume_rental/internal/storage"
)

type CatalogHTTP struct {
	Svc   *service.CatalogService
	Files storage.Store
}

func (h *CatalogHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_products")

	items, err := h.Svc.ListProducts(ctx, c.QueryParam("category"))
	if err != nil {
		l.Error("get_products_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list products")
	}

	return c.JSON(http.StatusOK, items)
}

func (h *CatalogHTTP) GetFeatured(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_featured")

	items, err := h.Svc.ListFeatured(ctx)
	if err != nil {
		l.Error("get_featured_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list products")
	}

	return c.JSON(http.StatusOK, items)
}

func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_product")

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		l.Warn("get_product_failed", "status", 400, "reason", "id is not an integer")
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	product, err := h.Svc.GetProduct(ctx, uint(id))
	if err != nil {
		return serviceError(err, "cannot get product")
	}

	return c.JSON(http.StatusOK, product)
}

func (h *CatalogHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create_product")

	price, err := strconv.ParseFloat(c.FormValue("price"), 64)
	if err != nil {
		l.Warn("create_product_failed", "status", 400, "reason", "price is not a number")
		return echo.NewHTTPError(http.StatusBadRequest, "price is not a number")
	}

	file, err := c.FormFile("image")
	if err != nil {
		l.Warn("create_product_failed", "status", 400, "reason", "image file required")
		return echo.NewHTTPError(http.StatusBadRequest, "image file required")
	}

	imageURL, err := h.Files.SaveUpload("uploads", file)
	if err != nil {
		l.Error("create_product_failed", "status", 500, "reason", "cannot store image", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot store image")
	}

	prod := &models.Product{
		Name:        c.FormValue("name"),
		Description: c.FormValue("description"),
		Price:       price,
		Sizes:       datatypes.NewJSONSlice(formSizes(c)),
		Image:       imageURL,
		Category:    c.FormValue("category"),
		Tag:         c.FormValue("tag"),
		IsFeatured:  formBool(c.FormValue("is_featured")),
	}
	if prod.Name == "" || prod.Description == "" {
		l.Warn("create_product_failed", "status", 400, "reason", "name and description required")
		return echo.NewHTTPError(http.StatusBadRequest, "name and description required")
	}

	created, err := h.Svc.CreateProduct(ctx, prod)
	if err != nil {
		return serviceError(err, "cannot add product to db")
	}

	l.Info("create_product_success", "product_id", created.ID)
	return c.JSON(http.StatusCreated, created)
}

func (h *CatalogHTTP) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update_product")

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		l.Warn("update_product_failed", "status", 400, "reason", "id is not an integer")
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	prod, err := h.Svc.GetProduct(ctx, uint(id))
	if err != nil {
		return serviceError(err, "cannot get product")
	}

	if v := c.FormValue("name"); v != "" {
		prod.Name = v
	}
	if v := c.FormValue("description"); v != "" {
		prod.Description = v
	}
	if v := c.FormValue("price"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			l.Warn("update_product_failed", "status", 400, "reason", "price is not a number")
			return echo.NewHTTPError(http.StatusBadRequest, "price is not a number")
		}
		prod.Price = price
	}
	if sizes := formSizes(c); len(sizes) > 0 {
		prod.Sizes = datatypes.NewJSONSlice(sizes)
	}
	if v := c.FormValue("category"); v != "" {
		prod.Category = v
	}
	if v := c.FormValue("tag"); v != "" {
		prod.Tag = v
	}
	if v := c.FormValue("is_featured"); v != "" {
		prod.IsFeatured = formBool(v)
	}

	if file, err := c.FormFile("image"); err == nil {
		imageURL, err := h.Files.SaveUpload("uploads", file)
		if err != nil {
			l.Error("update_product_failed", "status", 500, "reason", "cannot store image", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot store image")
		}
		prod.Image = imageURL
	}

	saved, err := h.Svc.UpdateProduct(ctx, prod)
	if err != nil {
		return serviceError(err, "cannot update product")
	}

	l.Info("update_product_success", "product_id", saved.ID)
	return c.JSON(http.StatusOK, saved)
}

func (h *CatalogHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete_product")

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		l.Warn("delete_product_failed", "status", 400, "reason", "id is not an integer")
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	if err := h.Svc.DeleteProduct(ctx, uint(id)); err != nil {
		return serviceError(err, "cannot delete product")
	}

	l.Info("delete_product_success", "product_id", id)
	return c.JSON(http.StatusOK, echo.Map{"message": "Product deleted successfully"})
}

// formSizes accepts the size list in the shapes mobile clients actually
// send: repeated "sizes" fields, Laravel-style "sizes[0]", "sizes[1]", or a
// single JSON-encoded "sizes" value.
func formSizes(c echo.Context) []string {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		if v := c.FormValue("sizes"); v != "" {
			return sizesFromJSON(v)
		}
		return nil
	}

	if vals, ok := form.Value["sizes"]; ok {
		if len(vals) == 1 && strings.HasPrefix(strings.TrimSpace(vals[0]), "[") {
			return sizesFromJSON(vals[0])
		}
		return vals
	}

	var sizes []string
	for i := 0; ; i++ {
		vals, ok := form.Value["sizes["+strconv.Itoa(i)+"]"]
		if !ok || len(vals) == 0 {
			break
		}
		sizes = append(sizes, vals[0])
	}
	return sizes
}

func sizesFromJSON(v string) []string {
	var sizes []string
	if err := json.Unmarshal([]byte(v), &sizes); err != nil {
		return nil
	}
	return sizes
}

func formBool(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}
