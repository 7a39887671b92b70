package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fakhama/costume_rental/internal/models"
)

func TestCreateProduct_AdminMultipart(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	admin := env.token(t, env.seedUser(t, "admin@test.com", "admin"))

	body, contentType := multipartBody(t, map[string]string{
		"name":        "Costume Royal",
		"description": "Trois pièces bleu nuit",
		"price":       "350",
		"category":    models.CategoryMariage,
		"sizes[0]":    "M",
		"sizes[1]":    "L",
		"tag":         "nouveau",
		"is_featured": "1",
	}, "image", "royal.jpg")

	rec := env.do(t, http.MethodPost, "/products", admin, contentType, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "Costume Royal", created.Name)
	assert.EqualValues(t, 350, created.Price)
	assert.Equal(t, []string{"M", "L"}, []string(created.Sizes))
	assert.True(t, created.IsFeatured)
	assert.Contains(t, created.Image, testBaseURL+"/storage/uploads/")
}

func TestCreateProduct_Authorization(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	client := env.token(t, env.seedUser(t, "client@test.com", "client"))

	body, contentType := multipartBody(t, map[string]string{
		"name": "x", "description": "x", "price": "10", "category": models.CategoryMariage,
	}, "image", "x.jpg")

	rec := env.do(t, http.MethodPost, "/products", client, contentType, body)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	body, contentType = multipartBody(t, map[string]string{
		"name": "x", "description": "x", "price": "10", "category": models.CategoryMariage,
	}, "image", "x.jpg")

	rec = env.do(t, http.MethodPost, "/products", "", contentType, body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateProduct_MissingImage(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	admin := env.token(t, env.seedUser(t, "admin@test.com", "admin"))

	body, contentType := multipartBody(t, map[string]string{
		"name": "x", "description": "x", "price": "10", "category": models.CategoryMariage,
	}, "", "")

	rec := env.do(t, http.MethodPost, "/products", admin, contentType, body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetProducts_CategoryFilter(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedProduct(t, "Costume Royal", 100, models.CategoryMariage)
	env.seedProduct(t, "Costume Classique", 80, models.CategoryBusiness)

	rec := env.do(t, http.MethodGet, "/products?category="+models.CategoryBusiness, "", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var items []models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Costume Classique", items[0].Name)

	rec = env.do(t, http.MethodGet, "/products?category="+models.CategoryAll, "", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	assert.Len(t, items, 2)
}

func TestGetFeatured(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedProduct(t, "Costume Classique", 80, models.CategoryBusiness)
	featured := env.seedProduct(t, "Costume Royal", 100, models.CategoryMariage)
	featured.IsFeatured = true
	require.NoError(t, env.repo.DB.Save(featured).Error)

	rec := env.do(t, http.MethodGet, "/products/featured", "", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var items []models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Costume Royal", items[0].Name)
}

func TestGetProduct_NotFound(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/products/777", "", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodGet, "/products/abc", "", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateProduct_PartialOverlay(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	admin := env.token(t, env.seedUser(t, "admin@test.com", "admin"))
	product := env.seedProduct(t, "Costume Royal", 100, models.CategoryMariage)

	body, contentType := multipartBody(t, map[string]string{"price": "120"}, "", "")

	rec := env.do(t, http.MethodPut, "/products/"+strconv.Itoa(int(product.ID)), admin, contentType, body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.EqualValues(t, 120, updated.Price)
	assert.Equal(t, "Costume Royal", updated.Name)
	assert.Equal(t, models.CategoryMariage, updated.Category)
}

func TestDeleteProduct(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	admin := env.token(t, env.seedUser(t, "admin@test.com", "admin"))
	product := env.seedProduct(t, "Costume Royal", 100, models.CategoryMariage)
	path := "/products/" + strconv.Itoa(int(product.ID))

	rec := env.do(t, http.MethodDelete, path, admin, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Product deleted successfully")

	rec = env.do(t, http.MethodDelete, path, admin, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSearch_NotConfigured(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/products/search?q=costume", "", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
