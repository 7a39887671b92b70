package httpserver

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/fakhama/costume_rental/internal/models"
	"github.com/fakhama/costume_rental/internal/repo"
	"github.com/fakhama/costume_rental/internal/service"
	"github.com/fakhama/costume_rental/internal/storage"
	"github.com/fakhama/costume_rental/internal/tokens"
)

const testBaseURL = "http://localhost:8080"

var testSecret = []byte("test-jwt-secret")

type testEnv struct {
	e    *echo.Echo
	repo *repo.GormRepo
}

// newTestEnv wires the full router against an in-memory database and a
// temp-dir upload store, so handler tests exercise the real middleware,
// validation and error mapping.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Product{}, &models.Reservation{}, &models.Favorite{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}
	r := &repo.GormRepo{DB: db}

	files, err := storage.NewDiskStore(t.TempDir(), testBaseURL)
	if err != nil {
		t.Fatalf("failed to create disk store: %v", err)
	}

	e := echo.New()
	Register(e, &Deps{
		AuthHandler:      &AuthHTTP{Svc: &service.AuthService{Repo: r, JWTSecret: testSecret}},
		CatalogHandler:   &CatalogHTTP{Svc: &service.CatalogService{Repo: r}, Files: files},
		BookingHandler:   &BookingHTTP{Svc: &service.BookingService{Repo: r}, Files: files},
		FavoritesHandler: &FavoritesHTTP{Svc: &service.FavoritesService{Repo: r}},
		ReportingHandler: &ReportingHTTP{Svc: &service.ReportingService{Repo: r}},
		SearchHandler:    &SearchHTTP{},
		JWTSecret:        testSecret,
	})

	return &testEnv{e: e, repo: r}
}

func (env *testEnv) seedUser(t *testing.T, email, role string) *models.User {
	t.Helper()

	user := &models.User{Name: "test", Email: email, PasswordHash: "x", Role: role}
	if err := env.repo.DB.Create(user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func (env *testEnv) seedProduct(t *testing.T, name string, price float64, category string) *models.Product {
	t.Helper()

	product := &models.Product{
		Name:        name,
		Description: "test description",
		Price:       price,
		Sizes:       datatypes.NewJSONSlice([]string{"S", "M", "L"}),
		Image:       testBaseURL + "/storage/uploads/test.jpg",
		Category:    category,
	}
	if err := env.repo.DB.Create(product).Error; err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}
	return product
}

func (env *testEnv) token(t *testing.T, user *models.User) string {
	t.Helper()

	token, err := tokens.NewAccessToken(user.ID, user.Role, time.Now().Add(time.Hour), testSecret)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func (env *testEnv) do(t *testing.T, method, path, token, contentType string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) doJSON(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	return env.do(t, method, path, token, echo.MIMEApplicationJSON, bytes.NewBufferString(body))
}

// multipartBody builds a multipart form with the given text fields plus an
// optional file field holding a few fake bytes.
func multipartBody(t *testing.T, fields map[string]string, fileField, fileName string) (*bytes.Buffer, string) {
	t.Helper()

	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("failed to write form field: %v", err)
		}
	}
	if fileField != "" {
		fw, err := w.CreateFormFile(fileField, fileName)
		if err != nil {
			t.Fatalf("failed to create form file: %v", err)
		}
		if _, err := fw.Write([]byte("fake image bytes")); err != nil {
			t.Fatalf("failed to write form file: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}
	return buf, w.FormDataContentType()
}
