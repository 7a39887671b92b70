package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/fakhama/costume_rental/internal/models"
	"github.com/fakhama/costume_rental/internal/repo"
)

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Product{}, &models.Reservation{}, &models.Favorite{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	return &repo.GormRepo{DB: db}
}

func seedUser(t *testing.T, r *repo.GormRepo, email, role string) *models.User {
	t.Helper()

	user := &models.User{
		Name:         "test",
		Email:        email,
		PasswordHash: "x",
		Role:         role,
	}
	if err := r.DB.Create(user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func seedProduct(t *testing.T, r *repo.GormRepo, name string, price float64) *models.Product {
	t.Helper()

	product := &models.Product{
		Name:        name,
		Description: "test description",
		Price:       price,
		Sizes:       datatypes.NewJSONSlice([]string{"S", "M", "L"}),
		Image:       "http://localhost:8080/storage/uploads/test.jpg",
		Category:    models.CategoryMariage,
	}
	if err := r.DB.Create(product).Error; err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}
	return product
}
