package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ecofinds/backend/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open in-memory db: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Listing{},
		&models.CartItem{},
		&models.WishlistItem{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}
	return db
}

func createUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := models.User{Email: email, PasswordHash: "x", Username: "tester"}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()
	category := models.Category{Name: name}
	require.NoError(t, db.Create(&category).Error)
	return &category
}

func createListing(t *testing.T, db *gorm.DB, seller uuid.UUID, category uuid.UUID, title string, price float64, status string) *models.Listing {
	t.Helper()
	listing := models.Listing{
		Title:       title,
		Description: "test listing",
		Price:       price,
		CategoryID:  category,
		SellerID:    seller,
		Status:      status,
	}
	require.NoError(t, db.Create(&listing).Error)
	return &listing
}

func testCtx() context.Context {
	return context.Background()
}

func newRandomID() uuid.UUID {
	return uuid.New()
}
