package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ecofinds/backend/internal/models"
)

func TestSeedReplacesCatalog(t *testing.T) {
	db := newTestDB(t)
	svc := &SeedService{DB: db}

	seller := createUser(t, db, "seller@example.com")
	stale := createCategory(t, db, "Stale")
	createListing(t, db, seller.ID, stale.ID, "Leftover", 1, models.ListingStatusActive)

	result, err := svc.Seed(testCtx())
	require.NoError(t, err)
	require.Equal(t, 4, result.CategoriesCreated)
	require.Equal(t, 4, result.ListingsCreated)

	var categories, listings int64
	require.NoError(t, db.Model(&models.Category{}).Count(&categories).Error)
	require.NoError(t, db.Model(&models.Listing{}).Count(&listings).Error)
	require.EqualValues(t, 4, categories)
	require.EqualValues(t, 4, listings)

	var leftover int64
	require.NoError(t, db.Model(&models.Listing{}).Where("title = ?", "Leftover").Count(&leftover).Error)
	require.Zero(t, leftover)

	// Seeding twice is safe and yields the same catalog.
	result, err = svc.Seed(testCtx())
	require.NoError(t, err)
	require.Equal(t, 4, result.CategoriesCreated)
}
