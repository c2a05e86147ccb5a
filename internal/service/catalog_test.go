package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ecofinds/backend/internal/models"
)

func newCatalog(t *testing.T) *CatalogService {
	db := newTestDB(t)
	return &CatalogService{DB: db, Cart: &CartService{DB: db}}
}

func TestCreateCategoryDuplicateName(t *testing.T) {
	svc := newCatalog(t)

	_, err := svc.CreateCategory(testCtx(), "Refrigerator", "")
	require.NoError(t, err)

	_, err = svc.CreateCategory(testCtx(), "Refrigerator", "again")
	require.ErrorIs(t, err, ErrConflict)

	_, err = svc.CreateCategory(testCtx(), "", "")
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestDeleteCategoryWithListings(t *testing.T) {
	svc := newCatalog(t)

	seller := createUser(t, svc.DB, "seller@example.com")
	category, err := svc.CreateCategory(testCtx(), "Microwave", "")
	require.NoError(t, err)

	listing, err := svc.CreateListing(testCtx(), seller.ID, "Compact microwave", "barely used", 120, category.ID, "")
	require.NoError(t, err)

	err = svc.DeleteCategory(testCtx(), category.ID)
	require.ErrorIs(t, err, ErrConflict)

	require.NoError(t, svc.DeleteListing(testCtx(), listing.ID, seller.ID))
	require.NoError(t, svc.DeleteCategory(testCtx(), category.ID))

	_, err = svc.GetCategory(testCtx(), category.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCreateListingValidation(t *testing.T) {
	svc := newCatalog(t)
	seller := createUser(t, svc.DB, "seller@example.com")

	_, err := svc.CreateListing(testCtx(), seller.ID, "Washer", "desc", 100, newRandomID(), "")
	require.ErrorIs(t, err, ErrNotFound)

	category := createCategory(t, svc.DB, "Washing Machine")
	_, err = svc.CreateListing(testCtx(), seller.ID, "Washer", "desc", 0, category.ID, "")
	require.ErrorIs(t, err, ErrInvalidArgument)

	listing, err := svc.CreateListing(testCtx(), seller.ID, "Washer", "desc", 100, category.ID, "")
	require.NoError(t, err)
	require.Equal(t, models.ListingStatusActive, listing.Status)
}

func TestUpdateListingOwnership(t *testing.T) {
	svc := newCatalog(t)
	seller := createUser(t, svc.DB, "seller@example.com")
	stranger := createUser(t, svc.DB, "stranger@example.com")
	category := createCategory(t, svc.DB, "Dishwasher")

	listing, err := svc.CreateListing(testCtx(), seller.ID, "Dishwasher", "desc", 300, category.ID, "")
	require.NoError(t, err)

	newPrice := 250.0
	_, err = svc.UpdateListing(testCtx(), listing.ID, stranger.ID, ListingPatch{Price: &newPrice})
	require.ErrorIs(t, err, ErrForbidden)

	updated, err := svc.UpdateListing(testCtx(), listing.ID, seller.ID, ListingPatch{Price: &newPrice})
	require.NoError(t, err)
	require.Equal(t, 250.0, updated.Price)

	badCategory := newRandomID()
	_, err = svc.UpdateListing(testCtx(), listing.ID, seller.ID, ListingPatch{CategoryID: &badCategory})
	require.ErrorIs(t, err, ErrNotFound)

	badStatus := "archived"
	_, err = svc.UpdateListing(testCtx(), listing.ID, seller.ID, ListingPatch{Status: &badStatus})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestDeleteListingPurgesCarts(t *testing.T) {
	svc := newCatalog(t)
	seller := createUser(t, svc.DB, "seller@example.com")
	buyer := createUser(t, svc.DB, "buyer@example.com")
	category := createCategory(t, svc.DB, "Refrigerator")

	listing, err := svc.CreateListing(testCtx(), seller.ID, "Fridge", "desc", 800, category.ID, "")
	require.NoError(t, err)

	_, err = svc.Cart.Add(testCtx(), buyer.ID, listing.ID, 1)
	require.NoError(t, err)

	err = svc.DeleteListing(testCtx(), listing.ID, buyer.ID)
	require.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, svc.DeleteListing(testCtx(), listing.ID, seller.ID))

	entries, err := svc.Cart.List(testCtx(), buyer.ID)
	require.NoError(t, err)
	require.Empty(t, entries)

	var rows int64
	require.NoError(t, svc.DB.Model(&models.CartItem{}).Where("listing_id = ?", listing.ID).Count(&rows).Error)
	require.Zero(t, rows)
}

func TestFindFiltersAndPagination(t *testing.T) {
	svc := newCatalog(t)
	seller := createUser(t, svc.DB, "seller@example.com")
	appliances := createCategory(t, svc.DB, "Appliances")
	other := createCategory(t, svc.DB, "Other")

	for i := 0; i < 5; i++ {
		createListing(t, svc.DB, seller.ID, appliances.ID, fmt.Sprintf("Washer %d", i), float64(100+i*100), models.ListingStatusActive)
	}
	createListing(t, svc.DB, seller.ID, other.ID, "Mystery Box", 50, models.ListingStatusActive)

	items, total, err := svc.Find(testCtx(), ListingFilter{Title: "washer"}, 0, 10)
	require.NoError(t, err)
	require.EqualValues(t, 5, total)
	require.Len(t, items, 5)

	items, total, err = svc.Find(testCtx(), ListingFilter{CategoryID: other.ID}, 0, 10)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, "Mystery Box", items[0].Title)

	min, max := 150.0, 350.0
	_, total, err = svc.Find(testCtx(), ListingFilter{MinPrice: &min, MaxPrice: &max}, 0, 10)
	require.NoError(t, err)
	require.EqualValues(t, 2, total)

	// Page past the end keeps the totals, returns nothing.
	items, total, err = svc.Find(testCtx(), ListingFilter{}, 10, 5)
	require.NoError(t, err)
	require.EqualValues(t, 6, total)
	require.Empty(t, items)

	items, _, err = svc.Find(testCtx(), ListingFilter{SortBy: "price"}, 0, 10)
	require.NoError(t, err)
	require.Equal(t, 50.0, items[0].Price)

	items, _, err = svc.Find(testCtx(), ListingFilter{SortBy: "price", SortDesc: true}, 0, 10)
	require.NoError(t, err)
	require.Equal(t, 500.0, items[0].Price)
}
