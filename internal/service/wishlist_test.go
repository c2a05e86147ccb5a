package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ecofinds/backend/internal/models"
)

func newWishlistFixture(t *testing.T) (*WishlistService, *models.User, *models.Listing) {
	db := newTestDB(t)
	seller := createUser(t, db, "seller@example.com")
	buyer := createUser(t, db, "buyer@example.com")
	category := createCategory(t, db, "Appliances")
	listing := createListing(t, db, seller.ID, category.ID, "Vacuum", 150, models.ListingStatusActive)
	return &WishlistService{DB: db}, buyer, listing
}

func TestWishlistAddAndDuplicate(t *testing.T) {
	svc, buyer, listing := newWishlistFixture(t)

	item, err := svc.Add(testCtx(), buyer.ID, listing.ID)
	require.NoError(t, err)
	require.NotEmpty(t, item.ID)

	_, err = svc.Add(testCtx(), buyer.ID, listing.ID)
	require.ErrorIs(t, err, ErrConflict)

	_, err = svc.Add(testCtx(), buyer.ID, newRandomID())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestWishlistRemove(t *testing.T) {
	svc, buyer, listing := newWishlistFixture(t)

	_, err := svc.Add(testCtx(), buyer.ID, listing.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Remove(testCtx(), buyer.ID, listing.ID))
	require.ErrorIs(t, svc.Remove(testCtx(), buyer.ID, listing.ID), ErrNotFound)
}

func TestWishlistListDropsOrphans(t *testing.T) {
	svc, buyer, listing := newWishlistFixture(t)
	category := createCategory(t, svc.DB, "Other")
	second := createListing(t, svc.DB, buyer.ID, category.ID, "Poster", 5, models.ListingStatusActive)

	_, err := svc.Add(testCtx(), buyer.ID, listing.ID)
	require.NoError(t, err)
	_, err = svc.Add(testCtx(), buyer.ID, second.ID)
	require.NoError(t, err)

	require.NoError(t, svc.DB.Delete(&models.Listing{}, "id = ?", listing.ID).Error)

	entries, err := svc.List(testCtx(), buyer.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, second.ID, entries[0].Listing.ID)
}
