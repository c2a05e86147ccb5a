package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ecofinds/backend/internal/models"
)

func newCartFixture(t *testing.T) (*CartService, *models.User, *models.Listing) {
	db := newTestDB(t)
	seller := createUser(t, db, "seller@example.com")
	buyer := createUser(t, db, "buyer@example.com")
	category := createCategory(t, db, "Appliances")
	listing := createListing(t, db, seller.ID, category.ID, "Fridge", 500, models.ListingStatusActive)
	return &CartService{DB: db}, buyer, listing
}

func TestCartAddMergesQuantities(t *testing.T) {
	svc, buyer, listing := newCartFixture(t)

	first, err := svc.Add(testCtx(), buyer.ID, listing.ID, 2)
	require.NoError(t, err)
	require.Equal(t, 2, first.Qty)

	second, err := svc.Add(testCtx(), buyer.ID, listing.ID, 3)
	require.NoError(t, err)
	require.Equal(t, 5, second.Qty)
	require.Equal(t, first.ID, second.ID)

	n, err := svc.Count(testCtx(), buyer.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
}

func TestCartAddValidation(t *testing.T) {
	svc, buyer, listing := newCartFixture(t)

	_, err := svc.Add(testCtx(), buyer.ID, listing.ID, 0)
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = svc.Add(testCtx(), buyer.ID, newRandomID(), 1)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.DB.Model(listing).Update("status", models.ListingStatusSold).Error)
	_, err = svc.Add(testCtx(), buyer.ID, listing.ID, 1)
	require.ErrorIs(t, err, ErrInvalidState)
}

func TestCartSetQuantity(t *testing.T) {
	svc, buyer, listing := newCartFixture(t)
	other := createUser(t, svc.DB, "other@example.com")

	item, err := svc.Add(testCtx(), buyer.ID, listing.ID, 1)
	require.NoError(t, err)

	updated, err := svc.SetQuantity(testCtx(), buyer.ID, item.ID, 4)
	require.NoError(t, err)
	require.Equal(t, 4, updated.Qty)

	_, err = svc.SetQuantity(testCtx(), buyer.ID, item.ID, 0)
	require.ErrorIs(t, err, ErrInvalidArgument)

	// Someone else's item looks like it does not exist.
	_, err = svc.SetQuantity(testCtx(), other.ID, item.ID, 2)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCartRemoveIsIdempotent(t *testing.T) {
	svc, buyer, listing := newCartFixture(t)

	item, err := svc.Add(testCtx(), buyer.ID, listing.ID, 1)
	require.NoError(t, err)

	require.NoError(t, svc.Remove(testCtx(), buyer.ID, item.ID))
	require.NoError(t, svc.Remove(testCtx(), buyer.ID, item.ID))
	require.NoError(t, svc.Remove(testCtx(), buyer.ID, newRandomID()))
}

func TestCartListDropsOrphans(t *testing.T) {
	svc, buyer, listing := newCartFixture(t)
	category := createCategory(t, svc.DB, "Other")
	second := createListing(t, svc.DB, buyer.ID, category.ID, "Lamp", 30, models.ListingStatusActive)

	_, err := svc.Add(testCtx(), buyer.ID, listing.ID, 1)
	require.NoError(t, err)
	_, err = svc.Add(testCtx(), buyer.ID, second.ID, 2)
	require.NoError(t, err)

	require.NoError(t, svc.DB.Delete(&models.Listing{}, "id = ?", listing.ID).Error)

	entries, err := svc.List(testCtx(), buyer.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, second.ID, entries[0].Listing.ID)
}

func TestCartClear(t *testing.T) {
	svc, buyer, listing := newCartFixture(t)

	_, err := svc.Add(testCtx(), buyer.ID, listing.ID, 1)
	require.NoError(t, err)

	require.NoError(t, svc.Clear(testCtx(), buyer.ID))

	n, err := svc.Count(testCtx(), buyer.ID)
	require.NoError(t, err)
	require.Zero(t, n)

	require.NoError(t, svc.Clear(testCtx(), buyer.ID))
}
