package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ecofinds/backend/internal/models"
)

func placeOrder(t *testing.T, checkout *CheckoutService, cart *CartService, buyer *models.User, listing *models.Listing) *models.Order {
	t.Helper()
	_, err := cart.Add(testCtx(), buyer.ID, listing.ID, 1)
	require.NoError(t, err)
	order, err := checkout.Checkout(testCtx(), buyer.ID)
	require.NoError(t, err)
	return order
}

func TestCancelPendingOrder(t *testing.T) {
	db := newTestDB(t)
	cart := &CartService{DB: db}
	checkout := &CheckoutService{DB: db}
	orders := &OrderService{DB: db}

	seller := createUser(t, db, "seller@example.com")
	buyer := createUser(t, db, "buyer@example.com")
	category := createCategory(t, db, "Appliances")
	listing := createListing(t, db, seller.ID, category.ID, "Heater", 80, models.ListingStatusActive)

	order := placeOrder(t, checkout, cart, buyer, listing)

	cancelled, err := orders.UpdateStatus(testCtx(), order.ID, buyer.ID, models.OrderStatusCancelled)
	require.NoError(t, err)
	require.Equal(t, models.OrderStatusCancelled, cancelled.Status)

	// Cancelling twice is no longer a pending order.
	_, err = orders.UpdateStatus(testCtx(), order.ID, buyer.ID, models.OrderStatusCancelled)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestCancelOnlyReachesPending(t *testing.T) {
	db := newTestDB(t)
	cart := &CartService{DB: db}
	checkout := &CheckoutService{DB: db}
	orders := &OrderService{DB: db}

	seller := createUser(t, db, "seller@example.com")
	buyer := createUser(t, db, "buyer@example.com")
	category := createCategory(t, db, "Appliances")
	listing := createListing(t, db, seller.ID, category.ID, "Fan", 25, models.ListingStatusActive)

	order := placeOrder(t, checkout, cart, buyer, listing)
	require.NoError(t, db.Model(&models.Order{}).Where("id = ?", order.ID).Update("status", models.OrderStatusShipped).Error)

	_, err := orders.UpdateStatus(testCtx(), order.ID, buyer.ID, models.OrderStatusCancelled)
	require.ErrorIs(t, err, ErrInvalidArgument)

	// No transition other than cancellation is accepted here.
	_, err = orders.UpdateStatus(testCtx(), order.ID, buyer.ID, models.OrderStatusDelivered)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestOrderOwnership(t *testing.T) {
	db := newTestDB(t)
	cart := &CartService{DB: db}
	checkout := &CheckoutService{DB: db}
	orders := &OrderService{DB: db}

	seller := createUser(t, db, "seller@example.com")
	buyer := createUser(t, db, "buyer@example.com")
	stranger := createUser(t, db, "stranger@example.com")
	category := createCategory(t, db, "Appliances")
	listing := createListing(t, db, seller.ID, category.ID, "Iron", 15, models.ListingStatusActive)

	order := placeOrder(t, checkout, cart, buyer, listing)

	_, err := orders.Get(testCtx(), order.ID, stranger.ID)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = orders.UpdateStatus(testCtx(), order.ID, stranger.ID, models.OrderStatusCancelled)
	require.ErrorIs(t, err, ErrNotFound)

	got, err := orders.Get(testCtx(), order.ID, buyer.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
}

func TestListOrdersNewestFirst(t *testing.T) {
	db := newTestDB(t)
	cart := &CartService{DB: db}
	checkout := &CheckoutService{DB: db}
	orders := &OrderService{DB: db}

	seller := createUser(t, db, "seller@example.com")
	buyer := createUser(t, db, "buyer@example.com")
	category := createCategory(t, db, "Appliances")
	a := createListing(t, db, seller.ID, category.ID, "First", 10, models.ListingStatusActive)
	b := createListing(t, db, seller.ID, category.ID, "Second", 20, models.ListingStatusActive)

	placeOrder(t, checkout, cart, buyer, a)
	second := placeOrder(t, checkout, cart, buyer, b)

	list, err := orders.ListForUser(testCtx(), buyer.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, second.ID, list[0].ID)
	require.Len(t, list[0].Items, 1)

	empty, err := orders.ListForUser(testCtx(), seller.ID)
	require.NoError(t, err)
	require.Empty(t, empty)
}
