package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ecofinds/backend/internal/models"
)

func TestPlatformStats(t *testing.T) {
	db := newTestDB(t)
	svc := &StatsService{DB: db}

	seller := createUser(t, db, "seller@example.com")
	createUser(t, db, "buyer@example.com")
	category := createCategory(t, db, "Appliances")
	createListing(t, db, seller.ID, category.ID, "Fridge", 500, models.ListingStatusActive)
	createListing(t, db, seller.ID, category.ID, "Old Fridge", 100, models.ListingStatusSold)

	stats, err := svc.Platform(testCtx())
	require.NoError(t, err)
	require.EqualValues(t, 2, stats.TotalUsers)
	require.EqualValues(t, 2, stats.TotalListings)
	require.EqualValues(t, 1, stats.ActiveListings)
	require.EqualValues(t, 1, stats.TotalCategories)
	require.EqualValues(t, 0, stats.TotalOrders)
}

func TestUserStatsSpendCountsCompletedOrders(t *testing.T) {
	db := newTestDB(t)
	svc := &StatsService{DB: db}
	cart := &CartService{DB: db}
	checkout := &CheckoutService{DB: db}

	seller := createUser(t, db, "seller@example.com")
	buyer := createUser(t, db, "buyer@example.com")
	category := createCategory(t, db, "Appliances")
	listing := createListing(t, db, seller.ID, category.ID, "Stove", 300, models.ListingStatusActive)

	_, err := cart.Add(testCtx(), buyer.ID, listing.ID, 1)
	require.NoError(t, err)
	order, err := checkout.Checkout(testCtx(), buyer.ID)
	require.NoError(t, err)

	// Pending orders are counted but not yet spent money.
	stats, err := svc.ForUser(testCtx(), buyer.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, stats.MyOrders)
	require.Zero(t, stats.TotalSpent)

	require.NoError(t, db.Model(&models.Order{}).Where("id = ?", order.ID).Update("status", models.OrderStatusDelivered).Error)

	stats, err = svc.ForUser(testCtx(), buyer.ID)
	require.NoError(t, err)
	require.Equal(t, 300.0, stats.TotalSpent)

	sellerStats, err := svc.ForUser(testCtx(), seller.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, sellerStats.MyListings)
	require.Zero(t, sellerStats.MyOrders)
}
