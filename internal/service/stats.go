package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ecofinds/backend/internal/models"
)

type StatsService struct {
	DB *gorm.DB
}

type PlatformStats struct {
	TotalUsers      int64 `json:"total_users"`
	TotalListings   int64 `json:"total_listings"`
	ActiveListings  int64 `json:"active_listings"`
	TotalCategories int64 `json:"total_categories"`
	TotalOrders     int64 `json:"total_orders"`
	PendingOrders   int64 `json:"pending_orders"`
}

type UserStats struct {
	MyListings     int64   `json:"my_listings"`
	ActiveListings int64   `json:"active_listings"`
	MyOrders       int64   `json:"my_orders"`
	CartItems      int64   `json:"cart_items"`
	TotalSpent     float64 `json:"total_spent"`
}

func (s *StatsService) Platform(ctx context.Context) (*PlatformStats, error) {
	db := s.DB.WithContext(ctx)
	stats := &PlatformStats{}

	counts := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&stats.TotalUsers, db.Model(&models.User{})},
		{&stats.TotalListings, db.Model(&models.Listing{})},
		{&stats.ActiveListings, db.Model(&models.Listing{}).Where("status = ?", models.ListingStatusActive)},
		{&stats.TotalCategories, db.Model(&models.Category{})},
		{&stats.TotalOrders, db.Model(&models.Order{})},
		{&stats.PendingOrders, db.Model(&models.Order{}).Where("status = ?", models.OrderStatusPending)},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return nil, fmt.Errorf("count: %w", err)
		}
	}
	return stats, nil
}

func (s *StatsService) ForUser(ctx context.Context, userID uuid.UUID) (*UserStats, error) {
	db := s.DB.WithContext(ctx)
	stats := &UserStats{}

	counts := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&stats.MyListings, db.Model(&models.Listing{}).Where("seller_id = ?", userID)},
		{&stats.ActiveListings, db.Model(&models.Listing{}).Where("seller_id = ? AND status = ?", userID, models.ListingStatusActive)},
		{&stats.MyOrders, db.Model(&models.Order{}).Where("user_id = ?", userID)},
		{&stats.CartItems, db.Model(&models.CartItem{}).Where("user_id = ?", userID)},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return nil, fmt.Errorf("count: %w", err)
		}
	}

	// Spend only counts orders that made it past pending.
	var spent *float64
	err := db.Model(&models.Order{}).
		Where("user_id = ? AND status IN ?", userID, []string{models.OrderStatusConfirmed, models.OrderStatusDelivered}).
		Select("SUM(total)").
		Scan(&spent).Error
	if err != nil {
		return nil, fmt.Errorf("sum orders: %w", err)
	}
	if spent != nil {
		stats.TotalSpent = *spent
	}
	return stats, nil
}
