package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ecofinds/backend/internal/models"
)

type OrderService struct {
	DB *gorm.DB
}

// Get folds ownership into the lookup: an order that exists but belongs
// to someone else is indistinguishable from one that does not exist.
func (s *OrderService) Get(ctx context.Context, orderID, userID uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := s.DB.WithContext(ctx).Where("id = ? AND user_id = ?", orderID, userID).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order", ErrNotFound)
		}
		return nil, fmt.Errorf("lookup order: %w", err)
	}

	if err := s.DB.WithContext(ctx).Where("order_id = ?", orderID).Order("created_at ASC").Find(&order.Items).Error; err != nil {
		return nil, fmt.Errorf("load order items: %w", err)
	}
	return &order, nil
}

// UpdateStatus allows exactly one transition through the public
// contract: pending -> cancelled. Everything else is rejected as an
// invalid argument; a non-owner caller falls out of the lookup as
// NotFound.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID, userID uuid.UUID, newStatus string) (*models.Order, error) {
	var order models.Order
	if err := s.DB.WithContext(ctx).Where("id = ? AND user_id = ?", orderID, userID).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order", ErrNotFound)
		}
		return nil, fmt.Errorf("lookup order: %w", err)
	}

	if newStatus != models.OrderStatusCancelled || order.Status != models.OrderStatusPending {
		return nil, fmt.Errorf("%w: invalid status update", ErrInvalidArgument)
	}

	order.Status = models.OrderStatusCancelled
	if err := s.DB.WithContext(ctx).Model(&order).Update("status", models.OrderStatusCancelled).Error; err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}
	return &order, nil
}

func (s *OrderService) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	if len(orders) == 0 {
		return []models.Order{}, nil
	}

	ids := make([]uuid.UUID, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}

	var items []models.OrderItem
	if err := s.DB.WithContext(ctx).Where("order_id IN ?", ids).Order("created_at ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("load order items: %w", err)
	}
	byOrder := make(map[uuid.UUID][]models.OrderItem, len(orders))
	for _, it := range items {
		byOrder[it.OrderID] = append(byOrder[it.OrderID], it)
	}
	for i := range orders {
		orders[i].Items = byOrder[orders[i].ID]
	}
	return orders, nil
}
