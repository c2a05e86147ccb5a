package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ecofinds/backend/internal/models"
)

type CheckoutService struct {
	DB *gorm.DB
}

// Checkout turns the user's cart into an order. Lines whose listing has
// disappeared or is no longer active are skipped rather than failing
// the whole checkout, and the cart is cleared unconditionally at the
// end, skipped lines included. Prices are frozen into the order items
// at this moment; later listing edits do not touch existing orders.
//
// All steps share one transaction so a crash cannot leave a cleared
// cart with no order.
func (s *CheckoutService) Checkout(ctx context.Context, userID uuid.UUID) (*models.Order, error) {
	var order models.Order

	txErr := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var items []models.CartItem
		if err := tx.Where("user_id = ?", userID).Order("created_at ASC").Find(&items).Error; err != nil {
			return fmt.Errorf("load cart: %w", err)
		}
		if len(items) == 0 {
			return fmt.Errorf("%w: cart is empty", ErrInvalidState)
		}

		var total float64
		var orderItems []models.OrderItem
		for _, it := range items {
			var listing models.Listing
			if err := tx.First(&listing, "id = ?", it.ListingID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue
				}
				return fmt.Errorf("load listing: %w", err)
			}
			if listing.Status != models.ListingStatusActive {
				continue
			}

			subtotal := listing.Price * float64(it.Qty)
			total += subtotal
			orderItems = append(orderItems, models.OrderItem{
				ListingID:       listing.ID,
				Title:           listing.Title,
				PriceAtPurchase: listing.Price,
				Qty:             it.Qty,
				Subtotal:        subtotal,
			})
		}

		if len(orderItems) == 0 {
			return fmt.Errorf("%w: no valid items in cart", ErrInvalidState)
		}

		order = models.Order{
			UserID: userID,
			Total:  total,
			Status: models.OrderStatusPending,
		}
		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		for i := range orderItems {
			orderItems[i].OrderID = order.ID
			if err := tx.Create(&orderItems[i]).Error; err != nil {
				return fmt.Errorf("create order item: %w", err)
			}
		}
		order.Items = orderItems

		if err := tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return &order, nil
}
