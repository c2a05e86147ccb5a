package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ecofinds/backend/internal/models"
)

type CartService struct {
	DB *gorm.DB
}

// CartEntry pairs a cart row with a snapshot of its listing.
type CartEntry struct {
	Item    models.CartItem `json:"item"`
	Listing models.Listing  `json:"listing"`
}

// Add puts qty of a listing into the user's cart. A second add for the
// same (user, listing) pair increments the existing row instead of
// creating a duplicate. The increment rides on the unique index via an
// upsert, so two concurrent adds cannot lose an update.
func (s *CartService) Add(ctx context.Context, userID, listingID uuid.UUID, qty int) (*models.CartItem, error) {
	if qty <= 0 {
		return nil, fmt.Errorf("%w: qty must be greater than 0", ErrInvalidArgument)
	}

	var listing models.Listing
	if err := s.DB.WithContext(ctx).First(&listing, "id = ?", listingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: listing", ErrNotFound)
		}
		return nil, fmt.Errorf("lookup listing: %w", err)
	}
	if listing.Status != models.ListingStatusActive {
		return nil, fmt.Errorf("%w: listing is not available", ErrInvalidState)
	}

	item := models.CartItem{
		UserID:    userID,
		ListingID: listingID,
		Qty:       qty,
	}
	err := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "listing_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"qty":        gorm.Expr("cart_items.qty + excluded.qty"),
			"updated_at": time.Now(),
		}),
	}).Create(&item).Error
	if err != nil {
		return nil, fmt.Errorf("upsert cart item: %w", err)
	}

	var merged models.CartItem
	if err := s.DB.WithContext(ctx).Where("user_id = ? AND listing_id = ?", userID, listingID).First(&merged).Error; err != nil {
		return nil, fmt.Errorf("reload cart item: %w", err)
	}
	return &merged, nil
}

// SetQuantity replaces the qty of one cart row. A row belonging to a
// different user reports NotFound, not Forbidden, so item ids cannot be
// probed for existence.
func (s *CartService) SetQuantity(ctx context.Context, userID, itemID uuid.UUID, qty int) (*models.CartItem, error) {
	if qty <= 0 {
		return nil, fmt.Errorf("%w: qty must be greater than 0", ErrInvalidArgument)
	}

	var item models.CartItem
	if err := s.DB.WithContext(ctx).Where("id = ? AND user_id = ?", itemID, userID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: cart item", ErrNotFound)
		}
		return nil, fmt.Errorf("lookup cart item: %w", err)
	}

	item.Qty = qty
	if err := s.DB.WithContext(ctx).Save(&item).Error; err != nil {
		return nil, fmt.Errorf("update cart item: %w", err)
	}
	return &item, nil
}

// Remove is idempotent: deleting an absent item is a no-op.
func (s *CartService) Remove(ctx context.Context, userID, itemID uuid.UUID) error {
	if err := s.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, userID).
		Delete(&models.CartItem{}).Error; err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}
	return nil
}

func (s *CartService) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

// purgeForListing drops every cart row for a listing, whoever owns it.
// It runs inside the catalog delete transaction.
func (s *CartService) purgeForListing(tx *gorm.DB, listingID uuid.UUID) error {
	if err := tx.Where("listing_id = ?", listingID).Delete(&models.CartItem{}).Error; err != nil {
		return fmt.Errorf("purge cart items: %w", err)
	}
	return nil
}

// List joins cart rows with their listings. A row whose listing is gone
// is dropped from the result, matching the inner-join semantics of the
// stored aggregation.
func (s *CartService) List(ctx context.Context, userID uuid.UUID) ([]CartEntry, error) {
	var items []models.CartItem
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).Order("created_at ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list cart: %w", err)
	}
	return s.attachListings(ctx, items)
}

func (s *CartService) attachListings(ctx context.Context, items []models.CartItem) ([]CartEntry, error) {
	if len(items) == 0 {
		return []CartEntry{}, nil
	}

	ids := make([]uuid.UUID, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ListingID)
	}

	var listings []models.Listing
	if err := s.DB.WithContext(ctx).Where("id IN ?", ids).Find(&listings).Error; err != nil {
		return nil, fmt.Errorf("load listings: %w", err)
	}
	byID := make(map[uuid.UUID]models.Listing, len(listings))
	for _, l := range listings {
		byID[l.ID] = l
	}

	entries := make([]CartEntry, 0, len(items))
	for _, it := range items {
		listing, ok := byID[it.ListingID]
		if !ok {
			continue
		}
		entries = append(entries, CartEntry{Item: it, Listing: listing})
	}
	return entries, nil
}

func (s *CartService) Count(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	if err := s.DB.WithContext(ctx).Model(&models.CartItem{}).Where("user_id = ?", userID).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count cart items: %w", err)
	}
	return n, nil
}
