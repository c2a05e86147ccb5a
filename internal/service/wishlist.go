package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ecofinds/backend/internal/models"
)

type WishlistService struct {
	DB *gorm.DB
}

type WishlistEntry struct {
	Item    models.WishlistItem `json:"item"`
	Listing models.Listing      `json:"listing"`
}

func (s *WishlistService) Add(ctx context.Context, userID, listingID uuid.UUID) (*models.WishlistItem, error) {
	var listing models.Listing
	if err := s.DB.WithContext(ctx).First(&listing, "id = ?", listingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: listing", ErrNotFound)
		}
		return nil, fmt.Errorf("lookup listing: %w", err)
	}

	var existing models.WishlistItem
	err := s.DB.WithContext(ctx).Where("user_id = ? AND listing_id = ?", userID, listingID).First(&existing).Error
	if err == nil {
		return nil, fmt.Errorf("%w: item already in wishlist", ErrConflict)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lookup wishlist item: %w", err)
	}

	item := models.WishlistItem{UserID: userID, ListingID: listingID}
	if err := s.DB.WithContext(ctx).Create(&item).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, fmt.Errorf("%w: item already in wishlist", ErrConflict)
		}
		return nil, fmt.Errorf("create wishlist item: %w", err)
	}
	return &item, nil
}

func (s *WishlistService) Remove(ctx context.Context, userID, listingID uuid.UUID) error {
	res := s.DB.WithContext(ctx).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		Delete(&models.WishlistItem{})
	if res.Error != nil {
		return fmt.Errorf("delete wishlist item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: wishlist item", ErrNotFound)
	}
	return nil
}

// List has the same inner-join semantics as the cart: rows whose
// listing has been deleted are silently dropped.
func (s *WishlistService) List(ctx context.Context, userID uuid.UUID) ([]WishlistEntry, error) {
	var items []models.WishlistItem
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).Order("created_at ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list wishlist: %w", err)
	}
	if len(items) == 0 {
		return []WishlistEntry{}, nil
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

	entries := make([]WishlistEntry, 0, len(items))
	for _, it := range items {
		listing, ok := byID[it.ListingID]
		if !ok {
			continue
		}
		entries = append(entries, WishlistEntry{Item: it, Listing: listing})
	}
	return entries, nil
}
