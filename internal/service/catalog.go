package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ecofinds/backend/internal/models"
)

type CatalogService struct {
	DB   *gorm.DB
	Cart *CartService
}

type CategoryPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type ListingPatch struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Price       *float64   `json:"price"`
	ImageURL    *string    `json:"imageUrl"`
	CategoryID  *uuid.UUID `json:"categoryId"`
	Status      *string    `json:"status"`
}

// ListingFilter drives Find. Query matches title and description,
// Title matches title only; both are case-insensitive substrings.
type ListingFilter struct {
	Title      string
	Query      string
	CategoryID uuid.UUID
	MinPrice   *float64
	MaxPrice   *float64
	Status     string
	SortBy     string
	SortDesc   bool
}

var sortColumns = map[string]string{
	"createdAt":  "created_at",
	"created_at": "created_at",
	"price":      "price",
	"title":      "title",
}

func (s *CatalogService) CreateCategory(ctx context.Context, name, description string) (*models.Category, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", ErrInvalidArgument)
	}

	var existing models.Category
	err := s.DB.WithContext(ctx).Where("name = ?", name).First(&existing).Error
	if err == nil {
		return nil, fmt.Errorf("%w: category already exists", ErrConflict)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lookup category: %w", err)
	}

	category := models.Category{Name: name, Description: description}
	if err := s.DB.WithContext(ctx).Create(&category).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, fmt.Errorf("%w: category already exists", ErrConflict)
		}
		return nil, fmt.Errorf("create category: %w", err)
	}
	return &category, nil
}

func (s *CatalogService) GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := s.DB.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: category", ErrNotFound)
		}
		return nil, fmt.Errorf("lookup category: %w", err)
	}
	return &category, nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := s.DB.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id uuid.UUID, patch CategoryPatch) (*models.Category, error) {
	category, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil && *patch.Name != category.Name {
		if *patch.Name == "" {
			return nil, fmt.Errorf("%w: category name is required", ErrInvalidArgument)
		}
		var other models.Category
		err := s.DB.WithContext(ctx).Where("name = ? AND id <> ?", *patch.Name, id).First(&other).Error
		if err == nil {
			return nil, fmt.Errorf("%w: category already exists", ErrConflict)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("lookup category: %w", err)
		}
		category.Name = *patch.Name
	}
	if patch.Description != nil {
		category.Description = *patch.Description
	}

	if err := s.DB.WithContext(ctx).Save(category).Error; err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return category, nil
}

// DeleteCategory runs the referential check and the delete in one
// transaction so a listing created in between cannot orphan itself.
func (s *CatalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.First(&category, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: category", ErrNotFound)
			}
			return fmt.Errorf("lookup category: %w", err)
		}

		var refs int64
		if err := tx.Model(&models.Listing{}).Where("category_id = ?", id).Count(&refs).Error; err != nil {
			return fmt.Errorf("count listings: %w", err)
		}
		if refs > 0 {
			return fmt.Errorf("%w: category has listings", ErrConflict)
		}

		if err := tx.Delete(&category).Error; err != nil {
			return fmt.Errorf("delete category: %w", err)
		}
		return nil
	})
}

func (s *CatalogService) CreateListing(ctx context.Context, sellerID uuid.UUID, title, description string, price float64, categoryID uuid.UUID, imageURL string) (*models.Listing, error) {
	if title == "" || description == "" {
		return nil, fmt.Errorf("%w: title and description are required", ErrInvalidArgument)
	}
	if price <= 0 {
		return nil, fmt.Errorf("%w: price must be greater than 0", ErrInvalidArgument)
	}

	var category models.Category
	if err := s.DB.WithContext(ctx).First(&category, "id = ?", categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: category", ErrNotFound)
		}
		return nil, fmt.Errorf("lookup category: %w", err)
	}

	listing := models.Listing{
		Title:       title,
		Description: description,
		Price:       price,
		ImageURL:    imageURL,
		CategoryID:  categoryID,
		SellerID:    sellerID,
		Status:      models.ListingStatusActive,
	}
	if err := s.DB.WithContext(ctx).Create(&listing).Error; err != nil {
		return nil, fmt.Errorf("create listing: %w", err)
	}
	return &listing, nil
}

func (s *CatalogService) GetListing(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	var listing models.Listing
	if err := s.DB.WithContext(ctx).First(&listing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: listing", ErrNotFound)
		}
		return nil, fmt.Errorf("lookup listing: %w", err)
	}
	return &listing, nil
}

func (s *CatalogService) UpdateListing(ctx context.Context, id, callerID uuid.UUID, patch ListingPatch) (*models.Listing, error) {
	listing, err := s.GetListing(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing.SellerID != callerID {
		return nil, fmt.Errorf("%w: not the seller", ErrForbidden)
	}

	if patch.CategoryID != nil {
		var category models.Category
		if err := s.DB.WithContext(ctx).First(&category, "id = ?", *patch.CategoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: category", ErrNotFound)
			}
			return nil, fmt.Errorf("lookup category: %w", err)
		}
		listing.CategoryID = *patch.CategoryID
	}
	if patch.Title != nil {
		listing.Title = *patch.Title
	}
	if patch.Description != nil {
		listing.Description = *patch.Description
	}
	if patch.Price != nil {
		if *patch.Price <= 0 {
			return nil, fmt.Errorf("%w: price must be greater than 0", ErrInvalidArgument)
		}
		listing.Price = *patch.Price
	}
	if patch.ImageURL != nil {
		listing.ImageURL = *patch.ImageURL
	}
	if patch.Status != nil {
		switch *patch.Status {
		case models.ListingStatusActive, models.ListingStatusSold, models.ListingStatusInactive:
			listing.Status = *patch.Status
		default:
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidArgument, *patch.Status)
		}
	}

	if err := s.DB.WithContext(ctx).Save(listing).Error; err != nil {
		return nil, fmt.Errorf("update listing: %w", err)
	}
	return listing, nil
}

// DeleteListing removes the listing and purges it from every cart in
// the same transaction, so no cart row can survive its listing.
func (s *CatalogService) DeleteListing(ctx context.Context, id, callerID uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var listing models.Listing
		if err := tx.First(&listing, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: listing", ErrNotFound)
			}
			return fmt.Errorf("lookup listing: %w", err)
		}
		if listing.SellerID != callerID {
			return fmt.Errorf("%w: not the seller", ErrForbidden)
		}

		if err := s.Cart.purgeForListing(tx, id); err != nil {
			return err
		}

		if err := tx.Delete(&listing).Error; err != nil {
			return fmt.Errorf("delete listing: %w", err)
		}
		return nil
	})
}

func (s *CatalogService) Find(ctx context.Context, filter ListingFilter, offset, limit int) ([]models.Listing, int64, error) {
	q := s.DB.WithContext(ctx).Model(&models.Listing{})

	if filter.Title != "" {
		q = q.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(filter.Title)+"%")
	}
	if filter.Query != "" {
		needle := "%" + strings.ToLower(filter.Query) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", needle, needle)
	}
	if filter.CategoryID != uuid.Nil {
		q = q.Where("category_id = ?", filter.CategoryID)
	}
	if filter.MinPrice != nil {
		q = q.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		q = q.Where("price <= ?", *filter.MaxPrice)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count listings: %w", err)
	}

	column, ok := sortColumns[filter.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "ASC"
	if filter.SortDesc {
		direction = "DESC"
	}

	var items []models.Listing
	if err := q.Order(column + " " + direction).Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return nil, 0, fmt.Errorf("find listings: %w", err)
	}
	return items, total, nil
}

func (s *CatalogService) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]models.Listing, error) {
	var items []models.Listing
	if err := s.DB.WithContext(ctx).Where("seller_id = ?", sellerID).Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list seller listings: %w", err)
	}
	return items, nil
}
