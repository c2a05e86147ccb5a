package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/ecofinds/backend/internal/models"
)

type SeedService struct {
	DB *gorm.DB
}

type SeedResult struct {
	CategoriesCreated int `json:"categories_created"`
	ListingsCreated   int `json:"listings_created"`
}

// Seed wipes categories and listings and loads the demo catalog.
// Seeded listings have no seller, so nobody can edit them.
func (s *SeedService) Seed(ctx context.Context) (*SeedResult, error) {
	result := &SeedResult{}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Listing{}).Error; err != nil {
			return fmt.Errorf("clear listings: %w", err)
		}
		if err := tx.Where("1 = 1").Delete(&models.Category{}).Error; err != nil {
			return fmt.Errorf("clear categories: %w", err)
		}

		categories := []models.Category{
			{Name: "Washing Machine", Description: "Energy-efficient washing machines for eco-friendly cleaning"},
			{Name: "Refrigerator", Description: "Eco-friendly refrigerators with energy-saving features"},
			{Name: "Microwave", Description: "Efficient microwave ovens for modern kitchens"},
			{Name: "Dishwasher", Description: "Water-saving dishwashers for sustainable living"},
		}
		for i := range categories {
			if err := tx.Create(&categories[i]).Error; err != nil {
				return fmt.Errorf("seed category: %w", err)
			}
		}

		listings := []models.Listing{
			{
				Title:       "Eco-Friendly Front Load Washing Machine",
				Description: "Energy efficient A+++ rated washing machine with 7kg capacity. Perfect for eco-conscious households.",
				Price:       450.00,
				ImageURL:    "https://example.com/washing-machine-1.jpg",
				CategoryID:  categories[0].ID,
			},
			{
				Title:       "Smart Energy-Star Refrigerator",
				Description: "25 cu ft smart refrigerator with energy-saving features and WiFi connectivity.",
				Price:       800.00,
				ImageURL:    "https://example.com/refrigerator-1.jpg",
				CategoryID:  categories[1].ID,
			},
			{
				Title:       "Compact Countertop Microwave",
				Description: "Space-saving microwave with eco-mode and sensor cooking technology.",
				Price:       120.00,
				ImageURL:    "https://example.com/microwave-1.jpg",
				CategoryID:  categories[2].ID,
			},
			{
				Title:       "Water-Efficient Built-in Dishwasher",
				Description: "Quiet operation dishwasher that uses 40% less water than standard models.",
				Price:       350.00,
				ImageURL:    "https://example.com/dishwasher-1.jpg",
				CategoryID:  categories[3].ID,
			},
		}
		for i := range listings {
			listings[i].Status = models.ListingStatusActive
			if err := tx.Create(&listings[i]).Error; err != nil {
				return fmt.Errorf("seed listing: %w", err)
			}
		}

		result.CategoriesCreated = len(categories)
		result.ListingsCreated = len(listings)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
