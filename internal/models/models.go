package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ListingStatusActive   = "active"
	ListingStatusSold     = "sold"
	ListingStatusInactive = "inactive"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"      json:"id"`
	Email        string    `gorm:"uniqueIndex;not null"      json:"email"`
	PasswordHash string    `gorm:"not null"                  json:"-"`
	Username     string    `json:"username"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"      json:"id"`
	Name        string    `gorm:"uniqueIndex;not null"      json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type Listing struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"          json:"id"`
	Title       string    `gorm:"not null"                      json:"title"`
	Description string    `gorm:"not null"                      json:"description"`
	Price       float64   `gorm:"not null;check:price > 0"      json:"price"`
	ImageURL    string    `json:"imageUrl"`
	CategoryID  uuid.UUID `gorm:"type:uuid;index;not null"      json:"categoryId"`
	// SellerID is the zero uuid for seeded listings, which have no owner.
	SellerID  uuid.UUID `gorm:"type:uuid;index"               json:"sellerId"`
	Status    string    `gorm:"not null;default:active"       json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (l *Listing) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

type CartItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"                              json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_cart_user_listing"       json:"userId"`
	ListingID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_cart_user_listing;index" json:"listingId"`
	Qty       int       `gorm:"not null;check:qty > 0"                            json:"qty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (i *CartItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

type WishlistItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"                        json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_wish_user_listing" json:"userId"`
	ListingID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_wish_user_listing" json:"listingId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (i *WishlistItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

type Order struct {
	ID        uuid.UUID   `gorm:"type:uuid;primaryKey"     json:"id"`
	UserID    uuid.UUID   `gorm:"type:uuid;index;not null" json:"userId"`
	Total     float64     `gorm:"not null"                 json:"total"`
	Status    string      `gorm:"not null"                 json:"status"`
	Items     []OrderItem `gorm:"-"                        json:"items,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

type OrderItem struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"     json:"id"`
	OrderID         uuid.UUID `gorm:"type:uuid;index;not null" json:"orderId"`
	ListingID       uuid.UUID `gorm:"type:uuid;not null"       json:"listingId"`
	Title           string    `gorm:"not null"                 json:"title"`
	PriceAtPurchase float64   `gorm:"not null"                 json:"priceAtPurchase"`
	Qty             int       `gorm:"not null;check:qty > 0"   json:"qty"`
	Subtotal        float64   `gorm:"not null"                 json:"subtotal"`
	CreatedAt       time.Time `json:"createdAt"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
