package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cart belongs to exactly one owner: a registered user or a cookie-identified
// guest. Carts are created lazily on first add and emptied (not deleted) on
// checkout.
type Cart struct {
	ID        string     `gorm:"primaryKey" json:"id"`
	UserID    *string    `gorm:"uniqueIndex" json:"userId,omitempty"`
	GuestID   *string    `gorm:"uniqueIndex" json:"guestId,omitempty"`
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// CartItem holds at most one row per (cart, product); repeated adds increment
// Quantity instead of inserting duplicates.
type CartItem struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	CartID    string    `gorm:"index;uniqueIndex:idx_cart_product" json:"cartId"`
	ProductID string    `gorm:"uniqueIndex:idx_cart_product;not null" json:"productId"`
	Product   Product   `gorm:"foreignKey:ProductID" json:"product"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Cart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

func (i *CartItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
