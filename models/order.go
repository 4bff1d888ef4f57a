package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// ParseOrderStatus maps a wire string to an OrderStatus. The five values are
// wire-exact; anything else is rejected.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return OrderStatus(s), nil
	default:
		return "", errors.New("invalid order status")
	}
}

// Order is immutable once created except for Status and UpdatedAt. The owner
// is a tagged union: either UserID is set, or the guest triple is.
type Order struct {
	ID              string          `gorm:"primaryKey" json:"id"`
	UserID          *string         `gorm:"index" json:"userId,omitempty"`
	User            *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	GuestID         string          `gorm:"index" json:"guestId,omitempty"`
	GuestName       string          `json:"guestName,omitempty"`
	GuestEmail      string          `json:"guestEmail,omitempty"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Total           decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`
	Status          OrderStatus     `gorm:"type:varchar(20);default:'PENDING'" json:"status"`
	ShippingAddress string          `gorm:"not null" json:"shippingAddress"`
	PaymentMethod   string          `gorm:"not null" json:"paymentMethod"`
	PhoneNumber     string          `gorm:"not null" json:"phoneNumber"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// OrderItem snapshots the price at order time so later catalog edits never
// rewrite order history.
type OrderItem struct {
	ID        string          `gorm:"primaryKey" json:"id"`
	OrderID   string          `gorm:"index" json:"orderId"`
	ProductID string          `gorm:"not null" json:"productId"`
	Product   *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// ItemsTotal recomputes the order total from its items. Used instead of the
// stored Total column when returning orders to admins, to defend against
// drift.
func (o *Order) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}
