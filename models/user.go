package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

type User struct {
	ID              string    `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"not null" json:"name"`
	PhoneNumber     string    `gorm:"uniqueIndex;not null" json:"phoneNumber"`
	Email           string    `gorm:"index" json:"email,omitempty"`
	Password        string    `gorm:"not null" json:"-"`
	Role            string    `gorm:"type:varchar(10);default:'USER'" json:"role"`
	ShippingAddress string    `json:"shippingAddress,omitempty"`
	Orders          []Order   `gorm:"foreignKey:UserID" json:"orders,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
