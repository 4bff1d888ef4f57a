package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID              string           `gorm:"primaryKey" json:"id"`
	Name            string           `gorm:"not null" json:"name"`
	MainDescription string           `json:"mainDescription"`
	SubDescription  string           `json:"subDescription"`
	Price           decimal.Decimal  `gorm:"type:decimal(10,2);not null" json:"price"`
	OriginalPrice   *decimal.Decimal `gorm:"type:decimal(10,2)" json:"originalPrice,omitempty"`
	Discount        *int             `json:"discount,omitempty"`
	Stock           int              `gorm:"not null;default:0" json:"stock"`
	Image           string           `json:"image"`
	Link            string           `json:"link,omitempty"`
	CategoryID      *string          `gorm:"index" json:"categoryId,omitempty"`
	Category        *Category        `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
