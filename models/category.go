package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Category struct {
	ID       string    `gorm:"primaryKey" json:"id"`
	Name     string    `gorm:"not null" json:"name"`
	Slug     string    `gorm:"uniqueIndex;not null" json:"slug"`
	Image    string    `json:"image"`
	Products []Product `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
