package productController

import (
	"errors"
	"net/http"

	"github.com/Hassanfedawy/dr.mano/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CreateProductInput struct {
	Name            string           `json:"name" binding:"required"`
	MainDescription string           `json:"mainDescription" binding:"required"`
	SubDescription  string           `json:"subDescription" binding:"required"`
	Price           decimal.Decimal  `json:"price" binding:"required"`
	OriginalPrice   *decimal.Decimal `json:"originalPrice"`
	Discount        *int             `json:"discount"`
	Stock           int              `json:"stock"`
	Image           string           `json:"image" binding:"required"`
	Link            string           `json:"link"`
	CategoryID      *string          `json:"categoryId"`
}

// POST /products (admin)
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.Price.Sign() < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Price must not be negative"})
			return
		}
		if input.Stock < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Stock must not be negative"})
			return
		}

		if input.CategoryID != nil {
			var category models.Category
			if err := db.First(&category, "id = ?", *input.CategoryID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					c.JSON(http.StatusBadRequest, gin.H{"error": "Category does not exist"})
				} else {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate category"})
				}
				return
			}
		}

		product := models.Product{
			Name:            input.Name,
			MainDescription: input.MainDescription,
			SubDescription:  input.SubDescription,
			Price:           input.Price,
			OriginalPrice:   input.OriginalPrice,
			Discount:        input.Discount,
			Stock:           input.Stock,
			Image:           input.Image,
			Link:            input.Link,
			CategoryID:      input.CategoryID,
		}
		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		c.JSON(http.StatusCreated, product)
	}
}
