package productController

import (
	"errors"
	"net/http"

	"github.com/Hassanfedawy/dr.mano/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type UpdateProductInput struct {
	Name            *string          `json:"name"`
	MainDescription *string          `json:"mainDescription"`
	SubDescription  *string          `json:"subDescription"`
	Price           *decimal.Decimal `json:"price"`
	OriginalPrice   *decimal.Decimal `json:"originalPrice"`
	Discount        *int             `json:"discount"`
	Stock           *int             `json:"stock"`
	Image           *string          `json:"image"`
	Link            *string          `json:"link"`
	CategoryID      *string          `json:"categoryId"`
}

// PUT /products/:id (admin). Only supplied fields are updated.
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.First(&product, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			}
			return
		}

		var input UpdateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if input.Name != nil {
			product.Name = *input.Name
		}
		if input.MainDescription != nil {
			product.MainDescription = *input.MainDescription
		}
		if input.SubDescription != nil {
			product.SubDescription = *input.SubDescription
		}
		if input.Price != nil {
			if input.Price.Sign() < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Price must not be negative"})
				return
			}
			product.Price = *input.Price
		}
		if input.OriginalPrice != nil {
			product.OriginalPrice = input.OriginalPrice
		}
		if input.Discount != nil {
			product.Discount = input.Discount
		}
		if input.Stock != nil {
			if *input.Stock < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Stock must not be negative"})
				return
			}
			product.Stock = *input.Stock
		}
		if input.Image != nil {
			product.Image = *input.Image
		}
		if input.Link != nil {
			product.Link = *input.Link
		}
		if input.CategoryID != nil {
			var category models.Category
			if err := db.First(&category, "id = ?", *input.CategoryID).Error; err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Category does not exist"})
				return
			}
			product.CategoryID = input.CategoryID
		}

		if err := db.Save(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}

		c.JSON(http.StatusOK, product)
	}
}
