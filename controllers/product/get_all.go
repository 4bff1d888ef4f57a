package productController

import (
	"math"
	"net/http"
	"strconv"

	"github.com/Hassanfedawy/dr.mano/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetProducts lists products newest first with optional category-slug filter
// and pagination. Query params: category, page, limit.
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		categorySlug := c.Query("category")

		page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
		if err != nil || page < 1 {
			page = 1
		}
		limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
		if err != nil || limit < 1 {
			limit = 10
		}

		query := db.Model(&models.Product{}).Preload("Category")
		if categorySlug != "" {
			query = query.
				Joins("JOIN categories ON categories.id = products.category_id").
				Where("categories.slug = ?", categorySlug)
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count products"})
			return
		}

		var products []models.Product
		if err := query.
			Order("products.created_at DESC").
			Offset((page - 1) * limit).
			Limit(limit).
			Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"products": products,
			"pagination": gin.H{
				"total":   total,
				"pages":   int(math.Ceil(float64(total) / float64(limit))),
				"current": page,
			},
		})
	}
}
