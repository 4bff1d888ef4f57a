package adminController

import (
	"net/http"

	"github.com/Hassanfedawy/dr.mano/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GET /admin/stats — dashboard counters.
func GetStats(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var totalOrders, totalProducts, totalUsers int64
		if err := db.Model(&models.Order{}).Count(&totalOrders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
			return
		}
		if err := db.Model(&models.Product{}).Count(&totalProducts).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
			return
		}
		if err := db.Model(&models.User{}).Count(&totalUsers).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
			return
		}

		var totals []decimal.Decimal
		if err := db.Model(&models.Order{}).Pluck("total", &totals).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
			return
		}
		revenue := decimal.Zero
		for _, t := range totals {
			revenue = revenue.Add(t)
		}

		c.JSON(http.StatusOK, gin.H{
			"totalRevenue":  revenue,
			"totalOrders":   totalOrders,
			"totalProducts": totalProducts,
			"totalUsers":    totalUsers,
		})
	}
}
