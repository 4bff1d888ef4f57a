package routes

import (
	productController "github.com/Hassanfedawy/dr.mano/controllers/product"
	"github.com/Hassanfedawy/dr.mano/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupCatalogRoutes registers product and category endpoints. Reads are
// public; writes require an admin session.
func SetupCatalogRoutes(r *gin.Engine, db *gorm.DB) {
	r.GET("/products", productController.GetProducts(db))
	r.GET("/products/:id", productController.GetProductByID(db))
	r.GET("/categories", productController.GetAllCategories(db))

	adminWrites := r.Group("/")
	adminWrites.Use(middleware.ValidateToken, middleware.RequireAdmin)
	{
		adminWrites.POST("/products", productController.CreateProduct(db))
		adminWrites.PUT("/products/:id", productController.UpdateProduct(db))
		adminWrites.DELETE("/products/:id", productController.DeleteProduct(db))

		adminWrites.POST("/categories", productController.CreateCategory(db))
		adminWrites.PUT("/categories/:id", productController.UpdateCategory(db))
		adminWrites.DELETE("/categories/:id", productController.DeleteCategory(db))
	}
}
