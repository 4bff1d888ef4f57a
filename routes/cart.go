package routes

import (
	cartControllers "github.com/Hassanfedawy/dr.mano/controllers/cart"
	"github.com/Hassanfedawy/dr.mano/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupCartRoutes registers the cart endpoints. Guests are identified by the
// guest cookie, so only optional auth is applied.
func SetupCartRoutes(r *gin.Engine, db *gorm.DB) {
	cartGroup := r.Group("/cart")
	cartGroup.Use(middleware.OptionalToken)
	{
		cartGroup.GET("", cartControllers.GetCartHandler(db))
		cartGroup.POST("", cartControllers.AddItemHandler(db))
		cartGroup.PUT("/items/:id", cartControllers.UpdateItemHandler(db))
		cartGroup.DELETE("/items/:id", cartControllers.RemoveItemHandler(db))
	}
}
