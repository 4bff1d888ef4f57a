package routes

import (
	orderControllers "github.com/Hassanfedawy/dr.mano/controllers/order"
	"github.com/Hassanfedawy/dr.mano/events"
	"github.com/Hassanfedawy/dr.mano/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupOrderRoutes registers the shopper-facing order endpoints.
func SetupOrderRoutes(r *gin.Engine, db *gorm.DB, pub events.Publisher) {
	orders := r.Group("/orders")
	orders.Use(middleware.OptionalToken)
	{
		orders.POST("", orderControllers.PlaceOrderHandler(db, pub))
		orders.GET("", orderControllers.ListOrdersHandler(db))
		orders.GET("/:id", orderControllers.GetOrderHandler(db))
	}
}
