package routes

import (
	adminController "github.com/Hassanfedawy/dr.mano/controllers/admin"
	orderControllers "github.com/Hassanfedawy/dr.mano/controllers/order"
	productController "github.com/Hassanfedawy/dr.mano/controllers/product"
	"github.com/Hassanfedawy/dr.mano/events"
	"github.com/Hassanfedawy/dr.mano/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Requires an admin
// session token.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB, pub events.Publisher) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateToken, middleware.RequireAdmin)
	{
		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.GET("", orderControllers.GetAllOrdersHandler(db))
			orderAdmin.GET("/:id", orderControllers.AdminGetOrderHandler(db))
			orderAdmin.PATCH("/:id", orderControllers.UpdateOrderStatusHandler(db, pub))
			orderAdmin.DELETE("/:id", orderControllers.DeleteOrderHandler(db))
		}

		userAdmin := adminGroup.Group("/users")
		{
			userAdmin.GET("", adminController.GetAllUsers(db))
			userAdmin.PUT("/:id", adminController.UpdateUser(db))
			userAdmin.DELETE("/:id", adminController.DeleteUser(db))
		}

		adminGroup.GET("/stats", adminController.GetStats(db))
		adminGroup.GET("/products/export-excel", productController.ExportProductsToExcel(db))
	}

	// Registered outside the main group: the websocket handshake cannot carry
	// an Authorization header from a browser, so the token may come in the URL.
	wsFeed := r.Group("/admin/orders")
	wsFeed.Use(middleware.ValidateTokenQuery, middleware.RequireAdmin)
	wsFeed.GET("/ws", orderControllers.OrderWebSocketHandler)
}
