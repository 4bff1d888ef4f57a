package routes

import (
	profileController "github.com/Hassanfedawy/dr.mano/controllers/profile"
	"github.com/Hassanfedawy/dr.mano/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupProfileRoutes registers the signed-in shopper's account endpoints.
func SetupProfileRoutes(r *gin.Engine, db *gorm.DB) {
	profileGroup := r.Group("/profile")
	profileGroup.Use(middleware.ValidateToken)
	{
		profileGroup.GET("", profileController.GetProfile(db))
		profileGroup.PUT("", profileController.UpdateProfile(db))
		profileGroup.PUT("/password", profileController.UpdatePassword(db))
	}
}
