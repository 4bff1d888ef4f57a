package routes

import (
	"github.com/Hassanfedawy/dr.mano/auth"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupAuthRoutes registers all "/auth/*" endpoints.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/signup", auth.Signup(db))
		authGroup.POST("/signin", auth.Signin(db))
	}
}
