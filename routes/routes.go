package routes

import (
	"github.com/Hassanfedawy/dr.mano/events"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry-point that wires up the public, shopper and
// admin route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, pub events.Publisher) {
	SetupAuthRoutes(r, db)
	SetupProfileRoutes(r, db)
	SetupCatalogRoutes(r, db)
	SetupCartRoutes(r, db)
	SetupOrderRoutes(r, db, pub)
	SetupAdminRoutes(r, db, pub)
}
