package routes

import (
	"github.com/Mamba6389/Kassua-marketplace/mailer"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry-point that wires up the Auth, Shop, and
// Admin route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, m *mailer.Mailer) {
	// Public auth routes (no middleware)
	SetupAuthRoutes(r, db, m)

	// Catalog, cart, and checkout (JWT-protected where it matters)
	SetupShopRoutes(r, db)

	// Admin routes (API-key-protected)
	SetupAdminRoutes(r, db)
}
