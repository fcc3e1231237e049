package routes

import (
	"github.com/Mamba6389/Kassua-marketplace/auth"
	"github.com/Mamba6389/Kassua-marketplace/mailer"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupAuthRoutes registers all "/auth/*" endpoints.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB, m *mailer.Mailer) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", auth.RegisterHandler(db))
		authGroup.POST("/login", auth.LoginHandler(db))
		authGroup.POST("/guest", auth.CreateGuestUser(db))

		authGroup.POST("/reset-request", auth.ResetRequestHandler(db, m))
		authGroup.POST("/reset-confirm", auth.ResetConfirmHandler(db))
	}
}
