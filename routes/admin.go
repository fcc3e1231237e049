package routes

import (
	cartControllers "github.com/Mamba6389/Kassua-marketplace/controllers/cart"
	orderControllers "github.com/Mamba6389/Kassua-marketplace/controllers/order"
	productController "github.com/Mamba6389/Kassua-marketplace/controllers/product"
	userControllers "github.com/Mamba6389/Kassua-marketplace/controllers/user"
	"github.com/Mamba6389/Kassua-marketplace/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Requires API-key
// middleware.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey)
	{
		// ─────────── User Management ───────────
		adminGroup.GET("/users", userControllers.GetAllUsers(db))
		adminGroup.DELETE("/users/:username", userControllers.DeleteUser(db))
		adminGroup.GET("/user-cart/:owner_id", cartControllers.GetOwnerCart(db))

		// ─────────── Product Management ───────────
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.POST("", productController.CreateProduct(db))
			productAdmin.PUT("/:id", productController.UpdateProduct(db))
			productAdmin.DELETE("/:id", productController.DeleteProduct(db))
			productAdmin.POST("/import-excel", productController.ImportProductsFromExcel(db))
			productAdmin.GET("/export-excel", productController.ExportProductsToExcel(db))
		}

		// ─────────── Purchase Log ───────────
		purchaseAdmin := adminGroup.Group("/purchases")
		{
			purchaseAdmin.GET("", orderControllers.GetAllPurchases(db))
			purchaseAdmin.GET("/ws", orderControllers.PurchaseFeedHandler)
			purchaseAdmin.DELETE("/:id", orderControllers.DeletePurchase(db))
			purchaseAdmin.DELETE("", orderControllers.PurgePurchases(db))
		}
	}
}
