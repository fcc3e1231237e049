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

// SetupShopRoutes registers the public catalog plus the JWT-scoped cart,
// checkout, and profile endpoints. Guests and users share the same cart
// routes; the token decides whose cart it is.
func SetupShopRoutes(r *gin.Engine, db *gorm.DB) {
	// ──────────────── Public catalog ────────────────
	r.GET("/products", productController.GetProducts(db))
	r.GET("/products/:id", productController.GetProductByID(db))
	r.GET("/categories", productController.GetCategories(db))

	// ──────────────── Identity-scoped ────────────────
	shop := r.Group("/")
	shop.Use(middleware.ValidateToken)
	{
		cartGroup := shop.Group("/cart")
		{
			cartGroup.GET("", cartControllers.GetCart(db))
			cartGroup.POST("/items", cartControllers.AddCartItem(db))
			cartGroup.PUT("/items/:id", cartControllers.UpdateCartItem(db))
			cartGroup.DELETE("/items/:id", cartControllers.DeleteCartItem(db))
			cartGroup.DELETE("", cartControllers.ClearCart(db))
			cartGroup.POST("/checkout", orderControllers.CheckoutHandler(db))
		}

		shop.POST("/buy-now", orderControllers.BuyNowHandler(db))
		shop.GET("/recommendations", productController.GetRecommendations(db))

		userGroup := shop.Group("/user")
		{
			userGroup.GET("/profile", userControllers.GetProfile(db))
			userGroup.PUT("/profile", userControllers.UpdateProfile(db))
			userGroup.GET("/purchases", orderControllers.GetOwnPurchases(db))
		}
	}
}
