package orderControllers

import (
	"errors"
	"net/http"

	"github.com/Mamba6389/Kassua-marketplace/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type BuyNowInput struct {
	ProductID uint `json:"product_id" binding:"required"`
}

func identityFrom(c *gin.Context) (string, bool) {
	v, exists := c.Get("identity")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return v.(string), true
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// POST /cart/checkout
func CheckoutHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, ok := identityFrom(c)
		if !ok {
			return
		}
		purchases, err := Checkout(db, owner)
		if err != nil {
			respondError(c, err)
			return
		}
		for _, p := range purchases {
			broadcastPurchase(p)
		}
		c.JSON(http.StatusOK, gin.H{
			"message":   "Checkout completed",
			"purchases": purchases,
			"count":     len(purchases),
		})
	}
}

// POST /buy-now
func BuyNowHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, ok := identityFrom(c)
		if !ok {
			return
		}
		var input BuyNowInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		purchase, err := BuyNow(db, owner, input.ProductID)
		if err != nil {
			respondError(c, err)
			return
		}
		broadcastPurchase(*purchase)
		c.JSON(http.StatusCreated, purchase)
	}
}

// GET /user/purchases
func GetOwnPurchases(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, ok := identityFrom(c)
		if !ok {
			return
		}
		var purchases []models.Purchase
		if err := db.Where("buyer = ?", owner).
			Order("purchased_at DESC").
			Find(&purchases).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch purchases"})
			return
		}
		c.JSON(http.StatusOK, purchases)
	}
}

// GET /admin/purchases
func GetAllPurchases(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var purchases []models.Purchase
		if err := db.Order("purchased_at DESC").Find(&purchases).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch purchases"})
			return
		}
		c.JSON(http.StatusOK, purchases)
	}
}

// DELETE /admin/purchases/:id
func DeletePurchase(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		res := db.Where("id = ?", id).Delete(&models.Purchase{})
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete purchase"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Purchase not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Purchase deleted"})
	}
}

// DELETE /admin/purchases
func PurgePurchases(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Where("1 = 1").Delete(&models.Purchase{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to purge purchases"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "All purchases deleted"})
	}
}
