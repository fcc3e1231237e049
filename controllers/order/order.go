package orderControllers

import (
	"errors"
	"fmt"
	"time"

	"github.com/Mamba6389/Kassua-marketplace/models"
	"gorm.io/gorm"
)

// buyerLabel names the purchase owner; a blank identity is recorded under
// the anonymous placeholder.
func buyerLabel(identity string) string {
	if identity == "" {
		return models.AnonymousBuyer
	}
	return identity
}

// Checkout turns every line item of the owner's cart into one Purchase and
// empties the cart, all inside a single transaction: either all purchases
// are recorded and the cart is cleared, or nothing changed. Checking out an
// empty (or missing) cart records nothing and is not an error.
func Checkout(db *gorm.DB, owner string) ([]models.Purchase, error) {
	var purchases []models.Purchase
	err := db.Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		err := tx.Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).Where("owner_id = ?", owner).First(&cart).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: fetch cart: %v", models.ErrPersistence, err)
		}

		now := time.Now()
		for _, item := range cart.Items {
			purchase := models.Purchase{
				ProductName:   item.ProductName,
				Price:         item.Price,
				SellerName:    item.SellerName,
				SellerContact: item.SellerContact,
				CategoryID:    item.CategoryID,
				Buyer:         buyerLabel(owner),
				PurchasedAt:   now,
			}
			if err := tx.Create(&purchase).Error; err != nil {
				return fmt.Errorf("%w: record purchase: %v", models.ErrPersistence, err)
			}
			purchases = append(purchases, purchase)
		}

		if err := tx.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error; err != nil {
			return fmt.Errorf("%w: clear cart: %v", models.ErrPersistence, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return purchases, nil
}

// BuyNow records one Purchase straight from a catalog listing, bypassing
// the cart entirely.
func BuyNow(db *gorm.DB, identity string, productID uint) (*models.Purchase, error) {
	var product models.Product
	if err := db.First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", models.ErrNotFound, productID)
		}
		return nil, fmt.Errorf("%w: fetch product: %v", models.ErrPersistence, err)
	}

	purchase := models.Purchase{
		ProductName:   product.Name,
		Price:         product.Price,
		SellerName:    sellerOrPlaceholder(product.SellerName),
		SellerContact: sellerOrPlaceholder(product.SellerContact),
		CategoryID:    product.CategoryID,
		Buyer:         buyerLabel(identity),
		PurchasedAt:   time.Now(),
	}
	if err := db.Create(&purchase).Error; err != nil {
		return nil, fmt.Errorf("%w: record purchase: %v", models.ErrPersistence, err)
	}
	return &purchase, nil
}

func sellerOrPlaceholder(s string) string {
	if s == "" {
		return models.Placeholder
	}
	return s
}
