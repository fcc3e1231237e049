package cartControllers

import (
	"errors"
	"fmt"
	"time"

	"github.com/Mamba6389/Kassua-marketplace/models"
	"gorm.io/gorm"
)

type AddItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

type UpdateQuantityInput struct {
	Quantity int `json:"quantity" binding:"required"`
}

// findOrCreateCart returns the owner's cart, creating it on first use.
func findOrCreateCart(tx *gorm.DB, owner string) (*models.Cart, error) {
	var cart models.Cart
	err := tx.Where("owner_id = ?", owner).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{OwnerID: owner}
		if err := tx.Create(&cart).Error; err != nil {
			return nil, fmt.Errorf("%w: create cart: %v", models.ErrPersistence, err)
		}
		return &cart, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: fetch cart: %v", models.ErrPersistence, err)
	}
	return &cart, nil
}

func orPlaceholder(s string) string {
	if s == "" {
		return models.Placeholder
	}
	return s
}

// AddItem puts a catalog product into the owner's cart. If an item with the
// same (product_name, seller_name) is already there, quantities are summed
// instead of inserting a second line. Quantity defaults to 1. The whole
// read-modify-write runs in one transaction keyed by the owner's cart, so
// two sessions adding concurrently cannot lose each other's writes.
func AddItem(db *gorm.DB, owner string, input AddItemInput) (*models.CartItem, error) {
	if input.Quantity < 1 {
		input.Quantity = 1
	}

	var product models.Product
	if err := db.First(&product, "id = ?", input.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", models.ErrNotFound, input.ProductID)
		}
		return nil, fmt.Errorf("%w: fetch product: %v", models.ErrPersistence, err)
	}

	var out models.CartItem
	err := db.Transaction(func(tx *gorm.DB) error {
		cart, err := findOrCreateCart(tx, owner)
		if err != nil {
			return err
		}

		var item models.CartItem
		err = tx.Where("cart_id = ? AND product_name = ? AND seller_name = ?",
			cart.CartID, product.Name, orPlaceholder(product.SellerName)).
			First(&item).Error
		switch {
		case err == nil:
			item.Quantity += input.Quantity
			item.AddedAt = time.Now()
			if err := tx.Save(&item).Error; err != nil {
				return fmt.Errorf("%w: update item: %v", models.ErrPersistence, err)
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			item = models.CartItem{
				CartID:        cart.CartID,
				ProductID:     product.ID,
				ProductName:   product.Name,
				Price:         product.Price,
				SellerName:    orPlaceholder(product.SellerName),
				SellerContact: orPlaceholder(product.SellerContact),
				CategoryID:    product.CategoryID,
				City:          orPlaceholder(product.City),
				ListedDate:    product.ListedDate,
				Quantity:      input.Quantity,
				AddedAt:       time.Now(),
			}
			if err := tx.Create(&item).Error; err != nil {
				return fmt.Errorf("%w: insert item: %v", models.ErrPersistence, err)
			}
		default:
			return fmt.Errorf("%w: fetch item: %v", models.ErrPersistence, err)
		}
		out = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateQuantity replaces the stored quantity of one line item. Quantities
// below 1 are rejected before anything is touched.
func UpdateQuantity(db *gorm.DB, owner string, itemID uint, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: got %d", models.ErrInvalidQuantity, quantity)
	}

	var out models.CartItem
	err := db.Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.Where("owner_id = ?", owner).First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: cart for %s", models.ErrNotFound, owner)
			}
			return fmt.Errorf("%w: fetch cart: %v", models.ErrPersistence, err)
		}

		var item models.CartItem
		if err := tx.Where("id = ? AND cart_id = ?", itemID, cart.CartID).First(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: cart item %d", models.ErrNotFound, itemID)
			}
			return fmt.Errorf("%w: fetch item: %v", models.ErrPersistence, err)
		}

		item.Quantity = quantity
		if err := tx.Save(&item).Error; err != nil {
			return fmt.Errorf("%w: update item: %v", models.ErrPersistence, err)
		}
		out = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// RemoveItem deletes one line item from the owner's cart.
func RemoveItem(db *gorm.DB, owner string, itemID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.Where("owner_id = ?", owner).First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: cart for %s", models.ErrNotFound, owner)
			}
			return fmt.Errorf("%w: fetch cart: %v", models.ErrPersistence, err)
		}

		res := tx.Where("id = ? AND cart_id = ?", itemID, cart.CartID).Delete(&models.CartItem{})
		if res.Error != nil {
			return fmt.Errorf("%w: delete item: %v", models.ErrPersistence, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: cart item %d", models.ErrNotFound, itemID)
		}
		return nil
	})
}

// Clear empties the owner's cart. A missing cart is already empty.
func Clear(db *gorm.DB, owner string) error {
	var cart models.Cart
	if err := db.Where("owner_id = ?", owner).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("%w: fetch cart: %v", models.ErrPersistence, err)
	}
	if err := db.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error; err != nil {
		return fmt.Errorf("%w: clear cart: %v", models.ErrPersistence, err)
	}
	return nil
}

// GetItems returns the owner's current line items, oldest first.
func GetItems(db *gorm.DB, owner string) ([]models.CartItem, error) {
	var cart models.Cart
	if err := db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	}).Where("owner_id = ?", owner).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []models.CartItem{}, nil
		}
		return nil, fmt.Errorf("%w: fetch cart: %v", models.ErrPersistence, err)
	}
	return cart.Items, nil
}

// MergeCarts promotes a guest cart into the user's cart at login. Items are
// merged by (product_name, seller_name) with summed quantities, the same
// policy AddItem applies, then the guest cart is deleted. Everything happens
// in one transaction: a failure leaves both carts as they were.
func MergeCarts(db *gorm.DB, guestID, username string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var guestCart models.Cart
		err := tx.Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).Where("owner_id = ?", guestID).First(&guestCart).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil // nothing to promote
		}
		if err != nil {
			return fmt.Errorf("%w: fetch guest cart: %v", models.ErrPersistence, err)
		}

		userCart, err := findOrCreateCart(tx, username)
		if err != nil {
			return err
		}

		for _, gi := range guestCart.Items {
			var existing models.CartItem
			err := tx.Where("cart_id = ? AND product_name = ? AND seller_name = ?",
				userCart.CartID, gi.ProductName, gi.SellerName).
				First(&existing).Error
			switch {
			case err == nil:
				existing.Quantity += gi.Quantity
				existing.AddedAt = time.Now()
				if err := tx.Save(&existing).Error; err != nil {
					return fmt.Errorf("%w: merge item: %v", models.ErrPersistence, err)
				}
			case errors.Is(err, gorm.ErrRecordNotFound):
				moved := gi
				moved.ID = 0
				moved.CartID = userCart.CartID
				if err := tx.Create(&moved).Error; err != nil {
					return fmt.Errorf("%w: move item: %v", models.ErrPersistence, err)
				}
			default:
				return fmt.Errorf("%w: fetch item: %v", models.ErrPersistence, err)
			}
		}

		if err := tx.Where("cart_id = ?", guestCart.CartID).Delete(&models.CartItem{}).Error; err != nil {
			return fmt.Errorf("%w: clear guest cart: %v", models.ErrPersistence, err)
		}
		if err := tx.Delete(&guestCart).Error; err != nil {
			return fmt.Errorf("%w: drop guest cart: %v", models.ErrPersistence, err)
		}
		return nil
	})
}
