package models

import "time"

// Placeholder fills optional item fields the seller never provided.
const Placeholder = "—"

// Cart holds the line items of a single identity. OwnerID is either a
// username or a guest session id; the cart layer never distinguishes them.
type Cart struct {
	CartID    uint       `gorm:"primaryKey" json:"cart_id"`
	OwnerID   string     `gorm:"uniqueIndex;not null" json:"owner_id"` // one cart per identity
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartItem denormalizes the catalog fields at add time so the cart keeps
// the price the buyer saw. At most one item per (cart, product, seller);
// adding the same pair again sums quantities instead.
type CartItem struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	CartID        uint      `gorm:"index" json:"cart_id"`
	ProductID     uint      `json:"product_id"`
	ProductName   string    `gorm:"not null" json:"product_name"`
	Price         float64   `json:"price"`
	SellerName    string    `json:"seller_name"`
	SellerContact string    `json:"seller_contact"`
	CategoryID    string    `json:"category_id"`
	City          string    `json:"city"`
	ListedDate    string    `json:"listed_date"`
	Quantity      int       `gorm:"default:1" json:"quantity"`
	AddedAt       time.Time `json:"added_at"`
}
