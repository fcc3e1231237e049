package models

import "time"

// AnonymousBuyer is recorded when a purchase carries no identity at all.
const AnonymousBuyer = "Anonyme"

// Purchase is an append-only record of one completed unit line. Rows are
// never mutated; only the admin purge endpoints may delete them.
type Purchase struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductName   string    `gorm:"not null" json:"product_name"`
	Price         float64   `json:"price"`
	SellerName    string    `json:"seller_name"`
	SellerContact string    `json:"seller_contact"`
	CategoryID    string    `json:"category_id"`
	Buyer         string    `gorm:"index" json:"buyer"`
	PurchasedAt   time.Time `json:"purchased_at"`
}
