package models

import "time"

type Product struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string    `gorm:"not null;index" json:"name"`
	City          string    `json:"city"`
	Price         float64   `gorm:"not null" json:"price"` // FCFA, unit price
	ListedDate    string    `json:"listed_date"`           // YYYY-MM-DD
	CategoryID    string    `gorm:"index" json:"category_id"`
	SellerName    string    `json:"seller_name"`
	SellerContact string    `json:"seller_contact"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
