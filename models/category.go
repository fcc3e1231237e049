package models

type Category struct {
	ID   string `gorm:"primaryKey" json:"id"`
	Name string `gorm:"unique;not null" json:"name"`
}

// DefaultCategories is the fixed marketplace taxonomy, seeded at startup.
var DefaultCategories = []Category{
	{ID: "fruits_legumes", Name: "Fruits & Légumes"},
	{ID: "viandes_poissons", Name: "Viandes & Poissons"},
	{ID: "produits_laitiers", Name: "Produits Laitiers"},
	{ID: "epicerie", Name: "Épicerie"},
	{ID: "boulangerie", Name: "Boulangerie"},
	{ID: "boissons", Name: "Boissons"},
}
