package cartControllers

import (
	"fmt"
	"strings"
	"testing"

	"github.com/Mamba6389/Kassua-marketplace/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.GuestUser{},
		&models.Category{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Purchase{},
	))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name, seller string, price float64) models.Product {
	t.Helper()
	product := models.Product{
		Name:          name,
		City:          "Niamey",
		Price:         price,
		ListedDate:    "2024-11-01",
		CategoryID:    "fruits_legumes",
		SellerName:    seller,
		SellerContact: "+22790000000",
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func TestAddItem_SameProductSellerMergesQuantity(t *testing.T) {
	db := newTestDB(t)
	pomme := seedProduct(t, db, "Pomme", "Vendeur_1", 500)

	_, err := AddItem(db, "alice", AddItemInput{ProductID: pomme.ID, Quantity: 1})
	require.NoError(t, err)
	_, err = AddItem(db, "alice", AddItemInput{ProductID: pomme.ID, Quantity: 1})
	require.NoError(t, err)

	items, err := GetItems(db, "alice")
	require.NoError(t, err)
	require.Len(t, items, 1, "same (product, seller) must merge, not duplicate")
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "Pomme", items[0].ProductName)
	assert.Equal(t, 500.0, items[0].Price)
}

func TestAddItem_DifferentSellersStaySeparate(t *testing.T) {
	db := newTestDB(t)
	p1 := seedProduct(t, db, "Pomme", "Vendeur_1", 500)
	p2 := seedProduct(t, db, "Pomme", "Vendeur_2", 600)

	_, err := AddItem(db, "alice", AddItemInput{ProductID: p1.ID})
	require.NoError(t, err)
	_, err = AddItem(db, "alice", AddItemInput{ProductID: p2.ID})
	require.NoError(t, err)

	items, err := GetItems(db, "alice")
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestAddItem_QuantityDefaultsToOne(t *testing.T) {
	db := newTestDB(t)
	pomme := seedProduct(t, db, "Pomme", "Vendeur_1", 500)

	item, err := AddItem(db, "alice", AddItemInput{ProductID: pomme.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, item.Quantity)
}

func TestAddItem_MissingOptionalFieldsGetPlaceholder(t *testing.T) {
	db := newTestDB(t)
	product := models.Product{Name: "Yazi", Price: 300, CategoryID: "epicerie"}
	require.NoError(t, db.Create(&product).Error)

	item, err := AddItem(db, "alice", AddItemInput{ProductID: product.ID})
	require.NoError(t, err)
	assert.Equal(t, models.Placeholder, item.SellerName)
	assert.Equal(t, models.Placeholder, item.SellerContact)
	assert.Equal(t, models.Placeholder, item.City)
}

func TestAddItem_UnknownProduct(t *testing.T) {
	db := newTestDB(t)
	_, err := AddItem(db, "alice", AddItemInput{ProductID: 42})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestUpdateQuantity_RejectsNonPositive(t *testing.T) {
	db := newTestDB(t)
	pomme := seedProduct(t, db, "Pomme", "Vendeur_1", 500)
	item, err := AddItem(db, "alice", AddItemInput{ProductID: pomme.ID, Quantity: 3})
	require.NoError(t, err)

	for _, qty := range []int{0, -1} {
		_, err := UpdateQuantity(db, "alice", item.ID, qty)
		assert.ErrorIs(t, err, models.ErrInvalidQuantity)
	}

	// A failed update must leave the cart untouched.
	items, err := GetItems(db, "alice")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestUpdateQuantity_ReplacesValue(t *testing.T) {
	db := newTestDB(t)
	pomme := seedProduct(t, db, "Pomme", "Vendeur_1", 500)
	item, err := AddItem(db, "alice", AddItemInput{ProductID: pomme.ID})
	require.NoError(t, err)

	updated, err := UpdateQuantity(db, "alice", item.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, updated.Quantity)
}

func TestUpdateQuantity_UnknownItem(t *testing.T) {
	db := newTestDB(t)
	pomme := seedProduct(t, db, "Pomme", "Vendeur_1", 500)
	_, err := AddItem(db, "alice", AddItemInput{ProductID: pomme.ID})
	require.NoError(t, err)

	_, err = UpdateQuantity(db, "alice", 9999, 2)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestUpdateQuantity_ForeignCartItem(t *testing.T) {
	db := newTestDB(t)
	pomme := seedProduct(t, db, "Pomme", "Vendeur_1", 500)
	item, err := AddItem(db, "alice", AddItemInput{ProductID: pomme.ID})
	require.NoError(t, err)
	_, err = AddItem(db, "bob", AddItemInput{ProductID: pomme.ID})
	require.NoError(t, err)

	// bob must not be able to touch alice's line item
	_, err = UpdateQuantity(db, "bob", item.ID, 5)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestRemoveItem(t *testing.T) {
	db := newTestDB(t)
	pomme := seedProduct(t, db, "Pomme", "Vendeur_1", 500)
	banane := seedProduct(t, db, "Banane", "Vendeur_2", 200)

	item, err := AddItem(db, "alice", AddItemInput{ProductID: pomme.ID})
	require.NoError(t, err)
	_, err = AddItem(db, "alice", AddItemInput{ProductID: banane.ID})
	require.NoError(t, err)

	require.NoError(t, RemoveItem(db, "alice", item.ID))

	items, err := GetItems(db, "alice")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Banane", items[0].ProductName)
}

func TestRemoveItem_UnknownItem(t *testing.T) {
	db := newTestDB(t)
	pomme := seedProduct(t, db, "Pomme", "Vendeur_1", 500)
	_, err := AddItem(db, "alice", AddItemInput{ProductID: pomme.ID})
	require.NoError(t, err)

	assert.ErrorIs(t, RemoveItem(db, "alice", 9999), models.ErrNotFound)
}

func TestClear(t *testing.T) {
	db := newTestDB(t)
	pomme := seedProduct(t, db, "Pomme", "Vendeur_1", 500)
	_, err := AddItem(db, "alice", AddItemInput{ProductID: pomme.ID, Quantity: 4})
	require.NoError(t, err)

	require.NoError(t, Clear(db, "alice"))

	items, err := GetItems(db, "alice")
	require.NoError(t, err)
	assert.Empty(t, items)

	// Clearing an identity that never had a cart is fine too.
	require.NoError(t, Clear(db, "nobody"))
}

func TestMergeCarts_PromotesGuestItems(t *testing.T) {
	db := newTestDB(t)
	pomme := seedProduct(t, db, "Pomme", "Vendeur_1", 500)
	banane := seedProduct(t, db, "Banane", "Vendeur_2", 200)
	lait := seedProduct(t, db, "Lait", "Vendeur_3", 800)

	// user already has one item, guest brings two different ones
	_, err := AddItem(db, "alice", AddItemInput{ProductID: lait.ID})
	require.NoError(t, err)
	_, err = AddItem(db, "guest_abc", AddItemInput{ProductID: pomme.ID})
	require.NoError(t, err)
	_, err = AddItem(db, "guest_abc", AddItemInput{ProductID: banane.ID})
	require.NoError(t, err)

	require.NoError(t, MergeCarts(db, "guest_abc", "alice"))

	items, err := GetItems(db, "alice")
	require.NoError(t, err)
	assert.Len(t, items, 3)

	guestItems, err := GetItems(db, "guest_abc")
	require.NoError(t, err)
	assert.Empty(t, guestItems, "guest cart must be emptied by the merge")

	var guestCarts int64
	require.NoError(t, db.Model(&models.Cart{}).Where("owner_id = ?", "guest_abc").Count(&guestCarts).Error)
	assert.Zero(t, guestCarts)
}

func TestMergeCarts_SumsOverlappingLines(t *testing.T) {
	db := newTestDB(t)
	pomme := seedProduct(t, db, "Pomme", "Vendeur_1", 500)

	_, err := AddItem(db, "alice", AddItemInput{ProductID: pomme.ID, Quantity: 2})
	require.NoError(t, err)
	_, err = AddItem(db, "guest_abc", AddItemInput{ProductID: pomme.ID, Quantity: 3})
	require.NoError(t, err)

	require.NoError(t, MergeCarts(db, "guest_abc", "alice"))

	items, err := GetItems(db, "alice")
	require.NoError(t, err)
	require.Len(t, items, 1, "overlapping (product, seller) lines must merge")
	assert.Equal(t, 5, items[0].Quantity)
}

func TestMergeCarts_NoGuestCart(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, MergeCarts(db, "guest_missing", "alice"))
}
