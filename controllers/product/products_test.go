package productController

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Mamba6389/Kassua-marketplace/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCatalogRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/products", GetProducts(db))
	r.GET("/products/:id", GetProductByID(db))
	return r
}

func listProducts(t *testing.T, r *gin.Engine, query string) []models.Product {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/products"+query, nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var out []models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestGetProducts_SearchIsCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	seedCatalogProduct(t, db, "Pomme", "fruits_legumes", 500)
	seedCatalogProduct(t, db, "Lait", "produits_laitiers", 800)
	r := newCatalogRouter(db)

	out := listProducts(t, r, "?search=POMME")
	require.Len(t, out, 1)
	assert.Equal(t, "Pomme", out[0].Name)
}

func TestGetProducts_FilterByCategoryAndPrice(t *testing.T) {
	db := newTestDB(t)
	seedCatalogProduct(t, db, "Pomme", "fruits_legumes", 500)
	seedCatalogProduct(t, db, "Banane", "fruits_legumes", 200)
	seedCatalogProduct(t, db, "Lait", "produits_laitiers", 800)
	r := newCatalogRouter(db)

	out := listProducts(t, r, "?category_id=fruits_legumes&min_price=300")
	require.Len(t, out, 1)
	assert.Equal(t, "Pomme", out[0].Name)
}

func TestGetProducts_SortByPriceAscending(t *testing.T) {
	db := newTestDB(t)
	seedCatalogProduct(t, db, "Pomme", "fruits_legumes", 500)
	seedCatalogProduct(t, db, "Banane", "fruits_legumes", 200)
	seedCatalogProduct(t, db, "Lait", "produits_laitiers", 800)
	r := newCatalogRouter(db)

	out := listProducts(t, r, "?sort_by=price&order=asc")
	require.Len(t, out, 3)
	assert.Equal(t, []string{"Banane", "Pomme", "Lait"}, productNames(out))
}

func TestGetProducts_UnknownSortColumnFallsBack(t *testing.T) {
	db := newTestDB(t)
	seedCatalogProduct(t, db, "Pomme", "fruits_legumes", 500)
	r := newCatalogRouter(db)

	// A bogus sort_by must not reach the SQL string.
	out := listProducts(t, r, "?sort_by=price%3BDROP+TABLE+products&order=asc")
	assert.Len(t, out, 1)
}

func TestGetProducts_InvalidPriceBound(t *testing.T) {
	db := newTestDB(t)
	r := newCatalogRouter(db)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/products?min_price=abc", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetProductByID_NotFound(t *testing.T) {
	db := newTestDB(t)
	r := newCatalogRouter(db)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/products/42", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
