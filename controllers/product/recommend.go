package productController

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"

	"github.com/Mamba6389/Kassua-marketplace/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const defaultRecommendationLimit = 5

// RecommendForUser ranks the buyer's categories by purchase count and
// surfaces catalog products from those categories the buyer has not bought
// yet, walking the catalog in id order. When the buyer has no history, or
// the preferred categories run dry before the limit is reached, the gap is
// filled with the global best-selling product names. Deterministic for a
// fixed purchases/catalog snapshot; ties keep first-seen order.
func RecommendForUser(db *gorm.DB, username string, limit int) ([]models.Product, error) {
	if limit <= 0 {
		limit = defaultRecommendationLimit
	}

	var catalog []models.Product
	if err := db.Order("id ASC").Find(&catalog).Error; err != nil {
		return nil, fmt.Errorf("%w: fetch catalog: %v", models.ErrPersistence, err)
	}
	var history []models.Purchase
	if err := db.Where("buyer = ?", username).Order("id ASC").Find(&history).Error; err != nil {
		return nil, fmt.Errorf("%w: fetch purchases: %v", models.ErrPersistence, err)
	}

	recs := make([]models.Product, 0, limit)
	seen := make(map[string]bool)

	if len(history) > 0 {
		catCount := make(map[string]int)
		var catOrder []string
		bought := make(map[string]bool)
		for _, p := range history {
			if p.CategoryID != "" {
				if catCount[p.CategoryID] == 0 {
					catOrder = append(catOrder, p.CategoryID)
				}
				catCount[p.CategoryID]++
			}
			bought[p.ProductName] = true
		}
		sort.SliceStable(catOrder, func(i, j int) bool {
			return catCount[catOrder[i]] > catCount[catOrder[j]]
		})

		for _, cat := range catOrder {
			for _, prod := range catalog {
				if len(recs) >= limit {
					return recs, nil
				}
				if prod.CategoryID == cat && !bought[prod.Name] && !seen[prod.Name] {
					recs = append(recs, prod)
					seen[prod.Name] = true
				}
			}
		}
	}

	if len(recs) < limit {
		top, err := globalTopNames(db)
		if err != nil {
			return nil, err
		}
		for _, name := range top {
			if len(recs) >= limit {
				break
			}
			if seen[name] {
				continue
			}
			for _, prod := range catalog {
				if prod.Name == name {
					recs = append(recs, prod)
					seen[name] = true
					break
				}
			}
		}
	}
	return recs, nil
}

// globalTopNames returns product names ordered by all-time purchase count,
// most popular first, ties broken by first-purchase order.
func globalTopNames(db *gorm.DB) ([]string, error) {
	var purchases []models.Purchase
	if err := db.Order("id ASC").Find(&purchases).Error; err != nil {
		return nil, fmt.Errorf("%w: fetch purchases: %v", models.ErrPersistence, err)
	}
	counts := make(map[string]int)
	var order []string
	for _, p := range purchases {
		if p.ProductName == "" {
			continue
		}
		if counts[p.ProductName] == 0 {
			order = append(order, p.ProductName)
		}
		counts[p.ProductName]++
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	return order, nil
}

// GET /recommendations
func GetRecommendations(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, exists := c.Get("identity")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		limit := defaultRecommendationLimit
		if v := c.Query("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
				return
			}
			limit = n
		}
		recs, err := RecommendForUser(db, identity.(string), limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, recs)
	}
}
