// Package importer replays a legacy MySQL dump of the marketplace into the
// current schema. Statements are parsed with a real SQL parser; anything
// that is not an INSERT into one of the four legacy tables is skipped.
package importer

import (
	"fmt"
	"time"

	"github.com/Mamba6389/Kassua-marketplace/models"
	"github.com/spf13/cast"
	"github.com/xwb1989/sqlparser"
	"gorm.io/gorm"
)

// Legacy column order, as produced by the original MySQL dump:
//
//	users:     id, username, email, password, created_at, reset_token, reset_expires, is_admin
//	products:  id, produit, ville, prix, date, categorie, vendeur, contact
//	purchases: id, produit, prix, vendeur, contact, categorie, date_achat, acheteur
//	carts:     id, username, produit, prix, vendeur, contact, categorie, ville, date, quantity

// LegacyCartRow is one flat cart row from the dump; Replay regroups these
// into Cart + CartItem records per owner.
type LegacyCartRow struct {
	Username      string
	ProductName   string
	Price         float64
	SellerName    string
	SellerContact string
	CategoryID    string
	City          string
	ListedDate    string
	Quantity      int
}

type Dump struct {
	Users     []models.User
	Products  []models.Product
	Purchases []models.Purchase
	CartRows  []LegacyCartRow
}

// ParseDump extracts the INSERT payloads of the four legacy tables.
func ParseDump(sql string) (*Dump, error) {
	pieces, err := sqlparser.SplitStatementToPieces(sql)
	if err != nil {
		return nil, fmt.Errorf("split dump: %w", err)
	}

	dump := &Dump{}
	for _, piece := range pieces {
		stmt, err := sqlparser.Parse(piece)
		if err != nil {
			// DDL and dump header noise; only INSERTs matter here.
			continue
		}
		ins, ok := stmt.(*sqlparser.Insert)
		if !ok {
			continue
		}
		rows, ok := ins.Rows.(sqlparser.Values)
		if !ok {
			continue
		}

		table := ins.Table.Name.String()
		for _, tuple := range rows {
			vals := tupleStrings(tuple)
			switch table {
			case "users":
				if u, ok := mapUser(vals); ok {
					dump.Users = append(dump.Users, u)
				}
			case "products":
				if p, ok := mapProduct(vals); ok {
					dump.Products = append(dump.Products, p)
				}
			case "purchases":
				if p, ok := mapPurchase(vals); ok {
					dump.Purchases = append(dump.Purchases, p)
				}
			case "carts":
				if r, ok := mapCartRow(vals); ok {
					dump.CartRows = append(dump.CartRows, r)
				}
			}
		}
	}
	return dump, nil
}

func tupleStrings(tuple sqlparser.ValTuple) []string {
	out := make([]string, 0, len(tuple))
	for _, expr := range tuple {
		switch v := expr.(type) {
		case *sqlparser.SQLVal:
			out = append(out, string(v.Val))
		case *sqlparser.NullVal:
			out = append(out, "")
		default:
			out = append(out, "")
		}
	}
	return out
}

func mapUser(vals []string) (models.User, bool) {
	if len(vals) != 8 || vals[1] == "" {
		return models.User{}, false
	}
	user := models.User{
		Username: vals[1],
		Email:    vals[2],
		// Legacy SHA-256 hashes verify against nothing here; imported
		// accounts go through password reset before first login.
		PasswordHash: vals[3],
		CreatedAt:    parseLegacyTime(vals[4]),
		IsAdmin:      cast.ToBool(vals[7]),
	}
	if vals[5] != "" {
		token := vals[5]
		user.ResetToken = &token
	}
	if vals[6] != "" {
		if t := parseLegacyTime(vals[6]); !t.IsZero() {
			user.ResetExpires = &t
		}
	}
	return user, true
}

func mapProduct(vals []string) (models.Product, bool) {
	if len(vals) != 8 || vals[1] == "" {
		return models.Product{}, false
	}
	return models.Product{
		Name:          vals[1],
		City:          vals[2],
		Price:         cast.ToFloat64(vals[3]),
		ListedDate:    vals[4],
		CategoryID:    vals[5],
		SellerName:    vals[6],
		SellerContact: vals[7],
	}, true
}

func mapPurchase(vals []string) (models.Purchase, bool) {
	if len(vals) != 8 || vals[1] == "" {
		return models.Purchase{}, false
	}
	return models.Purchase{
		ProductName:   vals[1],
		Price:         cast.ToFloat64(vals[2]),
		SellerName:    vals[3],
		SellerContact: vals[4],
		CategoryID:    vals[5],
		PurchasedAt:   parseLegacyTime(vals[6]),
		Buyer:         vals[7],
	}, true
}

func mapCartRow(vals []string) (LegacyCartRow, bool) {
	if len(vals) != 10 || vals[1] == "" || vals[2] == "" {
		return LegacyCartRow{}, false
	}
	qty := cast.ToInt(vals[9])
	if qty < 1 {
		qty = 1
	}
	return LegacyCartRow{
		Username:      vals[1],
		ProductName:   vals[2],
		Price:         cast.ToFloat64(vals[3]),
		SellerName:    vals[4],
		SellerContact: vals[5],
		CategoryID:    vals[6],
		City:          vals[7],
		ListedDate:    vals[8],
		Quantity:      qty,
	}, true
}

var legacyTimeLayouts = []string{
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05.999999",
	time.RFC3339,
	"2006-01-02",
}

func parseLegacyTime(s string) time.Time {
	for _, layout := range legacyTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Replay inserts the dump into the live schema, one transaction per table,
// regrouping flat cart rows into one cart per owner.
func Replay(db *gorm.DB, dump *Dump) error {
	if len(dump.Users) > 0 {
		if err := db.Transaction(func(tx *gorm.DB) error {
			return tx.Create(&dump.Users).Error
		}); err != nil {
			return fmt.Errorf("%w: import users: %v", models.ErrPersistence, err)
		}
	}
	if len(dump.Products) > 0 {
		if err := db.Transaction(func(tx *gorm.DB) error {
			return tx.Create(&dump.Products).Error
		}); err != nil {
			return fmt.Errorf("%w: import products: %v", models.ErrPersistence, err)
		}
	}
	if len(dump.Purchases) > 0 {
		if err := db.Transaction(func(tx *gorm.DB) error {
			return tx.Create(&dump.Purchases).Error
		}); err != nil {
			return fmt.Errorf("%w: import purchases: %v", models.ErrPersistence, err)
		}
	}

	if len(dump.CartRows) > 0 {
		if err := db.Transaction(func(tx *gorm.DB) error {
			carts := make(map[string]uint)
			for _, row := range dump.CartRows {
				cartID, ok := carts[row.Username]
				if !ok {
					cart := models.Cart{OwnerID: row.Username}
					if err := tx.Create(&cart).Error; err != nil {
						return err
					}
					cartID = cart.CartID
					carts[row.Username] = cartID
				}
				item := models.CartItem{
					CartID:        cartID,
					ProductName:   row.ProductName,
					Price:         row.Price,
					SellerName:    row.SellerName,
					SellerContact: row.SellerContact,
					CategoryID:    row.CategoryID,
					City:          row.City,
					ListedDate:    row.ListedDate,
					Quantity:      row.Quantity,
					AddedAt:       time.Now(),
				}
				if err := tx.Create(&item).Error; err != nil {
					return err
				}
			}
			return nil
		}); err != nil {
			return fmt.Errorf("%w: import carts: %v", models.ErrPersistence, err)
		}
	}
	return nil
}
