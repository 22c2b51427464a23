package repositories

import (
	"fmt"
	"strings"
	"time"

	"gudang/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// scope is a composable query predicate.
type scope = func(*gorm.DB) *gorm.DB

// paginate limits a query to the rows of one normalized page.
func paginate(p models.Pagination) scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(p.Offset()).Limit(p.Size)
	}
}

// nameContains matches column against keyword as a case-insensitive substring.
// An empty keyword matches everything.
func nameContains(column, keyword string) scope {
	keyword = strings.TrimSpace(keyword)
	return func(db *gorm.DB) *gorm.DB {
		if keyword == "" {
			return db
		}
		return db.Where(fmt.Sprintf("LOWER(%s) LIKE ? ESCAPE '!'", column), likePattern(keyword))
	}
}

// priceBetween bounds column by the optional inclusive limits.
func priceBetween(column string, min, max *decimal.Decimal) scope {
	return func(db *gorm.DB) *gorm.DB {
		if min != nil {
			db = db.Where(column+" >= ?", *min)
		}
		if max != nil {
			db = db.Where(column+" <= ?", *max)
		}
		return db
	}
}

// timeBetween bounds column by the optional limits: from is inclusive, until
// is exclusive.
func timeBetween(column string, from, until *time.Time) scope {
	return func(db *gorm.DB) *gorm.DB {
		if from != nil {
			db = db.Where(column+" >= ?", from.UTC())
		}
		if until != nil {
			db = db.Where(column+" < ?", until.UTC())
		}
		return db
	}
}

// inStock hides products with nothing left.
func inStock(db *gorm.DB) *gorm.DB {
	return db.Where("products.quantity_in_stock > 0")
}

// likePattern lower-cases keyword and escapes the LIKE wildcards with '!'.
func likePattern(keyword string) string {
	escaped := strings.NewReplacer(`!`, `!!`, `%`, `!%`, `_`, `!_`).Replace(strings.ToLower(keyword))
	return "%" + escaped + "%"
}

// countAndFind counts the rows matched by q, then loads the requested page into dest.
// selects is applied only to the page query so Count stays a plain count(*).
// q must be a shareable session.
func countAndFind(q *gorm.DB, p models.Pagination, selects, order string, dest any) (int64, error) {
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, err
	}
	if total == 0 {
		return 0, nil
	}
	page := q.Order(order).Scopes(paginate(p))
	if selects != "" {
		page = page.Select(selects)
	}
	if err := page.Scan(dest).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// referenced reports whether a row of any of tables has column set to id.
func referenced(db *gorm.DB, id uint, column string, tables ...any) (bool, error) {
	for _, table := range tables {
		var count int64
		if err := db.Model(table).Where(column+" = ?", id).Limit(1).Count(&count).Error; err != nil {
			return false, err
		}
		if count > 0 {
			return true, nil
		}
	}
	return false, nil
}
