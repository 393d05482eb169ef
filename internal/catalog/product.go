package catalog

// Product is an immutable catalog record. Category, brand, badge, and the
// compare-at price are optional; a nil pointer means the field is absent, not
// empty.
type Product struct {
	ID                  int64   `json:"id" gorm:"primaryKey"`
	Name                string  `json:"name" gorm:"not null"`
	PriceCents          int64   `json:"price_cents" gorm:"not null"`
	CompareAtPriceCents *int64  `json:"compare_at_price_cents,omitempty"`
	Rating              float64 `json:"rating" gorm:"not null;default:0"`
	ReviewCount         int64   `json:"review_count" gorm:"not null;default:0"`
	Image               string  `json:"image" gorm:"not null;default:''"`
	Badge               *string `json:"badge,omitempty"`
	IsNew               bool    `json:"is_new" gorm:"not null;default:false"`
	Category            *string `json:"category,omitempty"`
	Brand               *string `json:"brand,omitempty"`
}

// TableName keeps the gorm table name aligned with the migration.
func (Product) TableName() string {
	return "products"
}

// OnSale reports whether the product carries a compare-at price. The
// compare-at price is only ever present when it is at least the current price.
func (p Product) OnSale() bool {
	return p.CompareAtPriceCents != nil
}
