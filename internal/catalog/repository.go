package catalog

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository encapsulates catalog persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a catalog repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListAll returns every product in the catalog ordered by id.
func (r *Repository) ListAll(ctx context.Context) ([]Product, error) {
	var products []Product
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&products).
		Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// FindByID loads a single product. Returns gorm.ErrRecordNotFound when the id
// does not exist.
func (r *Repository) FindByID(ctx context.Context, id int64) (Product, error) {
	var product Product
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&product).
		Error
	if err != nil {
		return Product{}, err
	}
	return product, nil
}

// Seed upserts the given products by id so re-running the seeder is safe.
func (r *Repository) Seed(ctx context.Context, products []Product) error {
	if len(products) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&products).
		Error
}
