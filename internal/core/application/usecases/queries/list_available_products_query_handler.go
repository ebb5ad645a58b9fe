package queries

import (
	"context"

	"gorm.io/gorm"
)

type ListAvailableProductsQueryHandler struct {
	db *gorm.DB
}

func NewListAvailableProductsQueryHandler(db *gorm.DB) ListAvailableProductsQueryHandler {
	return ListAvailableProductsQueryHandler{db: db}
}

// Handle returns products with stock > 0 ordered by category_en, then name_en.
func (h ListAvailableProductsQueryHandler) Handle(
	ctx context.Context,
	query ListAvailableProductsQuery,
) ([]ProductResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	products := make([]ProductResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name_en,
			COALESCE(name_ar, ''),
			COALESCE(description_en, ''),
			COALESCE(description_ar, ''),
			category_en,
			COALESCE(category_ar, ''),
			price,
			stock,
			COALESCE(image_url, '')
		FROM products
		WHERE stock > 0
		ORDER BY category_en, name_en
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var p ProductResponse
		err = rows.Scan(
			&p.ID,
			&p.NameEn,
			&p.NameAr,
			&p.DescriptionEn,
			&p.DescriptionAr,
			&p.CategoryEn,
			&p.CategoryAr,
			&p.Price,
			&p.Stock,
			&p.ImageURL,
		)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}
