// Package productrepo maps catalog items onto the products table.
package productrepo

import (
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/product"

	"github.com/shopspring/decimal"
)

// ProductDTO is one products row. The CHECK constraint on stock is the last
// line of defense against overselling.
type ProductDTO struct {
	ID            int64           `gorm:"primaryKey;autoIncrement"`
	NameEn        string          `gorm:"type:varchar(255);not null"`
	NameAr        string          `gorm:"type:varchar(255)"`
	DescriptionEn string          `gorm:"type:text"`
	DescriptionAr string          `gorm:"type:text"`
	CategoryEn    string          `gorm:"type:varchar(100);not null;index"`
	CategoryAr    string          `gorm:"type:varchar(100)"`
	Price         decimal.Decimal `gorm:"type:numeric(10,2);not null;check:products_price_non_negative,price >= 0"`
	Stock         int             `gorm:"not null;default:0;check:products_stock_non_negative,stock >= 0"`
	ImageURL      string          `gorm:"type:varchar(500)"`
}

func (ProductDTO) TableName() string {
	return "products"
}

func fromDomain(p *product.Product) ProductDTO {
	return ProductDTO{
		ID:            int64(p.ID()),
		NameEn:        p.Name().En,
		NameAr:        p.Name().Ar,
		DescriptionEn: p.Description().En,
		DescriptionAr: p.Description().Ar,
		CategoryEn:    p.Category().En,
		CategoryAr:    p.Category().Ar,
		Price:         p.Price().Decimal(),
		Stock:         p.Stock(),
		ImageURL:      p.ImageURL(),
	}
}

func toDomain(dto ProductDTO) (*product.Product, error) {
	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return nil, err
	}

	return product.NewProduct(
		product.ID(dto.ID),
		product.LocalizedText{En: dto.NameEn, Ar: dto.NameAr},
		product.LocalizedText{En: dto.DescriptionEn, Ar: dto.DescriptionAr},
		product.LocalizedText{En: dto.CategoryEn, Ar: dto.CategoryAr},
		price,
		dto.Stock,
		dto.ImageURL,
	)
}
