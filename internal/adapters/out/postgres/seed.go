package postgres

import (
	"context"

	"storefront/internal/adapters/out/postgres/productrepo"
	"storefront/internal/adapters/out/postgres/userrepo"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/product"
	"storefront/internal/core/domain/model/user"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DemoPassword is the password of every demo account.
const DemoPassword = "password123"

type demoProduct struct {
	name, category product.LocalizedText
	price          string
	stock          int
}

var demoCatalog = []demoProduct{
	{product.LocalizedText{En: "Arabic Coffee", Ar: "قهوة عربية"}, product.LocalizedText{En: "Beverages", Ar: "مشروبات"}, "12.50", 40},
	{product.LocalizedText{En: "Fresh Orange Juice", Ar: "عصير برتقال طازج"}, product.LocalizedText{En: "Beverages", Ar: "مشروبات"}, "9.00", 25},
	{product.LocalizedText{En: "Khubz", Ar: "خبز"}, product.LocalizedText{En: "Bakery", Ar: "مخبوزات"}, "2.00", 100},
	{product.LocalizedText{En: "Za'atar Manakish", Ar: "مناقيش زعتر"}, product.LocalizedText{En: "Bakery", Ar: "مخبوزات"}, "6.50", 30},
	{product.LocalizedText{En: "Chicken Shawarma", Ar: "شاورما دجاج"}, product.LocalizedText{En: "Meals", Ar: "وجبات"}, "18.00", 20},
	{product.LocalizedText{En: "Falafel Plate", Ar: "طبق فلافل"}, product.LocalizedText{En: "Meals", Ar: "وجبات"}, "14.00", 15},
	{product.LocalizedText{En: "Dates Box", Ar: "علبة تمر"}, product.LocalizedText{En: "Sweets", Ar: "حلويات"}, "35.00", 10},
}

// SeedDemo creates the demo accounts customer1, store1 and driver1 and a small
// bilingual catalog. Each part is skipped when its table already has rows.
func SeedDemo(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := seedUsers(ctx, tx); err != nil {
			return err
		}
		return seedCatalog(ctx, tx)
	})
}

func seedUsers(ctx context.Context, tx *gorm.DB) error {
	var count int64
	if err := tx.Model(&userrepo.UserDTO{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	repo := userrepo.NewGormUserRepository(tx)
	accounts := []struct {
		username string
		role     user.Role
	}{
		{"customer1", user.Customer},
		{"store1", user.Store},
		{"driver1", user.Driver},
	}
	for _, account := range accounts {
		u, err := user.NewUser(kernel.NewUUID(), account.username, DemoPassword, account.role)
		if err != nil {
			return err
		}
		if err := repo.Add(ctx, u); err != nil {
			return err
		}
	}
	return nil
}

func seedCatalog(ctx context.Context, tx *gorm.DB) error {
	var count int64
	if err := tx.Model(&productrepo.ProductDTO{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	repo := productrepo.NewGormProductRepository(tx)
	for i, item := range demoCatalog {
		price, err := kernel.NewMoney(decimal.RequireFromString(item.price))
		if err != nil {
			return err
		}
		p, err := product.NewProduct(
			product.ID(i+1),
			item.name,
			product.LocalizedText{},
			item.category,
			price,
			item.stock,
			"",
		)
		if err != nil {
			return err
		}
		if err := repo.Add(ctx, p); err != nil {
			return err
		}
	}

	// Explicit ids leave the serial behind; move it past the seeded rows.
	return tx.Exec("SELECT setval(pg_get_serial_sequence('products', 'id'), (SELECT MAX(id) FROM products))").Error
}
