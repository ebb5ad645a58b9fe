package productrepo

import (
	"context"
	"errors"
	"slices"

	"storefront/internal/core/domain/model/product"
	"storefront/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// checkViolation is the PostgreSQL SQLSTATE for a failed CHECK constraint.
const checkViolation = "23514"

// GormProductRepository implements ports.ProductRepository using GORM.
type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) Add(ctx context.Context, aggregate *product.Product) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormProductRepository) Get(ctx context.Context, id product.ID) (*product.Product, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ProductDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", int64(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("product", int64(id))
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetForUpdate locks rows with SELECT ... ORDER BY id FOR UPDATE so that
// concurrent orders touching the same products always lock them in the same
// order.
func (r *GormProductRepository) GetForUpdate(
	ctx context.Context,
	ids []product.ID,
) (map[product.ID]*product.Product, error) {
	keys := make([]int64, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		keys = append(keys, int64(id))
	}
	slices.Sort(keys)
	keys = slices.Compact(keys)

	var dtos []ProductDTO
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", keys).
		Order("id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	products := make(map[product.ID]*product.Product, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		products[p.ID()] = p
	}

	for _, key := range keys {
		if _, ok := products[product.ID(key)]; !ok {
			return nil, errs.NewObjectNotFoundError("product", key)
		}
	}

	return products, nil
}

// DecrementStock runs UPDATE products SET stock = stock - n WHERE id = ? AND stock >= n.
func (r *GormProductRepository) DecrementStock(ctx context.Context, id product.ID, quantity int) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if quantity <= 0 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}

	result := r.db.WithContext(ctx).
		Model(&ProductDTO{}).
		Where("id = ? AND stock >= ?", int64(id), quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == checkViolation {
			return errs.NewInsufficientStockError(int64(id), quantity, 0)
		}
		return result.Error
	}

	if result.RowsAffected == 0 {
		var current ProductDTO
		err := r.db.WithContext(ctx).Select("stock").First(&current, "id = ?", int64(id)).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewObjectNotFoundError("product", int64(id))
		}
		if err != nil {
			return err
		}
		return errs.NewInsufficientStockError(int64(id), quantity, current.Stock)
	}

	return nil
}
