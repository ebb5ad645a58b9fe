package product

import (
	"errors"
	"fmt"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

var ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")

// ID identifies a catalog item. The catalog numbers its items sequentially.
type ID int64

// Validate requires a positive identifier.
func (id ID) Validate() error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("product id is invalid", fmt.Errorf("%d is not greater than 0", id))
	}
	return nil
}

// LocalizedText holds the English and Arabic variant of a label.
type LocalizedText struct {
	En string
	Ar string
}

// Product is a catalog item with a price and a stock counter.
//
// Invariants:
//   - stock never drops below zero
//   - price is a non-negative Money value
//   - the English name and category are present
type Product struct {
	id          ID
	name        LocalizedText
	description LocalizedText
	category    LocalizedText
	price       kernel.Money
	stock       int
	imageURL    string

	isConstructed bool
}

// NewProduct validates and builds a catalog item. It is also used to rebuild
// products loaded from storage.
func NewProduct(
	id ID,
	name, description, category LocalizedText,
	price kernel.Money,
	stock int,
	imageURL string,
) (*Product, error) {
	p := &Product{
		description:   description,
		price:         price,
		imageURL:      imageURL,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setName(name),
		p.setCategory(category),
		p.setStock(stock),
	); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Product) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProductIsNotConstructed
	}
	return nil
}

func (p *Product) ID() ID {
	return p.id
}

func (p *Product) Name() LocalizedText {
	return p.name
}

func (p *Product) Description() LocalizedText {
	return p.description
}

func (p *Product) Category() LocalizedText {
	return p.category
}

func (p *Product) Price() kernel.Money {
	return p.price
}

func (p *Product) Stock() int {
	return p.stock
}

func (p *Product) ImageURL() string {
	return p.imageURL
}

// IsAvailable reports whether the item is listed to customers.
func (p *Product) IsAvailable() bool {
	return p.stock > 0
}

// DecrementStock removes quantity units from stock.
// Returns InsufficientStockError, leaving stock untouched, when fewer units remain.
func (p *Product) DecrementStock(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity))
	}
	if quantity > p.stock {
		return errs.NewInsufficientStockError(int64(p.id), quantity, p.stock)
	}
	p.stock -= quantity
	return nil
}

func (p *Product) setID(id ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Product) setName(name LocalizedText) error {
	if strings.TrimSpace(name.En) == "" {
		return errs.NewValueIsRequiredError("name_en")
	}
	p.name = name
	return nil
}

func (p *Product) setCategory(category LocalizedText) error {
	if strings.TrimSpace(category.En) == "" {
		return errs.NewValueIsRequiredError("category_en")
	}
	p.category = category
	return nil
}

func (p *Product) setStock(stock int) error {
	if stock < 0 {
		return errs.NewValueIsInvalidErrorWithCause("stock is invalid", fmt.Errorf("%d is negative", stock))
	}
	p.stock = stock
	return nil
}
