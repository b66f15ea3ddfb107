package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// DefaultCurrency is used when a ProductKind is built without one.
const DefaultCurrency = "USD"

type Product struct {
	bun.BaseModel `bun:"table:products,alias:p" json:"-"`

	ID          uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	Name        string    `bun:"name,notnull,unique" json:"name"`
	Description string    `bun:"description" json:"description"`
	Category    string    `bun:"category" json:"category"`
	Price       float64   `bun:"price,notnull" json:"price"`
	Quantity    int       `bun:"quantity,notnull" json:"quantity"`
	Currency    string    `bun:"currency,notnull" json:"currency"`
	CreatedAt   time.Time `bun:"created_at,notnull" json:"created_at"`
}

type ProductInput struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price" binding:"gte=0"`
	Quantity    int     `json:"quantity" binding:"gte=0"`
}

// ProductKind implements Kind for products.
type ProductKind struct {
	currency string
}

func NewProductKind(currency string) *ProductKind {
	if currency == "" {
		currency = DefaultCurrency
	}
	return &ProductKind{currency: currency}
}

func (ProductKind) Name() string { return "Product" }

func (ProductKind) UniqueKey(input ProductInput) string {
	return strings.TrimSpace(input.Name)
}

func (k ProductKind) Build(input ProductInput, now time.Time) (*Product, error) {
	return &Product{
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Category:    input.Category,
		Price:       input.Price,
		Quantity:    input.Quantity,
		Currency:    k.currency,
		CreatedAt:   now,
	}, nil
}

func (ProductKind) ID(record *Product) string {
	return record.ID.String()
}

func (ProductKind) FilterFields() FieldSet {
	return productFields
}

var productFields = FieldSet{
	Ranges: []string{"price", "quantity"},
	Sets:   []string{"category", "currency", "name"},
	Text:   []string{"name", "description"},
}
