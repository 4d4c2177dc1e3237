package domain

import "github.com/shopspring/decimal"

const (
	ProductTypeService = "Service"
	ProductTypeProduct = "Product"
)

// Product is a sellable item or service.
type Product struct {
	ID          int64           `json:"id"`
	BusinessID  int64           `json:"business_id" validate:"required_without=ID"`
	Name        string          `json:"name" validate:"required"`
	Type        string          `json:"type" validate:"omitempty,oneof=Service Product"`
	Price       decimal.Decimal `json:"price" validate:"gte=0"`
	Description string          `json:"description"`
	CreatedAt   string          `json:"created_at,omitempty"`
}
