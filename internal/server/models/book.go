package models

import "github.com/shopspring/decimal"

type Book struct {
	ID    int64
	Name  string
	Price decimal.Decimal
}

// PriceString renders the price with two fractional digits ("12.50").
func (b Book) PriceString() string {
	return b.Price.StringFixed(2)
}
