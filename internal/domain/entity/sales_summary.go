package entity

import "github.com/jhoicas/grocery-pos/internal/domain/money"

// SalesSummary agregado de órdenes confirmadas en un rango [From, To).
type SalesSummary struct {
	Orders     int
	Subtotal   money.Money
	TaxTotal   money.Money
	GrandTotal money.Money
	Profit     money.Money
}
