package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/grocery-pos/internal/domain/money"
)

// WeightedAverageCost costo promedio ponderado después de una entrada de mercadería.
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
// Con stock resultante <= 0 conserva el costo de la entrada.
func WeightedAverageCost(stock int, cost money.Money, inQty int, inCost money.Money) money.Money {
	if stock < 0 {
		stock = 0
	}
	sum := stock + inQty
	if sum <= 0 {
		return inCost
	}
	num := cost.Decimal().Mul(decimal.NewFromInt(int64(stock))).
		Add(inCost.Decimal().Mul(decimal.NewFromInt(int64(inQty))))
	return money.FromDecimal(num.Div(decimal.NewFromInt(int64(sum))))
}
