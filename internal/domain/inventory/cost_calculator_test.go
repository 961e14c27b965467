package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/grocery-pos/internal/domain/money"
)

func TestWeightedAverageCost(t *testing.T) {
	// 10 a 24.00 + 30 a 26.00 = 1020 / 40
	got := WeightedAverageCost(10, money.MustParse("24.00"), 30, money.MustParse("26.00"))
	assert.Equal(t, "25.50", got.String())

	// sin stock previo: costo de la entrada
	assert.Equal(t, "30.00", WeightedAverageCost(0, money.MustParse("24.00"), 5, money.MustParse("30.00")).String())

	// redondeo half-up: (1*10 + 2*11) / 3 = 10.666..
	assert.Equal(t, "10.67", WeightedAverageCost(1, money.MustParse("10.00"), 2, money.MustParse("11.00")).String())

	assert.Equal(t, "9.00", WeightedAverageCost(0, money.Zero, 0, money.MustParse("9.00")).String())
}
