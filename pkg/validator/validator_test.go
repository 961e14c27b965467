package validator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Quantity int             `validate:"gte=1"`
	Pct      decimal.Decimal `validate:"gte=0,lte=100"`
	Token    string          `validate:"omitempty,max=64"`
}

func TestStruct_Valido(t *testing.T) {
	assert.Nil(t, Struct(sample{Quantity: 1, Pct: decimal.NewFromInt(100)}))
}

func TestStruct_Errores(t *testing.T) {
	errs := Struct(sample{Quantity: 0, Pct: decimal.NewFromInt(101)})
	require.Len(t, errs, 2)
	assert.Equal(t, "Quantity", errs[0].Field)
	assert.Equal(t, "gte", errs[0].Tag)
	assert.Equal(t, "Pct", errs[1].Field)
	assert.Equal(t, "lte", errs[1].Tag)
	assert.Equal(t, "Quantity: gte=1; Pct: lte=100", Join(errs))
}

func TestStruct_PctNegativo(t *testing.T) {
	errs := Struct(sample{Quantity: 1, Pct: decimal.NewFromInt(-1)})
	require.Len(t, errs, 1)
	assert.Equal(t, "gte", errs[0].Tag)
}
