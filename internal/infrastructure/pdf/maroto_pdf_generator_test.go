package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/grocery-pos/internal/application/checkout"
	"github.com/jhoicas/grocery-pos/internal/domain/entity"
	"github.com/jhoicas/grocery-pos/internal/domain/money"
)

func sampleDetail() *checkout.OrderDetail {
	item := &entity.OrderItem{
		ID:          "it-1",
		OrderID:     "ord-1",
		ProductID:   "p-milk",
		Quantity:    2,
		UnitPrice:   money.MustParse("28.00"),
		UnitCost:    money.MustParse("24.00"),
		GSTRate:     decimal.NewFromInt(5),
		DiscountPct: decimal.Zero,
	}
	prices := item.Pricing()
	cgst, sgst := prices.TaxSplit()
	return &checkout.OrderDetail{
		Order: &entity.Order{
			ID:                  "ord-1",
			CreatedAt:           time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC),
			StaffID:             "staff-1",
			OrderDiscountPct:    decimal.NewFromInt(10),
			GrossSubtotal:       money.MustParse("56.00"),
			OrderDiscountAmount: money.MustParse("5.60"),
			Subtotal:            money.MustParse("50.40"),
			TaxTotal:            money.MustParse("2.52"),
			GrandTotal:          money.MustParse("52.92"),
			ProfitAmount:        money.MustParse("2.40"),
			Items:               []*entity.OrderItem{item},
		},
		Customer: &entity.Customer{ID: "c-1", Name: "Asha", Phone: "9800000001"},
		Lines:    []checkout.LineDetail{{Item: item, Prices: prices, CGST: cgst, SGST: sgst}},
	}
}

func TestGenerateReceipt_DevuelvePDF(t *testing.T) {
	g := NewMarotoPDFGenerator(Store{Name: "Kirana Central", Phone: "080-1234", GSTIN: "29ABCDE1234F1Z5"})

	out, err := g.GenerateReceipt(context.Background(), sampleDetail(), map[string]string{"p-milk": "Toned Milk 500ml"})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateReceipt_SinClienteNiNombres(t *testing.T) {
	d := sampleDetail()
	d.Customer = nil

	out, err := NewMarotoPDFGenerator(Store{}).GenerateReceipt(context.Background(), d, nil)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateReceipt_OrdenVacia(t *testing.T) {
	_, err := NewMarotoPDFGenerator(Store{}).GenerateReceipt(context.Background(), &checkout.OrderDetail{}, nil)
	assert.Error(t, err)
}

func TestFormatos(t *testing.T) {
	assert.Equal(t, "Rs. 1,234,567.50", formatMoney(money.MustParse("1234567.5")))
	assert.Equal(t, "Rs. 28.00", formatMoney(money.MustParse("28")))
	assert.Equal(t, "0.705", formatHalf(decimal.RequireFromString("0.705")))
	assert.Equal(t, "1.40", formatHalf(decimal.RequireFromString("1.4")))
	assert.Equal(t, "-1,000.00", groupThousands("-1000.00"))
}
