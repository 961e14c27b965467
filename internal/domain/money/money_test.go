package money_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/grocery-pos/internal/domain/money"
)

func TestParse_RedondeaHalfUp(t *testing.T) {
	cases := map[string]string{
		"28":      "28.00",
		"27.995":  "28.00",
		"27.994":  "27.99",
		"0.005":   "0.01",
		"-0.005":  "-0.01",
		"1.23456": "1.23",
	}
	for in, want := range cases {
		m, err := money.Parse(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, m.String(), in)
	}

	_, err := money.Parse("abc")
	assert.Error(t, err)
}

func TestPercent_RedondeaInmediatamente(t *testing.T) {
	m := money.MustParse("56.00")
	assert.Equal(t, "2.80", m.Percent(decimal.NewFromInt(5)).String())
	assert.Equal(t, "5.60", m.Percent(decimal.NewFromInt(10)).String())
	// 10.05 * 5% = 0.5025 -> 0.50
	assert.Equal(t, "0.50", money.MustParse("10.05").Percent(decimal.NewFromInt(5)).String())
}

func TestScaleBy_RazonExacta(t *testing.T) {
	tax := money.MustParse("10.00")
	assert.Equal(t, "9.00", tax.ScaleBy(money.MustParse("90.00"), money.MustParse("100.00")).String())
	// 1.00 * 2/3 = 0.666.. -> 0.67
	assert.Equal(t, "0.67", money.MustParse("1.00").ScaleBy(money.MustParse("2.00"), money.MustParse("3.00")).String())
	// denominador cero: identidad
	assert.Equal(t, "10.00", tax.ScaleBy(money.Zero, money.Zero).String())
}

func TestCentsYFromCents(t *testing.T) {
	m := money.FromCents(5880)
	assert.Equal(t, "58.80", m.String())
	assert.Equal(t, int64(5880), m.Cents())
}

func TestJSON(t *testing.T) {
	data, err := json.Marshal(struct {
		Total money.Money `json:"total"`
	}{Total: money.MustParse("58.8")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"total":"58.80"}`, string(data))

	var out struct {
		Total money.Money `json:"total"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"total":12.345}`), &out))
	assert.Equal(t, "12.35", out.Total.String())
	require.NoError(t, json.Unmarshal([]byte(`{"total":"7"}`), &out))
	assert.Equal(t, "7.00", out.Total.String())
}

func TestSumEIsExact(t *testing.T) {
	total := money.Sum(money.MustParse("1.10"), money.MustParse("2.20"), money.MustParse("3.30"))
	assert.Equal(t, "6.60", total.String())
	assert.True(t, money.IsExact(total.Decimal()))
	assert.False(t, money.IsExact(decimal.RequireFromString("1.005")))
}
