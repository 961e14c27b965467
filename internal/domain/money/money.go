package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Scale número de decimales de todo valor monetario.
const Scale = 2

var hundred = decimal.NewFromInt(100)

// Money valor monetario de punto fijo con 2 decimales.
// Todo valor construido pasa por round (half-up, alejándose de cero), nunca se difiere el redondeo.
type Money struct {
	d decimal.Decimal
}

// Zero es el valor monetario cero.
var Zero = Money{d: decimal.Zero}

func round(d decimal.Decimal) Money {
	return Money{d: d.Round(Scale)}
}

// FromDecimal redondea d a 2 decimales.
func FromDecimal(d decimal.Decimal) Money {
	return round(d)
}

// FromCents construye un valor desde unidades mínimas (paisa/centavos).
func FromCents(cents int64) Money {
	return Money{d: decimal.New(cents, -Scale)}
}

// Parse interpreta un string decimal ("28.00", "28", "27.995") y lo redondea.
func Parse(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero, fmt.Errorf("money: valor inválido %q: %w", s, err)
	}
	return round(d), nil
}

// MustParse igual que Parse pero entra en pánico; solo para constantes y tests.
func MustParse(s string) Money {
	m, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return m
}

// Decimal devuelve la representación decimal (ya redondeada).
func (m Money) Decimal() decimal.Decimal { return m.d }

// Cents devuelve el valor en unidades mínimas.
func (m Money) Cents() int64 { return m.d.Shift(Scale).IntPart() }

// String formatea siempre con 2 decimales.
func (m Money) String() string { return m.d.StringFixed(Scale) }

func (m Money) Add(o Money) Money { return round(m.d.Add(o.d)) }
func (m Money) Sub(o Money) Money { return round(m.d.Sub(o.d)) }
func (m Money) Neg() Money        { return Money{d: m.d.Neg()} }

// MulQty multiplica por una cantidad entera.
func (m Money) MulQty(qty int) Money {
	return round(m.d.Mul(decimal.NewFromInt(int64(qty))))
}

// Percent devuelve round(m × pct / 100).
func (m Money) Percent(pct decimal.Decimal) Money {
	return Money{d: m.d.Mul(pct).DivRound(hundred, Scale)}
}

// ScaleBy devuelve round(m × num / den) usando la razón exacta num/den (sin redondeo intermedio).
// Con den == 0 devuelve m sin cambios.
func (m Money) ScaleBy(num, den Money) Money {
	if den.IsZero() {
		return m
	}
	return Money{d: m.d.Mul(num.d).DivRound(den.d, Scale)}
}

// Half devuelve m / 2 sin redondear (desglose CGST/SGST, solo presentación).
func (m Money) Half() decimal.Decimal {
	return m.d.Div(decimal.NewFromInt(2))
}

func (m Money) IsZero() bool             { return m.d.IsZero() }
func (m Money) IsPositive() bool         { return m.d.IsPositive() }
func (m Money) IsNegative() bool         { return m.d.IsNegative() }
func (m Money) Cmp(o Money) int          { return m.d.Cmp(o.d) }
func (m Money) Equal(o Money) bool       { return m.d.Equal(o.d) }
func (m Money) GreaterThan(o Money) bool { return m.d.GreaterThan(o.d) }
func (m Money) LessThan(o Money) bool    { return m.d.LessThan(o.d) }

// IsExact indica si d no tiene fracciones por debajo de la unidad mínima.
func IsExact(d decimal.Decimal) bool {
	return d.Equal(d.Round(Scale))
}

// Sum suma una lista de valores.
func Sum(values ...Money) Money {
	total := Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// MarshalJSON serializa como string con 2 decimales ("58.80").
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON acepta string o número JSON.
func (m *Money) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("money: %w", err)
	}
	*m = round(d)
	return nil
}
