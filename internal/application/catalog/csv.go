package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/grocery-pos/internal/domain"
	"github.com/jhoicas/grocery-pos/internal/domain/money"
)

// Columns encabezado del CSV de catálogo (exportación e importación).
var Columns = []string{"sku", "barcode", "name", "category", "price", "cost_price", "gst_rate", "unit", "stock_qty"}

const (
	defaultCategory = "General"
	defaultUnit     = "pcs"
)

var hundred = decimal.NewFromInt(100)

// Row un producto del CSV. Line es la línea del archivo (1 = encabezado).
type Row struct {
	Line      int
	SKU       string
	Barcode   string
	Name      string
	Category  string
	Price     money.Money
	CostPrice money.Money
	GSTRate   decimal.Decimal
	Unit      string
	StockQty  int
}

// decoder envuelve r según el charset declarado. Exportaciones de sistemas de caja antiguos
// suelen venir en Latin-1 o Windows-1252.
func decoder(r io.Reader, charset string) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(charset)) {
	case "", "utf-8", "utf8":
		return r, nil
	case "latin1", "iso-8859-1", "iso8859-1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	case "windows-1252", "cp1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	default:
		return nil, domain.Invalid("charset", fmt.Sprintf("no soportado: %q", charset))
	}
}

// ReadCSV lee el catálogo. Las columnas se ubican por nombre; las filas sin sku se omiten.
// Cualquier valor inválido rechaza el archivo completo antes de escribir nada.
func ReadCSV(r io.Reader, charset string) ([]Row, error) {
	in, err := decoder(r, charset)
	if err != nil {
		return nil, err
	}
	reader := csv.NewReader(in)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, domain.Invalid("file", "archivo vacío")
		}
		return nil, domain.Invalid("file", err.Error())
	}
	index := map[string]int{}
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	if _, ok := index["sku"]; !ok {
		return nil, domain.Invalid("file", "falta la columna sku")
	}

	var rows []Row
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, domain.Invalid("file", err.Error())
		}
		get := func(col string) string {
			i, ok := index[col]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}
		row, skip, err := parseRow(line, get)
		if err != nil {
			return nil, err
		}
		if !skip {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func parseRow(line int, get func(string) string) (Row, bool, error) {
	row := Row{Line: line, SKU: get("sku"), Barcode: get("barcode"), Name: get("name"), Category: get("category"), Unit: get("unit")}
	if row.SKU == "" {
		return row, true, nil
	}
	if row.Name == "" {
		row.Name = row.SKU
	}
	if row.Category == "" {
		row.Category = defaultCategory
	}
	if row.Unit == "" {
		row.Unit = defaultUnit
	}

	invalid := func(field, reason string) error {
		return domain.Invalid(field, fmt.Sprintf("línea %d: %s", line, reason))
	}
	var err error
	if row.Price, err = parseMoney(get("price")); err != nil || row.Price.IsNegative() {
		return row, false, invalid("price", "monto inválido")
	}
	if row.CostPrice, err = parseMoney(get("cost_price")); err != nil || row.CostPrice.IsNegative() {
		return row, false, invalid("cost_price", "monto inválido")
	}
	if row.GSTRate, err = parseRate(get("gst_rate")); err != nil || row.GSTRate.IsNegative() || row.GSTRate.GreaterThan(hundred) {
		return row, false, invalid("gst_rate", "debe estar entre 0 y 100")
	}
	if s := get("stock_qty"); s != "" {
		if row.StockQty, err = strconv.Atoi(s); err != nil || row.StockQty < 0 {
			return row, false, invalid("stock_qty", "entero no negativo")
		}
	}
	return row, false, nil
}

func parseMoney(s string) (money.Money, error) {
	if s == "" {
		return money.Zero, nil
	}
	return money.Parse(s)
}

func parseRate(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	return d.Round(2), nil
}

// WriteCSV escribe el catálogo en UTF-8 con el encabezado Columns.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write([]string{
			r.SKU, r.Barcode, r.Name, r.Category,
			r.Price.String(), r.CostPrice.String(), r.GSTRate.StringFixed(2),
			r.Unit, strconv.Itoa(r.StockQty),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
