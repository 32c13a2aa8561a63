// Package spreadsheet reads the product catalogue from xlsx and writes the
// admin quote export.
package spreadsheet

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/4ndreams/GPS-sub000/internal/app/model"
	"github.com/4ndreams/GPS-sub000/pkg/logger"
	"github.com/xuri/excelize/v2"
)

// Catalogue columns, in order. The first row is a header and is skipped.
const (
	colName = iota
	colCategory
	colMaterial
	colSizes
	colPrice
	colStock
	catalogColumns
)

// RowError describes a catalogue row that was skipped.
type RowError struct {
	Row    int    `json:"row"` // 1-based, as shown by spreadsheet programs
	Reason string `json:"reason"`
}

func (e RowError) Error() string {
	return fmt.Sprintf("fila %d: %s", e.Row, e.Reason)
}

var (
	nonSlug   = regexp.MustCompile(`[^A-Z0-9]+`)
	priceJunk = strings.NewReplacer("$", "", ".", "", " ", "", "CLP", "")
)

// ReadProducts parses the first sheet of a catalogue workbook. Bad rows are
// reported in the returned slice and do not abort the import.
func ReadProducts(r io.Reader) ([]model.Product, []RowError, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, nil, fmt.Errorf("no sheets found in xlsx")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("no data found in xlsx")
	}

	var (
		products []model.Product
		skipped  []RowError
		skuCount = make(map[string]int)
	)

	for i, row := range rows {
		if i == 0 {
			continue
		}
		lineNo := i + 1

		if len(row) < catalogColumns {
			// GetRows trims trailing empty cells.
			row = append(row, make([]string, catalogColumns-len(row))...)
		}

		name := strings.TrimSpace(row[colName])
		if name == "" {
			if strings.TrimSpace(strings.Join(row, "")) != "" {
				skipped = append(skipped, RowError{Row: lineNo, Reason: "falta el nombre"})
			}
			continue
		}

		category := model.ProductCategory(strings.ToLower(strings.TrimSpace(row[colCategory])))
		if !model.ValidCategory(category) {
			skipped = append(skipped, RowError{Row: lineNo, Reason: fmt.Sprintf("categoría desconocida %q", row[colCategory])})
			continue
		}

		price, err := ParsePrice(row[colPrice])
		if err != nil || price <= 0 {
			skipped = append(skipped, RowError{Row: lineNo, Reason: fmt.Sprintf("precio inválido %q", row[colPrice])})
			continue
		}

		stock := 0
		if s := strings.TrimSpace(row[colStock]); s != "" {
			stock, err = strconv.Atoi(s)
			if err != nil || stock < 0 {
				skipped = append(skipped, RowError{Row: lineNo, Reason: fmt.Sprintf("stock inválido %q", s)})
				continue
			}
		}

		base := GenerateSKU(category, name)
		sku := base
		if n := skuCount[base]; n > 0 {
			sku = fmt.Sprintf("%s-%d", base, n+1)
		}
		skuCount[base]++

		products = append(products, model.Product{
			SKU:           sku,
			Name:          name,
			Category:      category,
			Material:      strings.TrimSpace(row[colMaterial]),
			Sizes:         splitSizes(row[colSizes]),
			Price:         price,
			StockQuantity: stock,
		})
	}

	logger.Info("Catalogue parsed", map[string]interface{}{
		"sheet":    sheet,
		"rows":     len(rows) - 1,
		"products": len(products),
		"skipped":  len(skipped),
	})

	return products, skipped, nil
}

// ParsePrice accepts CLP amounts written as 45990, 45.990 or $45.990.
func ParsePrice(s string) (int64, error) {
	clean := priceJunk.Replace(strings.ToUpper(strings.TrimSpace(s)))
	return strconv.ParseInt(clean, 10, 64)
}

// GenerateSKU builds a readable SKU from the category and product name,
// e.g. PUE-PUERTA-ROBLE-70X200.
func GenerateSKU(category model.ProductCategory, name string) string {
	prefix := strings.ToUpper(string(category))
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}

	slug := nonSlug.ReplaceAllString(strings.ToUpper(stripAccents(name)), "-")
	slug = strings.Trim(slug, "-")

	sku := prefix + "-" + slug
	if len(sku) > 36 {
		sku = strings.TrimRight(sku[:36], "-")
	}
	return sku
}

func splitSizes(s string) model.StringList {
	sizes := model.StringList{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			sizes = append(sizes, strings.ToLower(part))
		}
	}
	return sizes
}

var accents = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ü", "u", "ñ", "n",
	"Á", "A", "É", "E", "Í", "I", "Ó", "O", "Ú", "U", "Ü", "U", "Ñ", "N",
)

func stripAccents(s string) string {
	return accents.Replace(s)
}
