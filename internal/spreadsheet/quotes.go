package spreadsheet

import (
	"bytes"
	"fmt"

	"github.com/4ndreams/GPS-sub000/internal/app/model"
	"github.com/xuri/excelize/v2"
)

const quoteSheet = "Cotizaciones"

var quoteHeader = []interface{}{"ID", "Fecha", "Contacto", "RUT", "Email", "Comuna", "Estado", "Monto"}

// WriteQuotes renders quotes as a single-sheet workbook.
func WriteQuotes(quotes []model.Quote) (*bytes.Buffer, error) {
	xl := excelize.NewFile()
	defer func() { _ = xl.Close() }()

	if err := xl.SetSheetName(xl.GetSheetName(0), quoteSheet); err != nil {
		return nil, err
	}
	if err := xl.SetSheetRow(quoteSheet, "A1", &quoteHeader); err != nil {
		return nil, err
	}

	for i, q := range quotes {
		record := []interface{}{
			q.ID,
			q.CreatedAt.Format("2006-01-02 15:04"),
			q.ContactName,
			q.RUT,
			q.Email,
			q.Comuna,
			string(q.Status),
			q.QuotedAmount + q.TaxAmount,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := xl.SetSheetRow(quoteSheet, cell, &record); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
	}

	return xl.WriteToBuffer()
}
