package service

import (
	"github.com/shopspring/decimal"
)

// Totals are CLP amounts. Prices are stored net of IVA.
type Totals struct {
	Net   int64 `json:"net"`
	Tax   int64 `json:"tax"`
	Total int64 `json:"total"`
}

// computeTotals applies the tax rate to a net amount, rounding half away from
// zero to whole pesos.
func computeTotals(net int64, taxRate decimal.Decimal) Totals {
	tax := decimal.NewFromInt(net).Mul(taxRate).Round(0).IntPart()
	return Totals{Net: net, Tax: tax, Total: net + tax}
}

// lineNet is unit price times quantity, in CLP.
func lineNet(unitPrice int64, quantity int) int64 {
	return decimal.NewFromInt(unitPrice).Mul(decimal.NewFromInt(int64(quantity))).IntPart()
}
