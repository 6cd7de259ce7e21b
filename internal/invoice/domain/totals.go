package domain

import "github.com/shopspring/decimal"

type TotalsLine struct {
	Qty       decimal.Decimal
	UnitPrice decimal.Decimal
	VatRate   decimal.Decimal
}

type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	VatTotal decimal.Decimal `json:"vatTotal"`
	Total    decimal.Decimal `json:"total"`
}

// ComputeTotals accumulates subtotal and VAT across lines. VAT is taken
// per line before summing; rounding happens only when the numbers are
// presented.
func ComputeTotals(lines []TotalsLine) Totals {
	hundred := decimal.NewFromInt(100)
	subtotal := decimal.Zero
	vatTotal := decimal.Zero
	for _, line := range lines {
		net := line.Qty.Mul(line.UnitPrice)
		subtotal = subtotal.Add(net)
		vatTotal = vatTotal.Add(net.Mul(line.VatRate).Div(hundred))
	}
	return Totals{
		Subtotal: subtotal,
		VatTotal: vatTotal,
		Total:    subtotal.Add(vatTotal),
	}
}
