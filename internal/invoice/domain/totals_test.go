package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestComputeTotals(t *testing.T) {
	lines := []TotalsLine{
		{Qty: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(10), VatRate: decimal.NewFromInt(20)},
		{Qty: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(5), VatRate: decimal.Zero},
	}

	totals := ComputeTotals(lines)

	assert.True(t, totals.Subtotal.Equal(decimal.NewFromInt(25)), "subtotal %s", totals.Subtotal)
	assert.True(t, totals.VatTotal.Equal(decimal.NewFromInt(4)), "vat %s", totals.VatTotal)
	assert.True(t, totals.Total.Equal(decimal.NewFromInt(29)), "total %s", totals.Total)
}

func TestComputeTotalsEmpty(t *testing.T) {
	totals := ComputeTotals(nil)
	assert.True(t, totals.Total.IsZero())
}

func TestComputeTotalsFractionalVat(t *testing.T) {
	lines := []TotalsLine{
		{Qty: decimal.NewFromInt(3), UnitPrice: decimal.RequireFromString("1.50"), VatRate: decimal.NewFromInt(5)},
	}
	totals := ComputeTotals(lines)
	assert.True(t, totals.Subtotal.Equal(decimal.RequireFromString("4.50")))
	assert.True(t, totals.VatTotal.Equal(decimal.RequireFromString("0.225")))
}

func TestSupplierPrefix(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Acme Chiropody Ltd", "ACMECH"},
		{"J&B Hair", "JBHAIR"},
		{"ab", "AB"},
		{"---", "SUP"},
		{"", "SUP"},
		{"123 Shop", "123SHO"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, SupplierPrefix(tc.name), "name %q", tc.name)
	}
}
