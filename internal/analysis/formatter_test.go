package analysis

import (
	"testing"

	"github.com/Veraticus/pennywise/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCLIFormatter_FormatAmount(t *testing.T) {
	f := NewCLIFormatter("")
	assert.Equal(t, "R$1.234,56", f.FormatAmount(decimal.RequireFromString("1234.56")))

	usd := NewCLIFormatter("usd")
	assert.Equal(t, "$10.00", usd.FormatAmount(decimal.RequireFromString("9.999")))
}

func TestCLIFormatter_FormatReport(t *testing.T) {
	f := NewCLIFormatter("BRL")

	assert.Contains(t, f.FormatReport(nil), "No categorized transactions")

	report := Analyze(1, []model.Transaction{
		categorized(1, 1, "padaria central", "-12.00"),
		categorized(2, 2, "uber", "-30"),
	}, testCategories())

	out := f.FormatReport(report)
	assert.Contains(t, out, "Alimentação")
	assert.Contains(t, out, "Transporte")
	assert.Contains(t, out, "padaria central")
	assert.Contains(t, out, "R$12,00")
}
