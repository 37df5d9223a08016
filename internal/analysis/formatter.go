package analysis

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the ISO code used to display amounts.
const DefaultCurrency = "BRL"

const barWidth = 20

// CLIFormatter renders reports for terminal display.
type CLIFormatter struct {
	styles   *Styles
	currency string
}

// NewCLIFormatter creates a formatter that displays amounts in currency. An empty code
// means DefaultCurrency.
func NewCLIFormatter(currency string) *CLIFormatter {
	if currency == "" {
		currency = DefaultCurrency
	}
	return &CLIFormatter{styles: NewStyles(), currency: strings.ToUpper(currency)}
}

// FormatAmount renders amount in the formatter's currency, rounded to cents.
func (f *CLIFormatter) FormatAmount(amount decimal.Decimal) string {
	cents := amount.Shift(2).Round(0).IntPart()
	return money.New(cents, f.currency).Display()
}

// FormatReport renders the whole report.
func (f *CLIFormatter) FormatReport(report *Report) string {
	if report == nil || report.TotalCategorized == 0 {
		return f.styles.Warning.Render("No categorized transactions yet")
	}

	sections := []string{
		f.styles.Title.Render(fmt.Sprintf("📊 Categorization patterns for user %d", report.UserID)),
		f.formatSummary(report),
	}

	top := report.CategoryPatterns[0].Count
	for _, p := range report.CategoryPatterns {
		sections = append(sections, f.formatPattern(p, top))
	}

	return strings.Join(sections, "\n\n")
}

func (f *CLIFormatter) formatSummary(report *Report) string {
	most := "-"
	if report.Summary.MostUsedCategory != nil {
		most = *report.Summary.MostUsedCategory
	}

	lines := []string{
		fmt.Sprintf("Categorized transactions: %s", f.styles.Count.Render(fmt.Sprint(report.TotalCategorized))),
		fmt.Sprintf("Categories used: %d", report.Summary.TotalCategoriesUsed),
		fmt.Sprintf("Most used: %s", f.styles.Success.Render(most)),
		fmt.Sprintf("Average per category: %.1f", report.Summary.AvgTransactionsPerCategory),
	}
	return strings.Join(lines, "\n")
}

func (f *CLIFormatter) formatPattern(p CategoryPattern, top int) string {
	filled := barWidth
	if top > 0 {
		filled = p.Count * barWidth / top
	}
	bar := f.styles.Bar.Render(strings.Repeat("█", filled)) + f.styles.Subtle.Render(strings.Repeat("░", barWidth-filled))

	header := fmt.Sprintf("%s  %s %s", f.styles.Count.Render(p.Category), bar, f.styles.Subtle.Render(fmt.Sprintf("(%d)", p.Count)))
	amounts := fmt.Sprintf("Total %s · Average %s",
		f.styles.Amount.Render(f.FormatAmount(p.TotalAmount)),
		f.styles.Amount.Render(f.FormatAmount(p.AvgAmount)))

	lines := []string{header, amounts}
	for _, d := range p.Descriptions {
		lines = append(lines, f.styles.Subtle.Render("  • "+d))
	}
	return f.styles.CategoryBox.Render(strings.Join(lines, "\n"))
}
