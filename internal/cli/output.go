package cli

import (
	"fmt"
	"strings"

	"github.com/Veraticus/pennywise/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// FormatCandidates renders ranked suggestions as a table.
func FormatCandidates(description string, candidates []model.Candidate) string {
	if len(candidates) == 0 {
		return FormatWarning(fmt.Sprintf("No suggestions for %q", description))
	}

	rows := []string{lipgloss.JoinHorizontal(lipgloss.Top,
		TableHeaderStyle.Width(18).Render("Category"),
		TableHeaderStyle.Width(10).Render("Type"),
		TableHeaderStyle.Width(7).Render("Score"),
		TableHeaderStyle.Width(12).Render("Confidence"),
		TableHeaderStyle.Render("Keywords"),
	)}
	for _, c := range candidates {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top,
			TableCellStyle.Width(18).Render(c.CategoryName),
			TableCellStyle.Width(10).Render(string(c.CategoryType)),
			TableCellStyle.Width(7).Render(fmt.Sprint(c.Score)),
			TableCellStyle.Width(12).Render(fmt.Sprintf("%.0f%%", c.Confidence*100)),
			SubtleStyle.Render(strings.Join(c.MatchedKeywords, ", ")),
		))
	}
	return RenderBox(TagIcon+" "+description, strings.Join(rows, "\n"))
}

// FormatCategory renders a resolved category, or a warning when there is none.
func FormatCategory(description string, cat *model.Category) string {
	if cat == nil {
		return FormatWarning(fmt.Sprintf("Could not categorize %q", description))
	}
	return FormatSuccess(fmt.Sprintf("%s → %s (%s, id %d)", description, BoldStyle.Render(cat.Name), cat.Type, cat.ID))
}

// FormatBatchResult renders the per-transaction outcome and totals of a batch.
func FormatBatchResult(result *model.BatchResult, applied bool) string {
	var lines []string
	for _, d := range result.Details {
		if d.Status == model.StatusCategorized {
			lines = append(lines, SuccessStyle.Render(fmt.Sprintf("%s #%d %s → %s", SuccessIcon, d.TransactionID, d.Description, d.SuggestedCategory)))
		} else {
			lines = append(lines, SubtleStyle.Render(fmt.Sprintf("%s #%d %s", ErrorIcon, d.TransactionID, d.Description)))
		}
	}

	summary := fmt.Sprintf("Processed: %d\nCategorized: %s\nUncategorized: %s",
		result.TotalProcessed,
		SuccessStyle.Render(fmt.Sprint(result.Categorized)),
		WarningStyle.Render(fmt.Sprint(result.Uncategorized)))
	if !applied {
		summary += "\n" + InfoStyle.Render("Dry run: no changes were saved")
	}

	title := ChartIcon + " Batch categorization"
	if len(lines) == 0 {
		return RenderBox(title, summary)
	}
	return strings.Join(lines, "\n") + "\n\n" + RenderBox(title, summary)
}

// FormatCategories renders a category listing.
func FormatCategories(categories []model.Category) string {
	if len(categories) == 0 {
		return FormatWarning("No categories found. Run 'pennywise migrate' to seed the defaults.")
	}

	rows := []string{lipgloss.JoinHorizontal(lipgloss.Top,
		TableHeaderStyle.Width(6).Render("ID"),
		TableHeaderStyle.Width(18).Render("Name"),
		TableHeaderStyle.Width(10).Render("Type"),
		TableHeaderStyle.Render("Owner"),
	)}
	for _, c := range categories {
		owner := "default"
		if c.UserID != nil {
			owner = fmt.Sprintf("user %d", *c.UserID)
		}
		name := c.Name
		if c.Color != "" {
			name = lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color)).Render(c.Name)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top,
			TableCellStyle.Width(6).Render(fmt.Sprint(c.ID)),
			TableCellStyle.Width(18).Render(name),
			TableCellStyle.Width(10).Render(string(c.Type)),
			SubtleStyle.Render(owner),
		))
	}
	return strings.Join(rows, "\n")
}
