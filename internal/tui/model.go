// Package tui implements the interactive review of category suggestions.
package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/pennywise/internal/model"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Item is one transaction under review together with its ranked suggestions.
type Item struct {
	Candidates  []model.Candidate
	Transaction model.Transaction
}

// Decision is a suggestion the user accepted.
type Decision struct {
	CategoryName  string
	TransactionID int64
	CategoryID    int64
}

// Model steps through items one at a time. Accepting a candidate records a decision
// and moves on; skipping moves on without one.
type Model struct {
	theme     Theme
	keymap    KeyMap
	help      help.Model
	items     []Item
	decisions []Decision
	index     int
	cursor    int
	skipped   int
	done      bool
}

// NewModel creates a review over items.
func NewModel(items []Item) Model {
	return Model{
		theme:  DefaultTheme,
		keymap: DefaultKeyMap(),
		help:   help.New(),
		items:  items,
		done:   len(items) == 0,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.done {
		return tea.Quit
	}
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.done {
			return m, tea.Quit
		}
		switch {
		case key.Matches(msg, m.keymap.Quit):
			m.done = true
			return m, tea.Quit
		case key.Matches(msg, m.keymap.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keymap.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keymap.Down):
			if m.cursor < len(m.current().Candidates)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keymap.Accept):
			if c, ok := m.selected(); ok {
				m.decisions = append(m.decisions, Decision{
					TransactionID: m.current().Transaction.ID,
					CategoryID:    c.CategoryID,
					CategoryName:  c.CategoryName,
				})
				return m.advance()
			}
		case key.Matches(msg, m.keymap.Skip):
			m.skipped++
			return m.advance()
		}
	}
	return m, nil
}

func (m Model) advance() (tea.Model, tea.Cmd) {
	m.index++
	m.cursor = 0
	if m.index >= len(m.items) {
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) current() Item {
	return m.items[m.index]
}

func (m Model) selected() (model.Candidate, bool) {
	candidates := m.current().Candidates
	if m.cursor >= len(candidates) {
		return model.Candidate{}, false
	}
	return candidates[m.cursor], true
}

// Decisions returns the accepted suggestions in review order.
func (m Model) Decisions() []Decision {
	return m.decisions
}

// Skipped returns how many transactions were skipped.
func (m Model) Skipped() int {
	return m.skipped
}

// View implements tea.Model.
func (m Model) View() string {
	if m.done {
		return ""
	}

	item := m.current()
	txn := item.Transaction

	var b strings.Builder
	b.WriteString(m.theme.Title.Render(fmt.Sprintf("Transaction %d of %d", m.index+1, len(m.items))))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		m.theme.Normal.Render(txn.Description),
		"  ",
		m.theme.Amount.Render(txn.SignedAmount().StringFixed(2)),
	))
	b.WriteString("\n\n")

	if len(item.Candidates) == 0 {
		b.WriteString(m.theme.Muted.Render("No suggestions, press s to skip"))
	}
	for i, c := range item.Candidates {
		line := fmt.Sprintf("%s (%.0f%%)", c.CategoryName, c.Confidence*100)
		keywords := m.theme.Keywords.Render(strings.Join(c.MatchedKeywords, ", "))
		if i == m.cursor {
			b.WriteString(m.theme.Selected.Render("> "+line) + "  " + keywords)
		} else {
			b.WriteString(m.theme.Normal.Render("  "+line) + "  " + keywords)
		}
		b.WriteString("\n")
	}

	return m.theme.Box.Render(b.String()) + "\n" + m.help.View(m.keymap)
}
