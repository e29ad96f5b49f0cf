package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/erazemk/partstock/internal/controller"
	"github.com/erazemk/partstock/internal/model"
)

const (
	nameWidth  = 28
	aliasWidth = 24
	countWidth = 10
	priceWidth = 12
)

// View renders the whole screen.
func (m *Model) View() string {
	width := m.width
	if width == 0 {
		width = 100
	}

	var b strings.Builder

	b.WriteString(HeaderStyle.Render("PARTSTOCK"))
	if m.state.Loading {
		b.WriteString("  " + DimStyle.Render("loading..."))
	}
	b.WriteString("\n\n")

	b.WriteString(m.box(focusSearch, m.search.View()))
	b.WriteString("\n")
	b.WriteString(m.renderFilters())
	b.WriteString("\n\n")

	b.WriteString(m.renderForm())
	b.WriteString("\n")

	b.WriteString(DimStyle.Render(strings.Repeat("─", min(width-2, nameWidth+aliasWidth+2*countWidth+priceWidth+6))))
	b.WriteString("\n")
	b.WriteString(m.renderTable())
	b.WriteString("\n")

	if m.confirming != nil {
		b.WriteString(PromptStyle.Render(controller.DeletePrompt(*m.confirming)))
		b.WriteString(DimStyle.Render("  y confirm   any other key cancel"))
		b.WriteString("\n")
	}

	b.WriteString(m.renderNotifications())
	b.WriteString("\n")
	b.WriteString(DimStyle.Render("tab focus   ctrl+s " + strings.ToLower(m.state.SubmitLabel()) +
		"   ctrl+r reset   ctrl+l low stock   ctrl+n no vehicle stock   enter select   d delete   ctrl+c quit"))

	return b.String()
}

func (m *Model) box(f focus, content string) string {
	if m.focus == f {
		return FocusedBoxStyle.Render(content)
	}
	return BoxStyle.Render(content)
}

func checkbox(on bool, label string) string {
	if on {
		return SelectedStyle.Render("[x] " + label)
	}
	return NormalLabelStyle.Render("[ ] " + label)
}

func (m *Model) renderFilters() string {
	f := m.state.Filters
	return checkbox(f.LowStock, "low stock") + "   " + checkbox(f.NoVehicleStock, "no vehicle stock")
}

func (m *Model) renderForm() string {
	var b strings.Builder

	title := "NEW PART"
	if m.state.Editing() {
		title = fmt.Sprintf("EDIT PART #%d", m.state.Draft.ID)
	}
	b.WriteString(HeaderStyle.Render(title))
	b.WriteString("\n")

	labelStyle := lipgloss.NewStyle().Width(18)
	for i, f := range formFields {
		label := labelStyle.Render(fieldLabels[f])
		if m.focus == focusName+focus(i) {
			b.WriteString(SelectedStyle.Render("> ") + SelectedLabelStyle.Render(label))
		} else {
			b.WriteString("  " + NormalLabelStyle.Render(label))
		}
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}

	b.WriteString("  " + SelectedLabelStyle.Render("["+m.state.SubmitLabel()+"]"))
	b.WriteString("  " + DimStyle.Render("[Reset]"))
	b.WriteString("\n")
	return b.String()
}

func cell(s string, w int) string {
	return lipgloss.NewStyle().Width(w).MaxWidth(w).Render(s)
}

func formatCount(c model.Count) string {
	if !c.Set {
		return "-"
	}
	return humanize.Comma(c.N)
}

func (m *Model) renderTable() string {
	var b strings.Builder

	header := "  " + cell("NAME", nameWidth) + cell("ALIASES", aliasWidth) +
		cell("VEHICLE", countWidth) + cell("WAREHOUSE", countWidth) + cell("PRICE", priceWidth)
	b.WriteString(HeaderStyle.Render(header))
	b.WriteString("\n")

	rows := m.state.Visible
	if len(rows) == 0 {
		if m.state.Search != "" {
			b.WriteString(DimStyle.Render(fmt.Sprintf("  No parts match %q", m.state.Search)))
		} else {
			b.WriteString(DimStyle.Render("  No parts"))
		}
		b.WriteString("\n")
		return b.String()
	}

	for i, p := range rows {
		line := cell(p.Name, nameWidth) + cell(model.JoinAliases(p.Aliases), aliasWidth) +
			cell(formatCount(p.VehicleStock), countWidth) +
			cell(formatCount(p.WarehouseStock), countWidth) +
			cell(formatCount(p.Price), priceWidth)

		selected := m.focus == focusTable && i == m.cursor
		switch {
		case p.ID == m.state.Highlighted:
			line = HighlightStyle.Render(line)
		case selected:
			line = SelectedLabelStyle.Render(line)
		}
		if selected {
			b.WriteString(SelectedStyle.Render("> "))
		} else {
			b.WriteString("  ")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString(DimStyle.Render(fmt.Sprintf("  %d of %d parts", len(rows), len(m.state.Records))))
	b.WriteString("\n")
	return b.String()
}

func (m *Model) renderNotifications() string {
	now := time.Now()
	var lines []string
	for _, n := range m.center.Active() {
		style := notificationStyle(n.Kind)
		if n.Dismissing(now) {
			style = style.Faint(true)
		}
		lines = append(lines, style.Render("● "+n.Message))
	}
	return strings.Join(lines, "\n")
}
