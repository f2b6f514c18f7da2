package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"expensedesk/internal/controller"
	"expensedesk/internal/core"
)

const barWidth = 30

func (a *App) View() string {
	sections := []string{a.renderHeader(), a.renderTable()}
	if a.showSummary {
		sections = append(sections, a.renderSummary())
	}
	switch a.mode {
	case modeCreate, modeEdit, modeFilter:
		sections = append(sections, panelStyle.Render(a.form.String()))
	case modeConfirmDelete:
		sections = append(sections, panelStyle.Render(controller.DeletePrompt+" (y/n)"))
	}
	if a.alert != "" {
		sections = append(sections, alertStyle.Render(a.alert+"\n"+helpStyle.Render("press any key")))
	}
	sections = append(sections, helpStyle.Render(
		"a add · e edit · d delete · f filters · w/m/y week/month/year · c clear · r reload · s summary · q quit"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (a *App) renderHeader() string {
	title := titleStyle.Render("expensedesk")
	if a.pending > 0 {
		title += " " + mutedStyle.Render("loading…")
	}
	return title + "\n" + mutedStyle.Render(describeFilter(a.filter))
}

func describeFilter(f core.Filter) string {
	f = f.Normalize()
	if f.IsZero() {
		return "all expenses"
	}
	var parts []string
	if f.Category != "" {
		parts = append(parts, "category="+f.Category)
	}
	if f.Search != "" {
		parts = append(parts, fmt.Sprintf("search=%q", f.Search))
	}
	if f.From != "" {
		parts = append(parts, "from "+f.From)
	}
	if f.To != "" {
		parts = append(parts, "to "+f.To)
	}
	return strings.Join(parts, " · ")
}

func (a *App) renderTable() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("  %-4s %-10s %-16s %12s  %s", "#", "Date", "Category", "Amount", "Note")))
	b.WriteByte('\n')
	if len(a.rows) == 0 {
		if a.loaded {
			b.WriteString(mutedStyle.Render("  No expenses."))
		} else {
			b.WriteString(mutedStyle.Render("  Loading…"))
		}
		b.WriteByte('\n')
	}
	for i, r := range a.rows {
		line := fmt.Sprintf("%-4d %-10s %-16s %12s  %s", r.Index, r.Date, truncate(r.Category, 16), a.currency+r.Amount, r.Note)
		if i == a.cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteByte('\n')
	}
	b.WriteString(totalStyle.Render("Total: " + a.total))
	return b.String()
}

func (a *App) renderSummary() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Summary"))
	b.WriteByte('\n')
	if a.summaryTotal == "" {
		b.WriteString(mutedStyle.Render("Loading…"))
		return panelStyle.Render(b.String())
	}
	b.WriteString("Total: " + a.summaryTotal)
	for _, bar := range a.bars {
		n := bar.Width * barWidth / 100
		b.WriteString(fmt.Sprintf("\n%-16s %s %s", truncate(bar.Name, 16),
			barStyle.Render(strings.Repeat("█", n)+strings.Repeat(" ", barWidth-n)), bar.Amount))
	}
	return panelStyle.Render(b.String())
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
