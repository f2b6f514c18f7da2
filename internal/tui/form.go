package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"expensedesk/internal/core"
)

type field struct {
	label string
	value string
}

// form is a list of single-line text fields with one focused.
type form struct {
	title  string
	fields []field
	focus  int
}

func expenseForm(title string, d core.Draft) form {
	return form{
		title: title,
		fields: []field{
			{label: "Category", value: d.Category},
			{label: "Amount", value: d.Amount},
			{label: "Date", value: d.Date},
			{label: "Note", value: d.Note},
		},
	}
}

func filterForm(f core.Filter) form {
	return form{
		title: "Filters",
		fields: []field{
			{label: "Category", value: f.Category},
			{label: "Search", value: f.Search},
			{label: "From", value: f.From},
			{label: "To", value: f.To},
		},
	}
}

func (f form) value(i int) string {
	if i < 0 || i >= len(f.fields) {
		return ""
	}
	return f.fields[i].value
}

func (f form) draft() core.Draft {
	return core.Draft{
		Category: f.value(0),
		Amount:   f.value(1),
		Date:     f.value(2),
		Note:     f.value(3),
	}
}

func (f form) filter() core.Filter {
	return core.Filter{
		Category: f.value(0),
		Search:   f.value(1),
		From:     f.value(2),
		To:       f.value(3),
	}
}

// edit applies a key to the focused field. It reports false for keys it
// does not handle.
func (f *form) edit(m tea.KeyMsg) bool {
	if len(f.fields) == 0 {
		return false
	}
	switch m.Type {
	case tea.KeyTab, tea.KeyDown:
		f.focus = (f.focus + 1) % len(f.fields)
	case tea.KeyShiftTab, tea.KeyUp:
		f.focus = (f.focus - 1 + len(f.fields)) % len(f.fields)
	case tea.KeyBackspace:
		v := []rune(f.fields[f.focus].value)
		if len(v) > 0 {
			f.fields[f.focus].value = string(v[:len(v)-1])
		}
	case tea.KeyCtrlU:
		f.fields[f.focus].value = ""
	case tea.KeySpace:
		f.fields[f.focus].value += " "
	case tea.KeyRunes:
		f.fields[f.focus].value += string(m.Runes)
	default:
		return false
	}
	return true
}

func (f form) String() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(f.title))
	b.WriteByte('\n')
	for i, fl := range f.fields {
		label := labelStyle.Render(fl.label + ":")
		value := fl.value
		if i == f.focus {
			value = focusStyle.Render(value + "_")
		}
		b.WriteString(label + " " + value + "\n")
	}
	b.WriteString(helpStyle.Render("tab next field · enter submit · esc cancel"))
	return b.String()
}
