// Package controller holds the command handlers shared by the web and
// terminal front-ends. Controllers never keep expenses between calls:
// every successful mutation is followed by a reload of the filtered list,
// and every failure is handed to a Notifier as a plain message.
package controller

import (
	"context"

	"expensedesk/internal/core"
)

// ExpenseAPI is the subset of the API client the controllers use.
type ExpenseAPI interface {
	List(ctx context.Context, f core.Filter) ([]core.Expense, error)
	Create(ctx context.Context, d core.Draft) (core.Expense, error)
	Update(ctx context.Context, id string, d core.Draft) (core.Expense, error)
	Delete(ctx context.Context, id string) error
}

// SummaryAPI fetches the aggregate summary.
type SummaryAPI interface {
	Summary(ctx context.Context) (core.Summary, error)
}

// FilterSource reads the current filter inputs.
type FilterSource interface {
	Filter() core.Filter
}

// ListView replaces whatever list is displayed with rows and total.
type ListView interface {
	ShowList(rows []core.Row, total string)
}

// SummaryView displays the summary panel.
type SummaryView interface {
	ShowSummary(total string, bars []core.CategoryBar)
}

// Notifier shows a blocking message to the user.
type Notifier interface {
	Notify(message string)
}

// Confirmer asks the user a yes/no question and waits for the answer.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ExpenseForm is the create form.
type ExpenseForm interface {
	Values() core.Draft
	Reset()
}

// EditDialog is the edit modal. The id lives in a hidden field.
type EditDialog interface {
	Fill(id string, d core.Draft)
	Values() (id string, d core.Draft)
	Show()
	Hide()
}

// FilterFunc adapts a function to FilterSource.
type FilterFunc func() core.Filter

// Filter calls f.
func (f FilterFunc) Filter() core.Filter { return f() }

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

// Confirm calls f.
func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }
