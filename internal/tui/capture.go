package tui

import (
	"expensedesk/internal/controller"
	"expensedesk/internal/core"
)

// capture is the terminal as seen by a controller running inside a
// tea.Cmd. Its inputs are snapshots taken on the Update loop; what the
// controller shows is recorded and sent back as a resultMsg, so the
// model is never touched off the loop.
type capture struct {
	filter core.Filter
	draft  core.Draft
	editID string

	res resultMsg
}

// resultMsg is the outcome of one controller call.
type resultMsg struct {
	op string

	listShown bool
	rows      []core.Row
	total     string

	summaryShown bool
	summaryTotal string
	bars         []core.CategoryBar

	formReset bool

	dialogShown  bool
	dialogHidden bool
	dialogID     string
	dialogDraft  core.Draft

	message string
	err     error
}

var (
	_ controller.FilterSource = (*capture)(nil)
	_ controller.ListView     = (*capture)(nil)
	_ controller.SummaryView  = (*capture)(nil)
	_ controller.Notifier     = (*capture)(nil)
	_ controller.ExpenseForm  = (*capture)(nil)
	_ controller.EditDialog   = dialogCapture{}
)

func (c *capture) Filter() core.Filter { return c.filter }

func (c *capture) ShowList(rows []core.Row, total string) {
	c.res.listShown = true
	c.res.rows = rows
	c.res.total = total
}

func (c *capture) ShowSummary(total string, bars []core.CategoryBar) {
	c.res.summaryShown = true
	c.res.summaryTotal = total
	c.res.bars = bars
}

func (c *capture) Notify(message string) {
	if c.res.message == "" {
		c.res.message = message
	}
}

func (c *capture) Values() core.Draft { return c.draft }
func (c *capture) Reset()             { c.res.formReset = true }

// dialogCapture adapts capture to controller.EditDialog.
type dialogCapture struct{ *capture }

func (d dialogCapture) Fill(id string, draft core.Draft) {
	d.res.dialogID = id
	d.res.dialogDraft = draft
}

func (d dialogCapture) Values() (string, core.Draft) { return d.editID, d.draft }
func (d dialogCapture) Show()                        { d.res.dialogShown = true }
func (d dialogCapture) Hide()                        { d.res.dialogHidden = true }
