package http

import (
	"net/http"
	"net/url"

	"expensedesk/internal/controller"
	"expensedesk/internal/core"
)

// pageView is the browser as seen by the controllers during one request.
// It implements every port and records what the controllers asked for;
// the handler turns the record into a single htmx response.
type pageView struct {
	form   url.Values
	pathID string
	filter core.Filter
	period bool

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
}

var (
	_ controller.FilterSource = (*pageView)(nil)
	_ controller.ListView     = (*pageView)(nil)
	_ controller.SummaryView  = (*pageView)(nil)
	_ controller.Notifier     = (*pageView)(nil)
	_ controller.Confirmer    = (*pageView)(nil)
	_ controller.ExpenseForm  = (*pageView)(nil)
	_ controller.EditDialog   = editDialog{}
)

// newPageView reads the submitted form and filter bar of r. r.ParseForm
// must have been called.
func newPageView(r *http.Request) *pageView {
	f, period := filterFromRequest(r)
	return &pageView{
		form:   r.Form,
		pathID: r.PathValue(fieldID),
		filter: f,
		period: period,
	}
}

func (v *pageView) Filter() core.Filter { return v.filter }

func (v *pageView) ShowList(rows []core.Row, total string) {
	v.listShown = true
	v.rows = rows
	v.total = total
}

func (v *pageView) ShowSummary(total string, bars []core.CategoryBar) {
	v.summaryShown = true
	v.summaryTotal = total
	v.bars = bars
}

// Notify keeps the first message; an operation shows at most one.
func (v *pageView) Notify(message string) {
	if v.message == "" {
		v.message = message
	}
}

// Confirm is answered by the browser before the request is sent: the
// delete button asks with hx-confirm and then adds confirmed=true.
func (v *pageView) Confirm(string) bool { return isConfirmed(v.form) }

func (v *pageView) Values() core.Draft { return draftFromForm(v.form) }

func (v *pageView) Reset() { v.formReset = true }

func (v *pageView) Fill(id string, d core.Draft) {
	v.dialogID = id
	v.dialogDraft = d
}

// dialogValues is EditDialog.Values. The id comes from the hidden field,
// falling back to the URL when a client omits it.
func (v *pageView) dialogValues() (string, core.Draft) {
	id := v.form.Get(fieldID)
	if id == "" {
		id = v.pathID
	}
	return id, draftFromForm(v.form)
}

func (v *pageView) Show() { v.dialogShown = true }
func (v *pageView) Hide() { v.dialogHidden = true }

// editDialog adapts pageView to controller.EditDialog, whose Values
// signature differs from ExpenseForm's.
type editDialog struct{ *pageView }

func (d editDialog) Values() (string, core.Draft) { return d.dialogValues() }
