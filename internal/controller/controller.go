package controller

import (
	"context"
	"log/slog"

	"expensedesk/internal/api"
	"expensedesk/internal/core"
	"expensedesk/internal/log"
)

// DeletePrompt is the question asked before a delete.
const DeletePrompt = "Delete this expense?"

// State is the phase of a user-initiated operation.
type State int

const (
	StateIdle State = iota
	StateInFlight
	StateReloading
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateInFlight:
		return "in-flight"
	case StateReloading:
		return "reloading"
	case StateFailed:
		return "error-shown"
	default:
		return "idle"
	}
}

// StateObserver is told about every state transition, synchronously and
// in order. It must not block.
type StateObserver interface {
	StateChanged(op string, s State)
}

// Deps are the collaborators shared by all controllers.
type Deps struct {
	API      ExpenseAPI
	Filters  FilterSource
	List     ListView
	Notifier Notifier
	Observer StateObserver // optional
	Logger   *log.Logger   // optional
}

func (d Deps) logger() *log.Logger {
	if d.Logger == nil {
		return log.Nop()
	}
	return d.Logger
}

func (d Deps) transition(op string, s State) {
	if d.Observer != nil {
		d.Observer.StateChanged(op, s)
	}
}

// fail shows err to the user and ends the operation.
func (d Deps) fail(ctx context.Context, op string, err error) error {
	d.transition(op, StateFailed)
	d.logger().Log(ctx, slog.LevelWarn, "Operation failed",
		log.FieldOperation, op, log.FieldError, err.Error())
	if d.Notifier != nil {
		d.Notifier.Notify(api.Message(err))
	}
	d.transition(op, StateIdle)
	return err
}

// reload fetches the list with the current filters and redraws it. It is
// the tail of every successful mutation.
func (d Deps) reload(ctx context.Context, op string) error {
	d.transition(op, StateReloading)
	var f core.Filter
	if d.Filters != nil {
		f = d.Filters.Filter()
	}
	items, err := d.API.List(ctx, f)
	if err != nil {
		return d.fail(ctx, op, err)
	}
	d.List.ShowList(core.BuildRows(items), core.Total(items))
	d.logger().Log(ctx, slog.LevelDebug, "List rendered",
		log.FieldOperation, op, log.FieldCount, len(items))
	d.transition(op, StateIdle)
	return nil
}

// Lister loads and renders the filtered list.
type Lister struct {
	deps Deps
}

// NewLister returns a Lister.
func NewLister(deps Deps) *Lister {
	return &Lister{deps: deps}
}

// Reload fetches the list for the current filters and renders it. On
// failure the message is shown and the displayed list is left as is.
// The returned error has already been shown.
func (l *Lister) Reload(ctx context.Context) error {
	return l.deps.reload(ctx, log.OpList)
}

// Creator handles submission of the create form.
type Creator struct {
	deps Deps
	form ExpenseForm
}

// NewCreator returns a Creator for form.
func NewCreator(deps Deps, form ExpenseForm) *Creator {
	return &Creator{deps: deps, form: form}
}

// Submit sends the form. On success the form is reset and the list
// reloaded; on failure the message is shown and the form keeps its
// contents. The returned error has already been shown.
func (c *Creator) Submit(ctx context.Context) error {
	d := c.form.Values().Normalize()
	c.deps.transition(log.OpCreate, StateInFlight)
	created, err := c.deps.API.Create(ctx, d)
	if err != nil {
		return c.deps.fail(ctx, log.OpCreate, err)
	}
	c.deps.logger().Log(ctx, slog.LevelInfo, "Expense created",
		log.NewFields().WithExpense(created.IDString(), d.Category, d.Amount).WithOperation(log.OpCreate).ToSlice()...)
	c.form.Reset()
	return c.deps.reload(ctx, log.OpCreate)
}

// Editor opens and saves the edit dialog.
type Editor struct {
	deps   Deps
	dialog EditDialog
}

// NewEditor returns an Editor for dialog.
func NewEditor(deps Deps, dialog EditDialog) *Editor {
	return &Editor{deps: deps, dialog: dialog}
}

// Open loads the unfiltered list, finds id and shows the dialog filled
// with its fields. A missing id is not an error: nothing is shown and
// opened is false. A failing list call is shown to the user.
func (e *Editor) Open(ctx context.Context, id string) (opened bool, err error) {
	e.deps.transition(log.OpOpen, StateInFlight)
	items, err := e.deps.API.List(ctx, core.Filter{})
	if err != nil {
		return false, e.deps.fail(ctx, log.OpOpen, err)
	}
	e.deps.transition(log.OpOpen, StateIdle)

	item, ok := core.FindByID(items, id)
	if !ok {
		e.deps.logger().Log(ctx, slog.LevelDebug, "Expense to edit not found",
			log.FieldExpenseID, id, log.FieldOperation, log.OpOpen)
		return false, nil
	}
	e.dialog.Fill(item.IDString(), item.Draft())
	e.dialog.Show()
	return true, nil
}

// Save sends the dialog values as an update of the id in its hidden
// field. On success the dialog is hidden and the list reloaded; on
// failure the message is shown and the dialog stays open with the
// entered values. The returned error has already been shown.
func (e *Editor) Save(ctx context.Context) error {
	id, d := e.dialog.Values()
	d = d.Normalize()
	e.deps.transition(log.OpUpdate, StateInFlight)
	if _, err := e.deps.API.Update(ctx, id, d); err != nil {
		return e.deps.fail(ctx, log.OpUpdate, err)
	}
	e.deps.logger().Log(ctx, slog.LevelInfo, "Expense updated",
		log.NewFields().WithExpense(id, d.Category, d.Amount).WithOperation(log.OpUpdate).ToSlice()...)
	e.dialog.Hide()
	return e.deps.reload(ctx, log.OpUpdate)
}

// Deleter removes expenses after confirmation.
type Deleter struct {
	deps    Deps
	confirm Confirmer
}

// NewDeleter returns a Deleter asking confirm before each delete.
func NewDeleter(deps Deps, confirm Confirmer) *Deleter {
	return &Deleter{deps: deps, confirm: confirm}
}

// Remove asks for confirmation and deletes id. Declining issues no
// request and returns deleted=false. On failure the message is shown and
// the list is left as rendered. The returned error has already been
// shown.
func (d *Deleter) Remove(ctx context.Context, id string) (deleted bool, err error) {
	if d.confirm == nil || !d.confirm.Confirm(DeletePrompt) {
		return false, nil
	}
	d.deps.transition(log.OpDelete, StateInFlight)
	if err := d.deps.API.Delete(ctx, id); err != nil {
		return false, d.deps.fail(ctx, log.OpDelete, err)
	}
	d.deps.logger().Log(ctx, slog.LevelInfo, "Expense deleted",
		log.FieldExpenseID, id, log.FieldOperation, log.OpDelete)
	return true, d.deps.reload(ctx, log.OpDelete)
}

// Summarizer loads the summary panel.
type Summarizer struct {
	api      SummaryAPI
	view     SummaryView
	notifier Notifier
	logger   *log.Logger
}

// NewSummarizer returns a Summarizer.
func NewSummarizer(a SummaryAPI, view SummaryView, notifier Notifier, logger *log.Logger) *Summarizer {
	if logger == nil {
		logger = log.Nop()
	}
	return &Summarizer{api: a, view: view, notifier: notifier, logger: logger}
}

// Load fetches and shows the summary. Failures are shown like any other
// request error.
func (s *Summarizer) Load(ctx context.Context) error {
	sum, err := s.api.Summary(ctx)
	if err != nil {
		s.logger.Log(ctx, slog.LevelWarn, "Summary failed", log.FieldOperation, log.OpSummary, log.FieldError, err.Error())
		if s.notifier != nil {
			s.notifier.Notify(api.Message(err))
		}
		return err
	}
	s.view.ShowSummary(sum.Total.Fixed2(), sum.Bars())
	return nil
}
