// Package tui is the terminal front-end. The bubbletea Update loop is the
// only place the model changes; controllers run inside tea.Cmds against
// a capture and their outcome comes back as a resultMsg.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"expensedesk/internal/controller"
	"expensedesk/internal/core"
	"expensedesk/internal/log"
)

// Backend is the expenses API as used by the terminal front-end.
type Backend interface {
	controller.ExpenseAPI
	controller.SummaryAPI
}

// Config holds the display settings.
type Config struct {
	Currency string
	Logger   *log.Logger
	Now      func() time.Time // defaults to time.Now
}

type mode int

const (
	modeBrowse mode = iota
	modeCreate
	modeEdit
	modeFilter
	modeConfirmDelete
)

// App is the bubbletea model.
type App struct {
	ctx      context.Context
	backend  Backend
	logger   *log.Logger
	currency string
	now      func() time.Time

	mode        mode
	form        form
	createDraft core.Draft // create form contents kept across esc
	editID      string
	deleteID    string

	filter core.Filter
	rows   []core.Row
	total  string
	cursor int
	loaded bool

	showSummary  bool
	summaryTotal string
	bars         []core.CategoryBar

	alert   string
	pending int
	width   int
}

// New returns the model. Calls to the API use ctx.
func New(ctx context.Context, backend Backend, cfg Config) *App {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Nop()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	a := &App{
		ctx:      ctx,
		backend:  backend,
		logger:   logger.WithComponent(log.ComponentTUI),
		currency: cfg.Currency,
		now:      now,
		total:    "0.00",
	}
	a.createDraft = a.blankDraft()
	return a
}

func (a *App) blankDraft() core.Draft {
	return core.Draft{Date: a.now().Format("2006-01-02")}
}

func (a *App) Init() tea.Cmd {
	return a.reloadCmd()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
	case resultMsg:
		return a, a.apply(m)
	case tea.KeyMsg:
		if m.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}
		// The alert is modal: the next key only dismisses it.
		if a.alert != "" {
			a.alert = ""
			return a, nil
		}
		switch a.mode {
		case modeConfirmDelete:
			return a, a.handleConfirmKey(m)
		case modeCreate, modeEdit, modeFilter:
			return a, a.handleFormKey(m)
		default:
			return a.handleBrowseKey(m)
		}
	}
	return a, nil
}

func (a *App) handleBrowseKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "q":
		return a, tea.Quit
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(a.rows)-1 {
			a.cursor++
		}
	case "a":
		a.mode = modeCreate
		a.form = expenseForm("New expense", a.createDraft)
	case "e":
		if row, ok := a.selected(); ok {
			return a, a.openCmd(row.ID)
		}
	case "d":
		if row, ok := a.selected(); ok {
			a.deleteID = row.ID
			a.mode = modeConfirmDelete
		}
	case "f":
		a.mode = modeFilter
		a.form = filterForm(a.filter)
	case "r":
		return a, a.reloadCmd()
	case "s":
		a.showSummary = !a.showSummary
		if a.showSummary {
			return a, a.summaryCmd()
		}
	case "w":
		return a, a.applyPeriod(core.PeriodWeek)
	case "m":
		return a, a.applyPeriod(core.PeriodMonth)
	case "y":
		return a, a.applyPeriod(core.PeriodYear)
	case "c":
		a.filter = core.Filter{}
		return a, a.reloadCmd()
	}
	return a, nil
}

// handleConfirmKey answers the delete prompt. Declining sends nothing.
func (a *App) handleConfirmKey(m tea.KeyMsg) tea.Cmd {
	switch m.String() {
	case "y", "Y":
		a.mode = modeBrowse
		return a.deleteCmd(a.deleteID)
	case "n", "N", "esc":
		a.mode = modeBrowse
		a.deleteID = ""
	}
	return nil
}

func (a *App) handleFormKey(m tea.KeyMsg) tea.Cmd {
	switch m.Type {
	case tea.KeyEsc:
		if a.mode == modeCreate {
			a.createDraft = a.form.draft()
		}
		a.mode = modeBrowse
		return nil
	case tea.KeyEnter:
		switch a.mode {
		case modeCreate:
			a.createDraft = a.form.draft()
			return a.createCmd(a.createDraft)
		case modeEdit:
			return a.saveCmd(a.editID, a.form.draft())
		case modeFilter:
			a.filter = a.form.filter()
			a.mode = modeBrowse
			return a.reloadCmd()
		}
		return nil
	}
	a.form.edit(m)
	return nil
}

func (a *App) applyPeriod(period string) tea.Cmd {
	a.filter = a.filter.WithPeriod(period, a.now())
	return a.reloadCmd()
}

func (a *App) selected() (core.Row, bool) {
	if a.cursor < 0 || a.cursor >= len(a.rows) {
		return core.Row{}, false
	}
	return a.rows[a.cursor], true
}

// apply folds a controller outcome into the model.
func (a *App) apply(r resultMsg) tea.Cmd {
	if a.pending > 0 {
		a.pending--
	}
	if r.listShown {
		a.rows = r.rows
		a.total = r.total
		a.loaded = true
		if a.cursor >= len(a.rows) {
			a.cursor = max(len(a.rows)-1, 0)
		}
	}
	if r.summaryShown {
		a.summaryTotal = r.summaryTotal
		a.bars = r.bars
	}
	if r.formReset {
		a.createDraft = a.blankDraft()
		if a.mode == modeCreate {
			a.mode = modeBrowse
		}
	}
	if r.dialogShown {
		a.editID = r.dialogID
		a.form = expenseForm("Edit expense", r.dialogDraft)
		a.mode = modeEdit
	}
	if r.dialogHidden && a.mode == modeEdit {
		a.mode = modeBrowse
	}
	if r.message != "" {
		a.alert = r.message
	}

	switch r.op {
	case log.OpCreate, log.OpUpdate, log.OpDelete:
		if r.err == nil && a.showSummary {
			return a.summaryCmd()
		}
	}
	return nil
}

// run starts a controller call off the loop. Everything the call reads
// is copied into c and deps before the Cmd is returned.
func (a *App) run(op string, c *capture, call func(ctx context.Context, deps controller.Deps) error) tea.Cmd {
	a.pending++
	ctx := a.ctx
	deps := controller.Deps{
		API:      a.backend,
		Filters:  c,
		List:     c,
		Notifier: c,
		Logger:   a.logger,
	}
	return func() tea.Msg {
		c.res.op = op
		c.res.err = call(ctx, deps)
		return c.res
	}
}

func (a *App) reloadCmd() tea.Cmd {
	c := &capture{filter: a.filter}
	return a.run(log.OpList, c, func(ctx context.Context, deps controller.Deps) error {
		return controller.NewLister(deps).Reload(ctx)
	})
}

func (a *App) createCmd(d core.Draft) tea.Cmd {
	c := &capture{filter: a.filter, draft: d}
	return a.run(log.OpCreate, c, func(ctx context.Context, deps controller.Deps) error {
		return controller.NewCreator(deps, c).Submit(ctx)
	})
}

func (a *App) openCmd(id string) tea.Cmd {
	c := &capture{filter: a.filter}
	return a.run(log.OpOpen, c, func(ctx context.Context, deps controller.Deps) error {
		_, err := controller.NewEditor(deps, dialogCapture{c}).Open(ctx, id)
		return err
	})
}

func (a *App) saveCmd(id string, d core.Draft) tea.Cmd {
	c := &capture{filter: a.filter, draft: d, editID: id}
	return a.run(log.OpUpdate, c, func(ctx context.Context, deps controller.Deps) error {
		return controller.NewEditor(deps, dialogCapture{c}).Save(ctx)
	})
}

// deleteCmd runs after the user said yes on the loop, so the controller's
// own confirmation always passes.
func (a *App) deleteCmd(id string) tea.Cmd {
	c := &capture{filter: a.filter}
	return a.run(log.OpDelete, c, func(ctx context.Context, deps controller.Deps) error {
		yes := controller.ConfirmFunc(func(string) bool { return true })
		_, err := controller.NewDeleter(deps, yes).Remove(ctx, id)
		return err
	})
}

func (a *App) summaryCmd() tea.Cmd {
	c := &capture{}
	a.pending++
	ctx, backend, logger := a.ctx, a.backend, a.logger
	return func() tea.Msg {
		c.res.op = log.OpSummary
		c.res.err = controller.NewSummarizer(backend, c, c, logger).Load(ctx)
		return c.res
	}
}
