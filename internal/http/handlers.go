package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"expensedesk/internal/controller"
	"expensedesk/internal/core"
	"expensedesk/internal/log"
)

var errTemplatesNotLoaded = errors.New("templates not loaded")

// Template data. Field names are part of the templates' contract.
type listData struct {
	Rows     []core.Row
	Total    string
	Currency string
	Filter   core.Filter
	Period   bool // dates came from a period shortcut; echo them to the filter bar
	Prompt   string
}

type modalData struct {
	ID    string
	Draft core.Draft
}

type summaryData struct {
	Total    string
	Bars     []core.CategoryBar
	Currency string
}

type indexData struct {
	List    listData
	Today   string
	Alert   string
	Periods []string
}

// requestContext detaches the controller calls from the browser: a closed
// tab must not abort an API call already in flight.
func requestContext(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}

func (s *Server) deps(v *pageView) controller.Deps {
	return controller.Deps{
		API:      s.backend,
		Filters:  v,
		List:     v,
		Notifier: v,
		Logger:   s.logger.WithComponent(log.ComponentController),
	}
}

// parse reads the form and filter bar of r. On failure it has already
// answered the request.
func (s *Server) parse(w http.ResponseWriter, r *http.Request) (*pageView, bool) {
	if err := r.ParseForm(); err != nil {
		s.logger.Log(r.Context(), slog.LevelWarn, "Parse form error",
			log.FieldError, err.Error(), log.FieldMethod, r.Method, log.FieldPath, r.URL.Path)
		ErrorNotification(http.StatusBadRequest, "Invalid request").Write(w)
		return nil, false
	}
	return newPageView(r), true
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.startedAt).String(),
	})
}

// handleReady reports whether pages can be rendered and an API is
// configured. The API itself is not probed: its failures are shown to the
// user per request.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	status := "ready"
	httpStatus := http.StatusOK
	checks := make(map[string]any)

	if s.templates == nil {
		checks["templates"] = "failed: " + errTemplatesNotLoaded.Error()
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["templates"] = "ok"
	}

	if s.apiBaseURL == "" || s.backend == nil {
		checks["api"] = "not_configured"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["api"] = s.apiBaseURL
	}

	checks["rate_limiter"] = map[string]any{
		"active_clients": s.rateLimiter.ActiveClients(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks":    checks,
	})
}

// handleIndex renders the whole page with the list for the filters in the
// URL. A failing list call still renders the page; the message is shown
// on load.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		s.logger.ErrorContext(r.Context(), "Templates not loaded", log.FieldPath, r.URL.Path)
		http.Error(w, errTemplatesNotLoaded.Error(), http.StatusInternalServerError)
		return
	}
	v, ok := s.parse(w, r)
	if !ok {
		return
	}
	_ = controller.NewLister(s.deps(v)).Reload(requestContext(r))

	data := indexData{
		List:    s.listData(v),
		Today:   timeNow().Format("2006-01-02"),
		Alert:   v.message,
		Periods: []string{core.PeriodWeek, core.PeriodMonth, core.PeriodYear},
	}
	body, err := s.render("index.html", data)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Index template execution failed", log.FieldError, err.Error())
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(body)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	v, ok := s.parse(w, r)
	if !ok {
		return
	}
	_ = controller.NewLister(s.deps(v)).Reload(requestContext(r))
	s.respond(w, r, v, false)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	v, ok := s.parse(w, r)
	if !ok {
		return
	}
	_ = controller.NewCreator(s.deps(v), v).Submit(requestContext(r))
	s.respond(w, r, v, v.formReset)
}

// handleEditOpen answers 204 for an unknown id so htmx leaves the page as
// it is.
func (s *Server) handleEditOpen(w http.ResponseWriter, r *http.Request) {
	v, ok := s.parse(w, r)
	if !ok {
		return
	}
	_, _ = controller.NewEditor(s.deps(v), editDialog{v}).Open(requestContext(r), v.pathID)
	s.respond(w, r, v, false)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	v, ok := s.parse(w, r)
	if !ok {
		return
	}
	_ = controller.NewEditor(s.deps(v), editDialog{v}).Save(requestContext(r))
	s.respond(w, r, v, v.dialogHidden)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	v, ok := s.parse(w, r)
	if !ok {
		return
	}
	deleted, _ := controller.NewDeleter(s.deps(v), v).Remove(requestContext(r), v.pathID)
	s.respond(w, r, v, deleted)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	v := &pageView{}
	_ = controller.NewSummarizer(s.backend, v, v, s.logger.WithComponent(log.ComponentController)).Load(requestContext(r))
	s.respond(w, r, v, false)
}

func (s *Server) listData(v *pageView) listData {
	return listData{
		Rows:     v.rows,
		Total:    v.total,
		Currency: s.currency,
		Filter:   v.filter,
		Period:   v.period,
		Prompt:   controller.DeletePrompt,
	}
}

// respond turns what the controllers did during the request into one
// htmx response: a body for whatever was shown, triggers for the form,
// the modal and notifications. With nothing to show or trigger it answers
// 204 so htmx swaps nothing.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, v *pageView, changed bool) {
	b := NewHTMXResponse()
	if v.formReset {
		b.TriggerFormReset()
	}
	if v.dialogHidden {
		b.TriggerModalHide()
	}
	if changed {
		b.TriggerExpensesChanged()
	}
	if v.message != "" {
		b.TriggerErrorNotification(v.message)
	}

	var (
		name string
		data any
	)
	switch {
	case v.dialogShown:
		name, data = "edit_modal.html", modalData{ID: v.dialogID, Draft: v.dialogDraft}
		b.TriggerModalShow()
	case v.listShown:
		name, data = "expense_list.html", s.listData(v)
	case v.summaryShown:
		name, data = "summary.html", summaryData{Total: v.summaryTotal, Bars: v.bars, Currency: s.currency}
	}

	if name == "" {
		if len(b.triggers) == 0 {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		b.NoSwap().Write(w)
		return
	}

	body, err := s.render(name, data)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Template execution error", log.FieldError, err.Error(), "template", name)
		ErrorNotification(http.StatusInternalServerError, "Failed to render page").Write(w)
		return
	}
	b.BodyHTML(body).Write(w)
}
