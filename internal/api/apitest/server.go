// Package apitest provides an in-memory stand-in for the expenses API,
// served over httptest, for tests of the client and the front-ends.
package apitest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"

	"expensedesk/internal/core"
)

// Request is one call received by the fake.
type Request struct {
	Method string
	Path   string
	Query  string
	Body   string
	Header http.Header
}

type failure struct {
	status int
	body   string
}

// Server is a fake expenses API. It keeps records in memory, lists them
// date descending then id descending, and validates like the real service
// (category required, amount greater than zero).
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	items    []core.Expense
	nextID   int64
	requests []Request
	failures map[string][]failure
}

// NewServer starts a fake seeded with items and closes it when t ends.
func NewServer(t testing.TB, seed ...core.Expense) *Server {
	t.Helper()
	s := &Server{failures: make(map[string][]failure), nextID: 1}
	for _, e := range seed {
		s.items = append(s.items, e)
		if e.ID >= s.nextID {
			s.nextID = e.ID + 1
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/expenses", s.handleList)
	mux.HandleFunc("POST /api/expenses", s.handleCreate)
	mux.HandleFunc("PUT /api/expenses/{id}", s.handleUpdate)
	mux.HandleFunc("DELETE /api/expenses/{id}", s.handleDelete)
	mux.HandleFunc("GET /api/summary", s.handleSummary)

	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(strings.NewReader(string(body)))

		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Body:   string(body),
			Header: r.Header.Clone(),
		})
		key := r.Method + " " + r.URL.Path
		var f *failure
		if queue := s.failures[key]; len(queue) > 0 {
			f = &queue[0]
			s.failures[key] = queue[1:]
		}
		s.mu.Unlock()

		if f != nil {
			w.WriteHeader(f.status)
			_, _ = w.Write([]byte(f.body))
			return
		}
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(s.Close)
	return s
}

// FailNext makes the next request matching method and path answer with
// status and a raw body instead of being served.
func (s *Server) FailNext(method, path string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := method + " " + path
	s.failures[key] = append(s.failures[key], failure{status: status, body: body})
}

// Requests returns the calls received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// CountRequests returns how many calls used method.
func (s *Server) CountRequests(method string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Method == method {
			n++
		}
	}
	return n
}

// Items returns the stored records in list order.
func (s *Server) Items() []core.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedLocked()
}

func (s *Server) sortedLocked() []core.Expense {
	out := append([]core.Expense(nil), s.items...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	category := q.Get("category")
	search := strings.ToLower(q.Get("q"))
	from, to := q.Get("from"), q.Get("to")

	s.mu.Lock()
	all := s.sortedLocked()
	s.mu.Unlock()

	out := make([]core.Expense, 0, len(all))
	for _, e := range all {
		if category != "" && e.Category != category {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(e.Category), search) &&
			!strings.Contains(strings.ToLower(e.Note), search) {
			continue
		}
		if from != "" && e.Date < from {
			continue
		}
		if to != "" && e.Date > to {
			continue
		}
		out = append(out, e)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var d core.Draft
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid JSON"})
		return
	}
	if msg := validate(d); msg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}

	s.mu.Lock()
	e := core.Expense{
		ID:       s.nextID,
		Category: strings.TrimSpace(d.Category),
		Amount:   core.NewAmount(strings.TrimSpace(d.Amount)),
		Date:     strings.TrimSpace(d.Date),
		Note:     strings.TrimSpace(d.Note),
	}
	s.nextID++
	s.items = append(s.items, e)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, e)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var d core.Draft
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid JSON"})
		return
	}
	if msg := validate(d); msg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(r.PathValue("id"))
	if i < 0 {
		notFound(w)
		return
	}
	s.items[i].Category = strings.TrimSpace(d.Category)
	s.items[i].Amount = core.NewAmount(strings.TrimSpace(d.Amount))
	if date := strings.TrimSpace(d.Date); date != "" {
		s.items[i].Date = date
	}
	s.items[i].Note = strings.TrimSpace(d.Note)
	writeJSON(w, http.StatusOK, s.items[i])
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := r.PathValue("id")
	i := s.indexLocked(id)
	if i < 0 {
		notFound(w)
		return
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	n, _ := strconv.ParseInt(id, 10, 64)
	writeJSON(w, http.StatusOK, map[string]any{"status": "deleted", "id": n})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	items := append([]core.Expense(nil), s.items...)
	s.mu.Unlock()

	byCat := map[string]core.Amount{}
	groups := map[string][]core.Expense{}
	for _, e := range items {
		groups[e.Category] = append(groups[e.Category], e)
	}
	for name, g := range groups {
		byCat[name] = core.NewAmount(core.Sum(g).String())
	}
	writeJSON(w, http.StatusOK, core.Summary{
		Total:      core.NewAmount(core.Sum(items).String()),
		ByCategory: byCat,
	})
}

func (s *Server) indexLocked(id string) int {
	for i, e := range s.items {
		if e.IDString() == id {
			return i
		}
	}
	return -1
}

func validate(d core.Draft) string {
	if strings.TrimSpace(d.Category) == "" {
		return "Category is required"
	}
	if !core.NewAmount(d.Amount).Decimal().IsPositive() {
		return "Amount must be greater than 0"
	}
	return ""
}

func notFound(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte("<h1>Not Found</h1>"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
