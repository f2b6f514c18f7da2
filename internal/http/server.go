package http

import (
	"bytes"
	"context"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"expensedesk/internal/controller"
	"expensedesk/internal/log"
	"expensedesk/internal/middleware/ratelimit"
	"expensedesk/internal/middleware/security"
	"expensedesk/internal/middleware/trace"
	appweb "expensedesk/web"
)

// Backend is the expenses API as used by the web front-end.
type Backend interface {
	controller.ExpenseAPI
	controller.SummaryAPI
}

// Config holds the server settings.
type Config struct {
	Addr       string
	Currency   string
	APIBaseURL string // reported by /readyz
	Logger     *log.Logger
	RateLimit  ratelimit.Config

	// Templates and Static default to the embedded web assets.
	Templates fs.FS
	Static    fs.FS
}

type Server struct {
	http.Server
	templates   *template.Template
	backend     Backend
	currency    string
	apiBaseURL  string
	logger      *log.Logger
	rateLimiter *ratelimit.Limiter
	startedAt   time.Time

	shutdownOnce sync.Once
}

// NewServer configures routes, middleware and templates, returning a
// ready-to-run server. Template errors are logged and reported by
// /readyz rather than failing construction.
func NewServer(cfg Config, backend Backend) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Nop()
	}
	logger = logger.WithComponent(log.ComponentHTTP)
	if cfg.Templates == nil {
		cfg.Templates = appweb.TemplatesFS
	}
	if cfg.Static == nil {
		cfg.Static = appweb.StaticFS
	}

	s := &Server{
		backend:     backend,
		currency:    cfg.Currency,
		apiBaseURL:  cfg.APIBaseURL,
		logger:      logger,
		rateLimiter: ratelimit.NewLimiter(cfg.RateLimit),
		startedAt:   time.Now(),
	}

	t, err := template.New("").Funcs(templateFuncs).ParseFS(cfg.Templates, "templates/*.html")
	if err != nil {
		logger.Warn("Failed parsing templates", log.FieldError, err.Error())
	} else {
		s.templates = t
	}

	mux := http.NewServeMux()
	if sub, err := fs.Sub(cfg.Static, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("GET /static/", security.StaticAssetMiddleware(3600)(static))
	} else {
		logger.Warn("Failed to mount embedded static FS", log.FieldError, err.Error())
	}

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /ui/expenses", s.handleList)
	mux.HandleFunc("POST /ui/expenses", s.handleCreate)
	mux.HandleFunc("GET /ui/expenses/{id}/edit", s.handleEditOpen)
	mux.HandleFunc("PUT /ui/expenses/{id}", s.handleUpdate)
	mux.HandleFunc("DELETE /ui/expenses/{id}", s.handleDelete)
	mux.HandleFunc("GET /ui/summary", s.handleSummary)

	resolver := security.NewIPResolver()
	limited := s.rateLimiter.Middleware(resolver.ClientIP, func(w http.ResponseWriter, r *http.Request) {
		s.logger.Log(r.Context(), slog.LevelWarn, "Rate limit exceeded",
			log.FieldClientIP, resolver.ClientIP(r), log.FieldMethod, r.Method, log.FieldPath, r.URL.Path)
		ErrorNotification(http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.").Write(w)
	})

	var handler http.Handler = mux
	handler = log.Middleware(logger)(handler)
	handler = limited(handler)
	handler = security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware(handler)
	handler = trace.NewMiddleware(resolver.ClientIP, logger).Middleware(handler)

	s.Server = http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Shutdown gracefully shuts down the server and its cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.rateLimiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

var templateFuncs = template.FuncMap{
	"filterName": func(name string) string { return filterPrefix + name },
}

func (s *Server) render(name string, data any) ([]byte, error) {
	if s.templates == nil {
		return nil, errTemplatesNotLoaded
	}
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
