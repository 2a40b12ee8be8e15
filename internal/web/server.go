package web

import (
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vbonduro/stock2profit/internal/auth"
	"github.com/vbonduro/stock2profit/internal/service"
	"github.com/vbonduro/stock2profit/internal/session"
)

const authCookie = "auth_token"

// Services groups the application services the handlers call into.
type Services struct {
	Auth       *auth.Service
	Tokens     *auth.Tokens
	Workspaces *session.Registry
	Dashboard  *service.DashboardService
	Inventory  *service.InventoryService
	Sales      *service.SalesService
}

type Options struct {
	Currency      string
	SecureCookies bool
}

type Server struct {
	svc       Services
	opts      Options
	templates fs.FS
	router    chi.Router
	tmplFuncs template.FuncMap
	logger    *slog.Logger
}

func NewServer(svc Services, tmpl fs.FS, opts Options, logger *slog.Logger) *Server {
	s := &Server{
		svc:       svc,
		opts:      opts,
		templates: tmpl,
		router:    chi.NewRouter(),
		logger:    logger,
	}
	s.tmplFuncs = templateFuncs(opts.Currency)
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	r := s.router
	r.Use(RequestID)
	r.Use(s.requestLogger)
	r.Use(s.recoverer)
	r.Use(securityHeaders)

	r.Get("/healthz", s.handleHealth)

	r.Get("/", s.handleLanding)
	r.Get("/login", s.handleAuthPage)
	r.Get("/signup", s.handleAuthPage)
	r.Post("/login", s.handleLogin)
	r.Post("/signup", s.handleSignup)
	r.Post("/logout", s.handleLogout)

	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)

		r.Get("/api/workspace", s.handleWorkspace)
		r.Post("/api/workspace/scroll", s.handleScroll)

		r.Post("/sales/items", s.handleAddLineItem)
		r.Post("/sales/items/{id}/delete", s.handleRemoveLineItem)
		r.Post("/sales/customer", s.handleUpdateCustomer)
		r.Post("/sales/submit", s.handleSubmitSale)
		r.Get("/sales/receipts/{id}", s.handleReceipt)

		r.Post("/inventory", s.handleCreateProduct)
		r.Post("/inventory/{id}/stock", s.handleRestock)
		r.Get("/inventory/export.csv", s.handleExportInventory)

		r.Get("/{view}", s.handleView)
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// NewHTTPServer wraps the server with the timeouts it is deployed with.
func (s *Server) NewHTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) setAuthCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     authCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.opts.SecureCookies,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(s.svc.Tokens.TTL().Seconds()),
	})
}

func (s *Server) clearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     authCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   s.opts.SecureCookies,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   -1,
	})
}
