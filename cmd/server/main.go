package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/solidastad/anbud/internal/config"
	"github.com/solidastad/anbud/internal/db"
	"github.com/solidastad/anbud/internal/migrations"
	"github.com/solidastad/anbud/internal/pricing"
	"github.com/solidastad/anbud/internal/ratebook"
	"github.com/solidastad/anbud/internal/relay"
	"github.com/solidastad/anbud/internal/seed"
	"github.com/solidastad/anbud/web"
)

type server struct {
	auth  *authService
	table *pricing.Table
	relay *relay.Service
	now   func() time.Time
}

func main() {
	cfg := config.Load()

	table, err := loadPricingTable(context.Background(), cfg)
	if err != nil {
		log.Fatalf("failed to load pricing table: %v", err)
	}

	srv := &server{
		auth:  newAuthService(cfg.AccessPassword, cfg.SessionSecret, cfg.MaxLoginAttempts),
		table: table,
		relay: relay.NewService(cfg.WebhookURL, relay.NewWebhookClient(cfg.WebhookTimeout)),
		now:   time.Now,
	}

	addr := ":" + cfg.Port
	log.Printf("listening on %s (pricing table %q)", addr, table.Name)
	if err := http.ListenAndServe(addr, srv.routes()); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

// loadPricingTable reads the configured rate table once. Development
// databases are migrated and seeded first. A database without the table
// falls back to the built-in rates.
func loadPricingTable(ctx context.Context, cfg config.Config) (*pricing.Table, error) {
	database, dialect, err := db.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	defer database.Close()

	if cfg.IsDev() {
		if err := migrations.Up(database, dialect); err != nil {
			return nil, fmt.Errorf("run database migrations: %w", err)
		}
		stats, err := seed.Run(ctx, database, dialect, seed.Config{TableName: cfg.PricingTable})
		if err != nil {
			return nil, fmt.Errorf("seed pricing table: %w", err)
		}
		log.Printf("seed completed: inserts=%d skipped=%d", stats.Inserts, stats.Skipped)
	}

	table, err := ratebook.Load(ctx, database, dialect, cfg.PricingTable)
	if errors.Is(err, ratebook.ErrNotFound) {
		log.Printf("warning: pricing table %q not found, using built-in rates", cfg.PricingTable)
		return pricing.DefaultTable(), nil
	}
	if err != nil {
		return nil, err
	}
	return table, nil
}

func (s *server) routes() http.Handler {
	static, err := fs.Sub(web.FS, "static")
	if err != nil {
		log.Fatalf("failed to open static assets: %v", err)
	}

	submit := relay.Handler{Service: s.relay}

	r := chi.NewRouter()
	r.Use(s.authMiddleware)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))
	r.Get("/healthz", s.handleHealth)
	r.Handle("/api/submit", submit)
	r.Handle("/.netlify/functions/submit", submit)

	r.Get("/login", s.handleLoginForm)
	r.Post("/login", s.handleLoginSubmit)
	r.Post("/login/reset", s.handleLoginReset)
	r.Post("/logout", s.handleLogout)

	r.Get("/", s.handleHome)
	r.Post("/api/quote", s.handleQuoteAPI)
	r.Post("/api/work-description", s.handleWorkDescriptionAPI)
	r.Post("/quote", s.handleQuoteSubmit)
	r.Post("/quote/pdf", s.handleQuotePDF)
	r.Post("/quote/xlsx", s.handleQuoteExcel)
	r.Post("/work-order", s.handleWorkOrderSubmit)
	r.Post("/additional-service", s.handleAdditionalServiceSubmit)
	return r
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *server) renderTemplate(w http.ResponseWriter, status int, page string, data any) {
	templates, err := template.ParseFS(web.FS,
		"templates/layout.html",
		"templates/"+page,
	)
	if err != nil {
		log.Printf("parse template %s: %v", page, err)
		http.Error(w, "failed to parse template", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		log.Printf("render template %s: %v", page, err)
		http.Error(w, "failed to render template", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

var publicPaths = map[string]bool{
	"/login":                     true,
	"/login/reset":               true,
	"/healthz":                   true,
	"/api/submit":                true,
	"/.netlify/functions/submit": true,
}

func (s *server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if publicPaths[r.URL.Path] || strings.HasPrefix(r.URL.Path, "/static/") {
			next.ServeHTTP(w, r)
			return
		}

		if !s.auth.isAuthenticated(r) {
			if strings.HasPrefix(r.URL.Path, "/api/") {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r)
	})
}
