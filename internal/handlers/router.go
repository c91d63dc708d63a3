package handlers

import (
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/bar-comandas/web/internal/middleware"
	"github.com/bar-comandas/web/internal/service"
	"github.com/bar-comandas/web/internal/session"
	"github.com/bar-comandas/web/internal/views"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouterConfig wires the services and infrastructure the routes need
type RouterConfig struct {
	API            service.API
	APIBaseURL     *url.URL
	Views          *views.Renderer
	Sessions       *session.Manager
	Backend        StatusReporter
	AllowedOrigins []string
	RefreshSeconds int
	Logger         *slog.Logger
}

// NewRouter builds the HTTP routes of the web client.
func NewRouter(cfg RouterConfig) http.Handler {
	log := cfg.Logger

	tabs := service.NewTabService(cfg.API)
	menu := service.NewMenuService(cfg.API)

	healthHandler := NewHealthHandler(cfg.Backend, log)
	authHandler := NewAuthHandler(service.NewAuthService(cfg.API), cfg.Views, cfg.Sessions, log)
	tableHandler := NewTableHandler(service.NewTableService(cfg.API), cfg.Views, cfg.Sessions, log)
	tabHandler := NewTabHandler(tabs, menu, cfg.Views, cfg.Sessions, log)
	menuHandler := NewMenuHandler(menu, cfg.Views, cfg.Sessions, log)
	customerHandler := NewCustomerHandler(tabs, cfg.Views, cfg.RefreshSeconds, log)
	adminHandler := NewAdminHandler(service.NewAdminService(cfg.API), cfg.Views, cfg.Sessions, log)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// Machine-facing routes may be read from other origins
	r.Group(func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.AllowedOrigins,
			AllowedMethods:   []string{"GET", "OPTIONS"},
			AllowedHeaders:   []string{"Accept"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
		r.Get("/health", healthHandler.ServeHTTP)
		r.Get("/qrcode/mesa/{tabId}", NewQRCodeProxy(cfg.APIBaseURL, log))
	})

	r.Get("/login", authHandler.LoginPage)
	r.Post("/login", authHandler.Login)
	r.Post("/logout", authHandler.Logout)
	r.Get("/cliente/mesa/{tabId}", customerHandler.Show)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireSession(cfg.Sessions, log))

		r.Get("/", redirectTo("/mesas"))
		r.Get("/dashboard", redirectTo("/mesas"))

		r.Get("/mesas", tableHandler.List)
		r.Post("/mesas/abrir", tableHandler.Open)

		r.Get("/cardapio", menuHandler.Show)

		r.Route("/comanda/{tabId}", func(r chi.Router) {
			r.Get("/", tabHandler.Show)
			r.Post("/couvert", tabHandler.ToggleCover)
			r.Post("/itens", tabHandler.AddItem)
			r.Post("/itens/{itemId}/cancelar", tabHandler.CancelItem)
			r.Post("/pagamentos", tabHandler.Pay)
			r.Post("/fechar", tabHandler.Close)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdmin(log))
			r.Get("/", adminHandler.Show)
			r.Post("/produtos", adminHandler.CreateProduct)
			r.Post("/produtos/{productId}", adminHandler.UpdateProduct)
			r.Post("/mesas", adminHandler.CreateTable)
			r.Post("/mesas/{tableId}/remover", adminHandler.DeleteTable)
			r.Post("/configuracoes", adminHandler.SaveSettings)
		})
	})

	return r
}

func redirectTo(to string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, to, http.StatusFound)
	}
}
