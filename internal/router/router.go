package router

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/beanhouse-cafe/api/internal/config"
	"github.com/beanhouse-cafe/api/internal/handler"
	mw "github.com/beanhouse-cafe/api/internal/middleware"
	"github.com/beanhouse-cafe/api/internal/service"
	"github.com/beanhouse-cafe/api/internal/store"
)

// New creates a Chi router with all application routes wired up. Storefront
// routes (menu read, order placement, list polling) are public; dashboard
// routes sit behind the activation-key session token.
func New(cfg *config.Config, st store.Store, logger *zap.Logger) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300, // 5 minutes
	}))

	// The active backend is part of health so a degraded (in-memory) process
	// is visible to operators instead of silently non-durable.
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status":"ok","backend":%q}`, st.Backend())
	})

	orderService := service.NewOrderService(st)
	exportService := service.NewExportService(st)

	authHandler := handler.NewAuthHandler(cfg.ActivationKey, cfg.ActivationKey, cfg.SessionTTL, logger)
	menuHandler := handler.NewMenuHandler(st, logger)
	orderHandler := handler.NewOrderHandler(orderService, cfg.CartGroupMode, logger)
	reportsHandler := handler.NewReportsHandler(exportService, st, logger)

	staffOnly := mw.Authenticate(cfg.ActivationKey)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", authHandler.RegisterRoutes)

		r.Route("/menu", func(r chi.Router) {
			menuHandler.RegisterPublicRoutes(r)
			r.Group(func(r chi.Router) {
				r.Use(staffOnly)
				menuHandler.RegisterStaffRoutes(r)
			})
		})

		r.Route("/orders", func(r chi.Router) {
			orderHandler.RegisterPublicRoutes(r)
			r.Group(func(r chi.Router) {
				r.Use(staffOnly)
				orderHandler.RegisterStaffRoutes(r)
			})
		})

		r.Route("/reports", func(r chi.Router) {
			r.Use(staffOnly)
			reportsHandler.RegisterRoutes(r)
		})
	})

	logger.Info("router initialized", zap.String("backend", st.Backend()))
	return r
}
