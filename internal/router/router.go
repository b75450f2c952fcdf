package router

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/restohub-rw/api/internal/config"
	"github.com/restohub-rw/api/internal/enum"
	"github.com/restohub-rw/api/internal/handler"
	mw "github.com/restohub-rw/api/internal/middleware"
	"github.com/restohub-rw/api/internal/state"
	"github.com/restohub-rw/api/internal/store"
	"github.com/restohub-rw/api/internal/ws"
)

// New creates a Chi router with all application routes wired up.
// Applies authentication, business scoping, and role-based middleware as needed.
func New(cfg *config.Config, st store.Store, container *state.Container, hub *ws.Hub) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	}))

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","version":"1.0.0"}`))
	})

	// Auth routes (public)
	authHandler := handler.NewAuthHandler(st, cfg.JWTSecret)
	authHandler.RegisterRoutes(r)

	// WebSocket route (handles auth internally via query param)
	r.Get("/ws/businesses/{bid}/events", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWS(hub, cfg.JWTSecret, w, r)
	})

	// Protected routes (require authentication)
	r.Group(func(r chi.Router) {
		r.Use(mw.Authenticate(cfg.JWTSecret))

		// Own profile. Backed by the container so profile writes refresh the
		// memoized snapshot.
		profileHandler := handler.NewProfileHandler(container)
		profileHandler.RegisterRoutes(r)

		// Notifications (workspace-wide, any signed-in role)
		notificationHandler := handler.NewNotificationHandler(container)
		r.Route("/notifications", notificationHandler.RegisterRoutes)

		// Business routes. Portfolio and single-unit management are owner
		// territory; the nested staff/menu/order routes admit business-scoped
		// roles via RequireBusiness.
		businessHandler := handler.NewBusinessHandler(container)
		ownerOnly := mw.RequireRole(enum.RoleOwner, enum.RoleAdmin)
		r.Route("/businesses", func(r chi.Router) {
			r.With(ownerOnly).Group(businessHandler.RegisterRoutes)

			r.Route("/{bid}", func(r chi.Router) {
				r.With(ownerOnly).Group(businessHandler.RegisterUnitRoutes)

				r.Group(func(r chi.Router) {
					r.Use(mw.RequireBusiness)

					staffHandler := handler.NewStaffHandler(container)
					r.Route("/staff", staffHandler.RegisterRoutes)

					menuHandler := handler.NewMenuHandler(st, hub)
					r.Route("/menu", menuHandler.RegisterRoutes)

					orderHandler := handler.NewOrderHandler(container)
					r.Route("/orders", orderHandler.RegisterRoutes)
				})
			})
		})

		// Accountant routes
		r.Group(func(r chi.Router) {
			r.Use(mw.RequireRole(enum.RoleOwner, enum.RoleAdmin, enum.RoleAccountant))

			financialHandler := handler.NewFinancialHandler(container)
			r.Route("/financials", financialHandler.RegisterRoutes)

			reportHandler := handler.NewReportHandler(container)
			r.Route("/reports", reportHandler.RegisterRoutes)
		})

		// Admin routes
		r.Group(func(r chi.Router) {
			r.Use(mw.RequireRole(enum.RoleAdmin))
			adminHandler := handler.NewAdminHandler(st)
			r.Route("/admin", adminHandler.RegisterRoutes)
		})
	})

	log.Println("Router initialized with all handlers")
	return r
}
