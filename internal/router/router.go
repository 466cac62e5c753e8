package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edgarxmendoxa74-blip/gabzab-foodhouse/internal/config"
	"github.com/edgarxmendoxa74-blip/gabzab-foodhouse/internal/database"
	"github.com/edgarxmendoxa74-blip/gabzab-foodhouse/internal/handler"
	mw "github.com/edgarxmendoxa74-blip/gabzab-foodhouse/internal/middleware"
	"github.com/edgarxmendoxa74-blip/gabzab-foodhouse/internal/service"
	"github.com/edgarxmendoxa74-blip/gabzab-foodhouse/internal/storage"
	"github.com/edgarxmendoxa74-blip/gabzab-foodhouse/internal/ws"
)

// New creates a Chi router with all application routes wired up. Storefront
// routes are public; the back office sits behind JWT authentication.
func New(cfg *config.Config, queries *database.Queries, pool *pgxpool.Pool, hub *ws.Hub, store *storage.Client) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{
			"http://localhost:5173",               // storefront dev server
			"http://localhost:5174",               // admin dev server
			"https://gabzabfoodhouse.com",         // production storefront
			"https://admin.gabzabfoodhouse.com",   // production admin
		},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Cart-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Auth routes (public)
	authHandler := handler.NewAuthHandler(queries, cfg.JWTSecret)
	authHandler.RegisterRoutes(r)

	// WebSocket order feed (handles auth internally via query param)
	r.Get("/ws/orders", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWS(hub, cfg.JWTSecret, w, r)
	})

	categoryHandler := handler.NewCategoryHandler(queries)
	menuItemHandler := handler.NewMenuItemHandler(queries)
	settingsHandler := handler.NewSettingsHandler(queries, cfg.MessengerURL)
	paymentHandler := handler.NewPaymentHandler(queries)
	orderTypeHandler := handler.NewOrderTypeHandler(queries)
	cartHandler := handler.NewCartHandler(queries)

	orderService := service.NewOrderService(pool, queries, func(db database.DBTX) service.CheckoutStore {
		return database.New(db)
	}, cfg.MessengerURL)
	orderHandler := handler.NewOrderHandler(orderService, queries, hub)

	// Storefront routes (public)
	r.Group(func(r chi.Router) {
		categoryHandler.RegisterPublicRoutes(r)
		menuItemHandler.RegisterPublicRoutes(r)
		settingsHandler.RegisterPublicRoutes(r)
		paymentHandler.RegisterPublicRoutes(r)
		orderTypeHandler.RegisterPublicRoutes(r)
		cartHandler.RegisterRoutes(r)
		orderHandler.RegisterPublicRoutes(r)
	})

	// Back office routes (require authentication)
	r.Route("/admin", func(r chi.Router) {
		r.Use(mw.Authenticate(cfg.JWTSecret))

		categoryHandler.RegisterAdminRoutes(r)
		menuItemHandler.RegisterAdminRoutes(r)
		settingsHandler.RegisterAdminRoutes(r)
		paymentHandler.RegisterAdminRoutes(r)
		orderTypeHandler.RegisterAdminRoutes(r)
		orderHandler.RegisterAdminRoutes(r)

		handler.NewReportHandler(queries).RegisterRoutes(r)
		handler.NewUploadHandler(store).RegisterRoutes(r)
	})

	return r
}
