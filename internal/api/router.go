// Package api assembles the HTTP surface: every route, its guard and the
// shared middleware chain.
package api

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"mikombo-backend/internal/animals"
	"mikombo-backend/internal/auth"
	"mikombo-backend/internal/contact"
	"mikombo-backend/internal/cultures"
	"mikombo-backend/internal/middleware"
	"mikombo-backend/internal/models"
	"mikombo-backend/internal/notifications"
	"mikombo-backend/internal/orders"
	"mikombo-backend/internal/products"
	"mikombo-backend/internal/reservations"
	"mikombo-backend/internal/stats"
	"mikombo-backend/internal/storage"
	"mikombo-backend/internal/store"
	"mikombo-backend/internal/transport"
	"mikombo-backend/internal/users"
	"mikombo-backend/internal/validation"
)

type Stores struct {
	Users        store.Collection[models.User]
	Products     store.Collection[models.Product]
	Animals      store.Collection[models.Animal]
	Cultures     store.Collection[models.Culture]
	Reservations store.Collection[models.Reservation]
	Orders       store.Collection[models.Order]
	Messages     store.Collection[models.ContactMessage]
}

type Options struct {
	Logger    *slog.Logger
	Validator *validation.Validator
	Tokens    *auth.Manager
	Stores    Stores
	Photos    *storage.Photos
	Notifier  *notifications.Dispatcher
	Location  *time.Location

	CORSOrigins      []string
	RateLimitAuth    int
	RateLimitContact int
	RateLimitWindow  time.Duration
	// UploadsDir is served under /uploads when photos are kept on local disk.
	UploadsDir string
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	val := opts.Validator

	usersRepo := users.NewRepository(opts.Stores.Users)
	usersHandler := users.NewHandler(users.NewService(usersRepo, opts.Tokens), val, log)
	productsHandler := products.NewHandler(products.NewService(products.NewRepository(opts.Stores.Products), opts.Photos), val, log)
	animalsHandler := animals.NewHandler(animals.NewService(animals.NewRepository(opts.Stores.Animals), opts.Photos), val, log)
	culturesHandler := cultures.NewHandler(cultures.NewService(cultures.NewRepository(opts.Stores.Cultures)), val, log)
	reservationsHandler := reservations.NewHandler(reservations.NewService(reservations.NewRepository(opts.Stores.Reservations), opts.Notifier), val, log)
	ordersHandler := orders.NewHandler(orders.NewService(orders.NewRepository(opts.Stores.Orders), opts.Notifier), val, log)
	contactHandler := contact.NewHandler(contact.NewService(opts.Stores.Messages), val, log)
	statsHandler := stats.NewHandler(stats.NewService(stats.Sources{
		Products:     opts.Stores.Products,
		Animals:      opts.Stores.Animals,
		Cultures:     opts.Stores.Cultures,
		Reservations: opts.Stores.Reservations,
		Orders:       opts.Stores.Orders,
	}, opts.Location), log)

	requireUser := middleware.RequireUser(opts.Tokens, usersRepo, log)
	requireAdmin := middleware.RequireAdmin(opts.Tokens, usersRepo, log)
	authLimiter := middleware.NewRateLimiter(opts.RateLimitAuth, opts.RateLimitWindow)
	contactLimiter := middleware.NewRateLimiter(opts.RateLimitContact, opts.RateLimitWindow)

	r := chi.NewRouter()
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS(opts.CORSOrigins))
	r.Use(chiMiddleware.Timeout(30 * time.Second))

	routes := func(api chi.Router) {
		api.Get("/health", health)

		api.With(authLimiter.Middleware).Post("/auth/register", usersHandler.Register)
		api.With(authLimiter.Middleware).Post("/auth/login", usersHandler.Login)
		api.With(requireUser).Get("/auth/me", usersHandler.Me)
		api.With(requireUser).Post("/auth/logout", usersHandler.Logout)

		api.Get("/produits", productsHandler.PublicList)
		api.Get("/produits/{id}", productsHandler.PublicGet)
		api.Get("/animaux", animalsHandler.PublicList)
		api.With(contactLimiter.Middleware).Post("/contact", contactHandler.Submit)

		api.Group(func(client chi.Router) {
			client.Use(requireUser)
			client.Post("/reservations", reservationsHandler.Create)
			client.Get("/reservations/mes-reservations", reservationsHandler.Mine)
			client.Post("/commandes", ordersHandler.Create)
			client.Get("/commandes/mes-commandes", ordersHandler.Mine)
		})

		api.Route("/admin", func(admin chi.Router) {
			admin.Use(requireAdmin)

			admin.Get("/produits", productsHandler.AdminList)
			admin.Post("/produits", productsHandler.AdminCreate)
			admin.Put("/produits/{id}", productsHandler.AdminUpdate)
			admin.Delete("/produits/{id}", productsHandler.AdminDelete)
			admin.Post("/produits/{id}/upload-photo", productsHandler.AdminUploadPhoto)

			admin.Get("/animaux", animalsHandler.AdminList)
			admin.Post("/animaux", animalsHandler.AdminCreate)
			admin.Put("/animaux/{id}", animalsHandler.AdminUpdate)
			admin.Delete("/animaux/{id}", animalsHandler.AdminDelete)
			admin.Post("/animaux/{id}/upload-photo", animalsHandler.AdminUploadPhoto)

			admin.Get("/cultures", culturesHandler.AdminList)
			admin.Post("/cultures", culturesHandler.AdminCreate)
			admin.Put("/cultures/{id}", culturesHandler.AdminUpdate)
			admin.Delete("/cultures/{id}", culturesHandler.AdminDelete)

			admin.Get("/reservations", reservationsHandler.AdminList)
			admin.Put("/reservations/{id}/statut", reservationsHandler.AdminSetStatus)
			admin.Get("/commandes", ordersHandler.AdminList)
			admin.Put("/commandes/{id}/statut", ordersHandler.AdminSetStatus)

			admin.Get("/stats", statsHandler.Get)
		})

		if opts.UploadsDir != "" {
			fileServer(api, "/uploads", http.Dir(opts.UploadsDir))
		}
	}

	r.Get("/health", health)
	if opts.UploadsDir != "" {
		fileServer(r, "/uploads", http.Dir(opts.UploadsDir))
	}
	r.Route("/api", routes)
	r.Route("/api/v1", routes)

	return r
}

func health(w http.ResponseWriter, r *http.Request) {
	transport.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// fileServer serves files below path without directory listings.
func fileServer(r chi.Router, path string, root http.FileSystem) {
	r.Get(path+"/*", func(w http.ResponseWriter, req *http.Request) {
		if strings.HasSuffix(req.URL.Path, "/") {
			http.NotFound(w, req)
			return
		}
		prefix := strings.TrimSuffix(chi.RouteContext(req.Context()).RoutePattern(), "/*")
		http.StripPrefix(prefix, http.FileServer(root)).ServeHTTP(w, req)
	})
}
