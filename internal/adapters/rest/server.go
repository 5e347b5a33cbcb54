package rest

import (
	"context"
	"net/http"
	"time"

	core_port "storefront-service/internal/core/port"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

// Rate limits for the submission endpoints: sliding window per client
// address. Orders are stricter than the contact form.
const (
	rateLimitWindow   = 5 * time.Minute
	orderRateLimit    = 5
	contactRateLimit  = 10
	rateLimitResponse = "Too many requests. Please try again later."
)

type Server struct {
	httpServer *http.Server
	logger     core_port.LoggerPort
}

type ServerConfig struct {
	Port           string
	AllowedOrigins []string
}

func NewServer(cfg ServerConfig,
	catalogHandlers *CatalogHandler,
	orderHandlers *OrderHandler,
	baseLogger core_port.LoggerPort) *Server {

	r := chi.NewRouter()

	r.Use(middleware.RealIP, LoggerMiddleware(baseLogger), middleware.Recoverer)

	if len(cfg.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Trace-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", catalogHandlers.FindProducts)
		r.Get("/products/{productID}", catalogHandlers.GetProductDetails)

		r.Get("/brands", catalogHandlers.ListBrands)

		r.Get("/aromaboxes", catalogHandlers.ListAromaboxes)
		r.Get("/aromaboxes/{aromaboxID}", catalogHandlers.GetAromaboxDetails)

		r.Group(func(r chi.Router) {
			r.Use(rateLimiter(orderRateLimit))
			r.Post("/orders", orderHandlers.CreateOrder)
		})

		r.Group(func(r chi.Router) {
			r.Use(rateLimiter(contactRateLimit))
			r.Post("/contact", orderHandlers.SubmitContact)
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:    ":" + cfg.Port,
			Handler: r,
		},
		logger: baseLogger,
	}
}

func rateLimiter(limit int) func(next http.Handler) http.Handler {
	return httprate.Limit(
		limit,
		rateLimitWindow,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			WriteJSONError(w, http.StatusTooManyRequests, rateLimitResponse)
		}),
	)
}

func (s *Server) Start() error {
	s.logger.Info("Starting REST server", core_port.Fields{"address": s.httpServer.Addr})
	return s.httpServer.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST server...", nil)
	return s.httpServer.Shutdown(ctx)
}
