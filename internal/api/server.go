// Package api exposes the directory, search and chatbot services over HTTP.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gymlink-api/internal/common/config"
	"gymlink-api/internal/common/logger"
	"gymlink-api/internal/common/validation"
	"gymlink-api/internal/service"
)

// Dependencies are the services the router dispatches to.
type Dependencies struct {
	Directory      *service.DirectoryService
	Search         *service.SearchService
	Chatbot        *service.ChatbotService
	Cache          *service.ResponseCache
	AllowedOrigins []string
	Logger         logger.Logger
}

type handlers struct {
	directory *service.DirectoryService
	search    *service.SearchService
	chatbot   *service.ChatbotService
	cache     *service.ResponseCache
	validator *validation.Validator
	logger    logger.Logger
}

// NewRouter builds the chi router with the middleware chain and all routes.
func NewRouter(deps Dependencies) http.Handler {
	log := logger.ForComponent(deps.Logger, "http")
	h := &handlers{
		directory: deps.Directory,
		search:    deps.Search,
		chatbot:   deps.Chatbot,
		cache:     deps.Cache,
		validator: validation.New(),
		logger:    log,
	}

	origins := deps.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(middleware.RealIP)
	r.Use(AccessLog(log))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
		MaxAge:         300,
	}))
	r.Use(Metrics)

	r.Get("/health", h.health)
	r.Get("/ready", h.ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/businesses", func(r chi.Router) {
			r.Get("/", h.listBusinesses)
			r.Get("/search/filter", h.filterOptions)
			r.Post("/search/natural", h.naturalSearch)
			r.Get("/{id}", h.getBusiness)
		})
		r.Route("/chatbot", func(r chi.Router) {
			r.Post("/", h.askChatbot)
			r.Get("/capabilities", h.capabilities)
		})
	})

	return r
}

// NewServer wraps handler in an http.Server using the configured timeouts.
func NewServer(cfg config.ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadTimeout:       config.GetDuration(cfg.ReadTimeout),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      config.GetDuration(cfg.WriteTimeout),
	}
}
