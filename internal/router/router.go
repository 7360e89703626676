package router

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/talx-hub/salon-bonus/internal/api/middlewares"
	"github.com/talx-hub/salon-bonus/internal/config"
)

type CustomRouter struct {
	router *chi.Mux
	logger *slog.Logger
	cfg    *config.Config
}

func New(cfg *config.Config, log *slog.Logger) *CustomRouter {
	router := &CustomRouter{
		router: chi.NewRouter(),
		logger: log,
		cfg:    cfg,
	}

	return router
}

type LoyaltyHandler interface {
	Earn(w http.ResponseWriter, r *http.Request)
	Redeem(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
	Balance(w http.ResponseWriter, r *http.Request)
}

type CheckoutHandler interface {
	Checkout(w http.ResponseWriter, r *http.Request)
}

type OwnerHandler interface {
	CreateProgram(w http.ResponseWriter, r *http.Request)
	CreatePromotion(w http.ResponseWriter, r *http.Request)
	Revenue(w http.ResponseWriter, r *http.Request)
}

type HealthHandler interface {
	Ping(w http.ResponseWriter, r *http.Request)
}

type Handler interface {
	LoyaltyHandler
	CheckoutHandler
	OwnerHandler
	HealthHandler
}

// SetRouter mounts the API behind cookie authentication. metrics may be nil.
func (cr *CustomRouter) SetRouter(h Handler, metrics http.Handler) {
	cr.router.Use(middleware.Recoverer)
	cr.router.Use(middlewares.Logging(cr.logger))

	cr.router.Route("/api", func(r chi.Router) {
		r.Use(middlewares.Authentication([]byte(cr.cfg.SecretKey), cr.logger))

		r.Route("/loyalty", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				r.Post("/earn", h.Earn)
				r.Post("/redeem", h.Redeem)
			})
			r.Get("/summary", h.Summary)
			r.Get("/balance/{bid}", h.Balance)
		})

		r.With(middleware.AllowContentType("application/json")).
			Post("/checkout", h.Checkout)

		r.Route("/owner", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				r.Post("/programs", h.CreateProgram)
				r.Post("/promotions", h.CreatePromotion)
			})
			r.Get("/revenue/{bid}", h.Revenue)
		})
	})
	cr.router.Get("/ping", h.Ping)
	if metrics != nil {
		cr.router.Method(http.MethodGet, "/metrics", metrics)
	}

	cr.router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w,
			http.StatusText(http.StatusMethodNotAllowed),
			http.StatusMethodNotAllowed)
	})
}

func (cr *CustomRouter) GetRouter() *chi.Mux {
	return cr.router
}
