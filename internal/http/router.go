package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	authHandler "github.com/pandukaz/debtbook/internal/http/auth"
	"github.com/pandukaz/debtbook/internal/http/category"
	"github.com/pandukaz/debtbook/internal/http/contact"
	"github.com/pandukaz/debtbook/internal/http/export"
	"github.com/pandukaz/debtbook/internal/http/ledger"
	"github.com/pandukaz/debtbook/internal/http/middleware"
	"github.com/pandukaz/debtbook/internal/metrics"
	"github.com/pandukaz/debtbook/internal/session"
)

func New(
	sessions *session.Manager,
	allowedOrigins []string,
	authV1 *authHandler.Handler,
	transactionsV1 *ledger.Handler,
	contactsV1 *contact.Handler,
	categoriesV1 *category.Handler,
	exportV1 *export.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)
	router.Use(metrics.Middleware)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	router.Method(http.MethodGet, "/metrics", metrics.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(chimiddleware.AllowContentType("application/json"))
			authV1.Routes(r)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(sessions))
				authV1.ProtectedRoutes(r)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(sessions))

			r.Route("/transactions", func(r chi.Router) {
				r.Use(chimiddleware.AllowContentType("application/json"))
				transactionsV1.Routes(r)
			})

			r.Route("/contacts", func(r chi.Router) {
				r.Use(chimiddleware.AllowContentType("application/json"))
				contactsV1.Routes(r)
			})

			r.Route("/categories", func(r chi.Router) {
				r.Use(chimiddleware.AllowContentType("application/json"))
				categoriesV1.Routes(r)
			})

			r.Route("/export", exportV1.Routes)
		})
	})

	return router
}
