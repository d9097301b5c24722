package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/cofre/internal/http/achievement"
	"github.com/MrJamesThe3rd/cofre/internal/http/evaluate"
	"github.com/MrJamesThe3rd/cofre/internal/http/importcsv"
	"github.com/MrJamesThe3rd/cofre/internal/http/insight"
	"github.com/MrJamesThe3rd/cofre/internal/http/notification"
	"github.com/MrJamesThe3rd/cofre/internal/http/refresh"
)

type Options struct {
	JWTSecret   string
	CORSOrigins []string
	Timeout     time.Duration
}

func New(
	opts Options,
	achievementsV1 *achievement.Handler,
	notificationsV1 *notification.Handler,
	insightsV1 *insight.Handler,
	refreshV1 *refresh.Handler,
	evaluateV1 *evaluate.Handler,
	importV1 *importcsv.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	if opts.Timeout > 0 {
		router.Use(middleware.Timeout(opts.Timeout))
	}

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(BearerAuth(opts.JWTSecret))

		r.Route("/achievements", achievementsV1.Routes)
		r.Route("/notifications", notificationsV1.Routes)
		r.Route("/insights", insightsV1.Routes)
		r.Route("/refresh", refreshV1.Routes)

		r.Route("/evaluate", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			evaluateV1.Routes(r)
		})

		r.Route("/import", importV1.Routes)
	})

	return router
}
