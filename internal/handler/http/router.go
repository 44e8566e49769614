package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/buildhq/sitetrack-backend-go/internal/config"
	"github.com/buildhq/sitetrack-backend-go/internal/handler/http/middleware"
	"github.com/buildhq/sitetrack-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	cfg *config.Config,
	jwtService jwt.Service,
	attendanceHandler AttendanceHandler,
	siteHandler SiteHandler,
	workerHandler WorkerHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "sitetrack"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.App.SlogLevel(),
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Route("/requests", func(r chi.Router) {
					r.Post("/", attendanceHandler.Submit)

					// Reviewers only
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireReviewer)
						r.Get("/", attendanceHandler.List)
						r.Post("/{id}/approve", attendanceHandler.Approve)
						r.Post("/{id}/reject", attendanceHandler.Reject)
					})
				})

				r.Route("/daily", func(r chi.Router) {
					r.Use(middleware.RequireReviewer)
					r.Get("/", attendanceHandler.ListDaily)
					r.Get("/{date}", attendanceHandler.GetDaily)
					r.Post("/manual", attendanceHandler.MarkManual)
				})
			})

			r.Route("/site", func(r chi.Router) {
				r.Get("/", siteHandler.Get)

				// Manager only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Put("/", siteHandler.Update)
				})
			})

			r.Route("/workers", func(r chi.Router) {
				// Reviewers need the list to drive the manual-mark picker.
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireReviewer)
					r.Get("/", workerHandler.List)
				})

				// Manager only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/", workerHandler.Create)
				})
			})
		})
	})
	return r
}
