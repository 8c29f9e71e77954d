package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/MRKIKSY/backendpaystacktestmode/internal/app"
	"github.com/MRKIKSY/backendpaystacktestmode/internal/auth"
	"github.com/MRKIKSY/backendpaystacktestmode/internal/handler"
	mw "github.com/MRKIKSY/backendpaystacktestmode/internal/middleware"
)

func New(a *app.App) http.Handler {
	subH := handler.NewSubmissionHandler(a.Submissions)
	authH := handler.NewAuthHandler(a.Auth)
	payH := handler.NewPaymentHandler(a.Payments)
	healthH := handler.NewHealthHandler(a.Store, a.Config.StoreBackend)

	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(mw.Recovery)
	r.Use(mw.Logger)
	r.Use(mw.CORS(a.Config.CORSOrigins))

	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Post("/submissions", subH.Create)
		r.Post("/admin/login", authH.Login)
		r.Get("/health", healthH.Health)

		// Admin routes
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(a.Config.JWTSecret))
			r.Get("/submissions", subH.List)
		})
	})

	r.Post("/verify-payment", payH.Verify)

	return r
}
