package router

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/itchan-dev/community/backend/internal/setup"
	mw "github.com/itchan-dev/community/shared/middleware"
	"github.com/itchan-dev/community/shared/middleware/metrics"
)

// New builds the API router.
// IMPORTANT! a ratelimiter set with Use limits all endpoints of that group combined
func New(deps *setup.Dependencies) *chi.Mux {
	r := chi.NewRouter()

	r.Use(mw.RequestId)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(mw.AccessLog)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.Public.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", mw.RequestIdHeader},
		ExposedHeaders:   []string{mw.RequestIdHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(mw.SecurityHeaders(deps.Config.Public.Https))

	h := deps.Handler
	authMw := deps.AuthMiddleware

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		if timeout := deps.Config.RequestTimeout(); timeout > 0 {
			r.Use(middleware.Timeout(timeout))
		}

		// Public reads, 100 RPS per IP
		r.Group(func(r chi.Router) {
			r.Use(mw.RateLimit(deps.Limiters.Reads, mw.GetIP))

			r.Get("/posts/recent", h.GetRecentPosts)
			r.Get("/posts/{id}", h.GetPost)
			r.Get("/posts/{id}/likes", h.GetLikes)
			r.Get("/categories/{category}/posts", h.GetCategory)
			r.Get("/users/{handle}/posts", h.GetUserPosts)
			// one view per second per IP
			r.With(mw.RateLimit(deps.Limiters.Views, mw.GetIP)).Post("/posts/{id}/view", h.ViewPost)
		})

		// Logged-in user routes
		r.Group(func(r chi.Router) {
			r.Use(authMw.NeedAuth())
			r.Use(mw.RateLimit(deps.Limiters.Writes, mw.GetNicknameFromContext))

			// posting: 1 per minute per user
			r.With(mw.RateLimit(deps.Limiters.Posts, mw.GetNicknameFromContext)).Post("/posts", h.CreatePost)
			r.Put("/posts/{id}", h.UpdatePost)
			r.Delete("/posts/{id}", h.DeletePost)
			r.Post("/posts/{id}/likes", h.LikePost)
		})
	})

	return r
}
