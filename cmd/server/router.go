package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/vortex-api/internal/api"
	apiMiddleware "github.com/phrazzld/vortex-api/internal/api/middleware"
)

// setupRouter configures the application router with all routes and
// middleware and returns the handler.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(
		app.userStore,
		app.statsStore,
		app.jwtService,
		app.passwordHasher,
		app.passwordVerifier,
		app.clock,
	)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	wordHandler := api.NewWordHandler(app.wordsService)
	reviewHandler := api.NewReviewHandler(app.reviewService)
	missionHandler := api.NewMissionHandler(app.missionService)
	statsHandler := api.NewStatsHandler(app.statsStore, app.historyStore, app.clock)
	collectionHandler := api.NewCollectionHandler(app.collectionsService)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/words", wordHandler.List)
			r.Post("/words", wordHandler.Create)
			r.Delete("/words/{id}", wordHandler.Delete)
			r.Post("/words/quickstart", wordHandler.QuickStart)

			r.Get("/reviews/queue", reviewHandler.Queue)
			r.Post("/reviews/session", reviewHandler.Start)
			r.Get("/reviews/session", reviewHandler.Active)
			r.Post("/reviews/session/answer", reviewHandler.Answer)
			r.Post("/reviews/session/cancel", reviewHandler.Cancel)

			r.Get("/missions/today", missionHandler.Today)

			r.Get("/stats", statsHandler.Get)
			r.Get("/history", statsHandler.History)

			r.Get("/collections", collectionHandler.List)
			r.Post("/collections", collectionHandler.Create)
			r.Put("/collections/{id}", collectionHandler.Rename)
			r.Delete("/collections/{id}", collectionHandler.Delete)
			r.Post("/collections/{id}/words", collectionHandler.AddWords)
			r.Delete("/collections/{id}/words", collectionHandler.RemoveWords)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
