package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"mukbang-backend/internal/handlers"
	"mukbang-backend/internal/middleware"
)

func New(
	jwtAuth *middleware.JWTAuth,
	adminGuard *middleware.AdminGuard,
	authHandler *handlers.AuthHandler,
	generateHandler *handlers.GenerateHandler,
	videoPromptHandler *handlers.VideoPromptHandler,
	actionHandler *handlers.ActionHandler,
	imageHandler *handlers.ImageHandler,
	historyHandler *handlers.HistoryHandler,
	userHandler *handlers.UserHandler,
	catHandler *handlers.CatHandler,
	catalogHandler *handlers.CatalogHandler,
	adminHandler *handlers.AdminHandler,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Auth rate limiter (10 req/min per IP)
	authLimiter := middleware.NewRateLimiter(10, time.Minute)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {

		// ──── Auth Routes (public) ────
		r.Route("/auth", func(r chi.Router) {
			r.Use(authLimiter.Middleware)
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)

			// Logout requires auth
			r.Group(func(r chi.Router) {
				r.Use(jwtAuth.Middleware)
				r.Post("/logout", authHandler.Logout)
			})
		})

		// ──── Video Prompt Builder (anonymous allowed) ────
		r.Group(func(r chi.Router) {
			r.Use(jwtAuth.OptionalMiddleware)
			r.Post("/generate-video-prompt", videoPromptHandler.Generate)
		})

		// ──── Image Model Catalog (public) ────
		r.Get("/models", imageHandler.ListModels)

		// ──── Generation & LLM Routes ────
		r.Group(func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Post("/generate-prompt", generateHandler.Generate)
			r.Post("/expand-action", actionHandler.Expand)
			r.Post("/improve-action", actionHandler.Improve)
			r.Post("/analyze-image", imageHandler.Analyze)
			r.Post("/generate-image", imageHandler.GenerateImage)
		})

		// ──── Catalog Routes (active rows only) ────
		r.Group(func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/styles", catalogHandler.ListStyles)
			r.Get("/foods", catalogHandler.ListFoods)
			r.Get("/emotions", catalogHandler.ListEmotions)
			r.Get("/scenes", catalogHandler.ListScenes)
		})

		// ──── Cat Routes ────
		r.Route("/cats", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/", catHandler.List)
			r.Post("/", catHandler.Create)
			r.Get("/{id}", catHandler.Get)
			r.Put("/{id}", catHandler.Update)
			r.Delete("/{id}", catHandler.Delete)
		})

		// ──── History Routes ────
		r.Route("/history", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/", historyHandler.List)
			r.Get("/{id}", historyHandler.Get)
			r.Delete("/{id}", historyHandler.Delete)
		})

		// ──── User Routes ────
		r.Route("/user", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/me", userHandler.GetMe)
			r.Put("/me", userHandler.UpdateMe)
			r.Get("/usage", userHandler.GetUsage)
		})

		// ──── Admin Routes ────
		r.Route("/admin", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Use(adminGuard.Middleware)

			r.Route("/styles", func(r chi.Router) {
				r.Get("/", adminHandler.ListStyles)
				r.Post("/", adminHandler.CreateStyle)
				r.Put("/{id}", adminHandler.UpdateStyle)
				r.Delete("/{id}", adminHandler.DeleteStyle)
			})
			r.Route("/foods", func(r chi.Router) {
				r.Get("/", adminHandler.ListFoods)
				r.Post("/", adminHandler.CreateFood)
				r.Put("/{id}", adminHandler.UpdateFood)
				r.Delete("/{id}", adminHandler.DeleteFood)
			})
			r.Route("/emotions", func(r chi.Router) {
				r.Get("/", adminHandler.ListEmotions)
				r.Post("/", adminHandler.CreateEmotion)
				r.Put("/{id}", adminHandler.UpdateEmotion)
				r.Delete("/{id}", adminHandler.DeleteEmotion)
			})
			r.Route("/scenes", func(r chi.Router) {
				r.Get("/", adminHandler.ListScenes)
				r.Post("/", adminHandler.CreateScene)
				r.Put("/{id}", adminHandler.UpdateScene)
				r.Delete("/{id}", adminHandler.DeleteScene)
			})
			r.Route("/templates", func(r chi.Router) {
				r.Get("/", adminHandler.ListTemplates)
				r.Post("/", adminHandler.CreateTemplate)
				r.Put("/{id}", adminHandler.UpdateTemplate)
				r.Delete("/{id}", adminHandler.DeleteTemplate)
				r.Post("/{id}/set-default", adminHandler.SetDefaultTemplate)
			})
			r.Route("/users", func(r chi.Router) {
				r.Get("/", adminHandler.ListUsers)
				r.Get("/{id}/history", adminHandler.ListUserHistory)
				r.Put("/{id}/plan", adminHandler.UpdateUserPlan)
				r.Put("/{id}/admin", adminHandler.SetUserAdmin)
			})
		})
	})

	return r
}
