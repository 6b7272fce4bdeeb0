package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/isdelr/conduit-be/internal/api/handlers"
	"github.com/isdelr/conduit-be/internal/auth"
	"github.com/isdelr/conduit-be/internal/realtime"
	"github.com/isdelr/conduit-be/internal/services"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(
	authMW *auth.Middleware,
	codec *auth.TokenCodec,
	hub *realtime.Hub,
	userService services.UserServiceProvider,
	profileService services.ProfileServiceProvider,
	articleService services.ArticleServiceProvider,
	commentService services.CommentServiceProvider,
	tagService services.TagServiceProvider,
	allowedOrigin string,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{allowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService, codec)
	profileHandler := handlers.NewProfileHandler(profileService)
	articleHandler := handlers.NewArticleHandler(articleService)
	commentHandler := handlers.NewCommentHandler(commentService)
	tagHandler := handlers.NewTagHandler(tagService)
	wsHandler := handlers.NewWebSocketHandler(hub)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"errors":{"body":["Not found"]}}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"status":"ok"}`))
		})

		// WebSocket connection endpoint for content events
		r.Get("/ws", wsHandler.Serve)

		// Registration and login, with the /auth aliases the SPA also uses
		r.Post("/users", userHandler.Register)
		r.Post("/auth/register", userHandler.Register)
		r.Post("/users/login", userHandler.Login)
		r.Post("/auth/login", userHandler.Login)

		r.With(authMW.Required).Get("/auth/me", userHandler.GetCurrent)
		r.Route("/user", func(r chi.Router) {
			r.Use(authMW.Required)
			r.Get("/", userHandler.GetCurrent)
			r.Put("/", userHandler.Update)
		})

		r.Route("/profiles/{username}", func(r chi.Router) {
			r.With(authMW.Optional).Get("/", profileHandler.Get)
			r.With(authMW.Required).Post("/follow", profileHandler.Follow)
			r.With(authMW.Required).Delete("/follow", profileHandler.Unfollow)
		})

		r.Route("/articles", func(r chi.Router) {
			r.With(authMW.Optional).Get("/", articleHandler.List)
			r.With(authMW.Required).Post("/", articleHandler.Create)
			r.With(authMW.Required).Get("/feed", articleHandler.Feed)

			r.Route("/{slug}", func(r chi.Router) {
				r.With(authMW.Optional).Get("/", articleHandler.Get)
				r.With(authMW.Required).Put("/", articleHandler.Update)
				r.With(authMW.Required).Delete("/", articleHandler.Delete)

				r.With(authMW.Required).Post("/favorite", articleHandler.Favorite)
				r.With(authMW.Required).Delete("/favorite", articleHandler.Unfavorite)

				r.With(authMW.Optional).Get("/comments", commentHandler.List)
				r.With(authMW.Required).Post("/comments", commentHandler.Create)
				r.With(authMW.Required).Delete("/comments/{id}", commentHandler.Delete)
			})
		})

		r.Get("/tags", tagHandler.List)
	})

	return r
}
