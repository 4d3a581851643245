package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"userbase/app/controllers"
	"userbase/app/middleware"
)

// New builds the route table. The shield gate runs before anything
// else; user CRUD requires a session and mutations require the admin
// role.
func New(authCtrl *controllers.AuthController, userCtrl *controllers.UserController, auth *middleware.Auth, shield *middleware.Shield, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(shield.Gate)
	r.Use(middleware.Logging(logger))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", authCtrl.Register)
		r.Post("/login", authCtrl.Login)
		r.Post("/logout", authCtrl.Logout)
		r.With(auth.RequireAuth).Get("/me", authCtrl.Me)
	})

	r.Route("/api/users", func(r chi.Router) {
		r.Use(auth.RequireAuth)
		r.Get("/", userCtrl.List)
		r.Get("/{id}", userCtrl.Get)
		r.With(auth.RequireAdmin).Post("/", userCtrl.Create)
		r.With(auth.RequireAdmin).Put("/{id}", userCtrl.Update)
		r.With(auth.RequireAdmin).Delete("/{id}", userCtrl.Delete)
	})

	return r
}
