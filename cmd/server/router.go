package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ayush/todo-webapp/internal/auth"
	"github.com/ayush/todo-webapp/internal/middleware"
	"github.com/ayush/todo-webapp/internal/todo"
	"github.com/ayush/todo-webapp/internal/web"
)

// newRouter wires the full route table. The auth gate guards everything
// identity-bound, and the rate limiter applies only to item creation.
func newRouter(
	pages *web.Handler,
	authHandler *auth.Handler,
	todoHandler *todo.Handler,
	sessions auth.SessionStore,
	access middleware.AccessStore,
) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:8000", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Public pages and auth endpoints
	r.Get("/", pages.Home)
	r.Get("/register", pages.RegisterPage)
	r.Get("/login", pages.LoginPage)
	r.Handle("/public/*", web.Static())
	r.Post("/register-user", authHandler.Register)
	r.Post("/login-user", authHandler.Login)

	// Everything below requires a live authenticated session
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(sessions))

		r.Get("/dashboard", pages.Dashboard)
		r.Post("/logout", authHandler.Logout)
		r.Post("/logout_from_all_devices", authHandler.LogoutAll)

		r.With(middleware.RateLimit(access)).Post("/create-item", todoHandler.Create)
		r.Get("/read-item", todoHandler.List)
		r.Post("/edit-item", todoHandler.Edit)
		r.Post("/delete-item", todoHandler.Delete)
	})

	return r
}
