package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/baharkarakas/bloglist-backend/internal/api/handlers"
	"github.com/baharkarakas/bloglist-backend/internal/metrics"
	"github.com/baharkarakas/bloglist-backend/internal/middleware"
	"github.com/baharkarakas/bloglist-backend/internal/services"
)

type RouterDeps struct {
	UserSvc        *services.UserService
	AuthSvc        *services.AuthService
	BlogSvc        *services.BlogService
	AllowedOrigins []string
}

func NewRouter(d RouterDeps) http.Handler {
	origins := d.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.HTTPMetrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	// health & metrics
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	authMW := middleware.NewAuthMiddleware(d.AuthSvc)
	blogs := handlers.NewBlogHandler(d.BlogSvc)
	users := handlers.NewUserHandler(d.UserSvc)
	login := handlers.NewLoginHandler(d.AuthSvc)

	r.Route("/api", func(r chi.Router) {
		// ---------- blogs ----------
		r.Get("/blogs", blogs.List)
		r.Get("/blogs/{id}", blogs.Get)
		// update bilerek token istemiyor
		r.Put("/blogs/{id}", blogs.Update)
		r.Group(func(r chi.Router) {
			r.Use(authMW.Auth)
			r.Post("/blogs", blogs.Create)
			r.Delete("/blogs/{id}", blogs.Delete)
		})

		// ---------- users ----------
		r.Post("/users", users.Register)
		r.Get("/users", users.List)
		r.Get("/users/{id}", users.Get)

		// ---------- auth ----------
		r.Post("/login", login.Login)
	})

	return r
}
