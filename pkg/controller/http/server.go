package http

import (
	"net/http"
	"time"

	"github.com/cherish-app/cherish/pkg/usecase"
	"github.com/cherish-app/cherish/pkg/utils/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Server struct {
	router *chi.Mux
	uc     *usecase.UseCases
}

type Options func(*Server)

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Route("/actions", func(r chi.Router) {
		r.Post("/suggest", s.suggestAction)
		r.Get("/", s.listApprovedActions)
		r.Get("/all", s.listAllActions)
		r.Get("/get/{id}", s.getAction)
		r.Get("/random", s.randomAction)
		r.Put("/approve/{id}", s.approveAction)
		r.Put("/{kind:"+engagementPattern()+"}/{id}", s.toggleEngagement)
		r.Delete("/{id}", s.deleteAction)
	})

	r.Route("/users", func(r chi.Router) {
		r.Post("/add", s.addUser)
		r.Get("/get/{id}", s.getUser)
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.From(r.Context()).Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
