package rest

import (
	"log/slog"
	"net/http"
	"time"

	"myblog/internal/service"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

type Handler struct {
	posts     *service.PostService
	comments  *service.CommentService
	keepAlive time.Duration
}

func NewRouter(posts *service.PostService, comments *service.CommentService, keepAlive time.Duration, log *slog.Logger) http.Handler {
	h := &Handler{
		posts:     posts,
		comments:  comments,
		keepAlive: keepAlive,
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(RequestLogger(log))
	r.Use(chimiddleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Post("/posts", h.CreatePost)
		r.Get("/posts", h.ListPosts)

		r.Route("/posts/{postID}", func(r chi.Router) {
			r.Get("/", h.GetPost)
			r.Put("/comments-enabled", h.SetCommentsEnabled)

			r.Post("/comments", h.CreateComment)
			r.Get("/comments", h.ListComments)
			r.Get("/comments/stream", h.StreamComments)
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return r
}
