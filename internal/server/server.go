// Package server Plume
//
// Plume is a microblogging engine which provides posts, follows, likes and a chronological feed.
//
//     Schemes: https
//     BasePath: /v1
//     Version: 1.0.0
//
//     Produces:
//     - application/json
//     Consumes:
//     - application/json
//
// swagger:meta
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"
	"github.com/tomasen/realip"

	"github.com/plumenet/plume/internal/media"
	mm "github.com/plumenet/plume/internal/middleware"
	"github.com/plumenet/plume/internal/middleware/memory"
	"github.com/plumenet/plume/internal/service"
)

//go:generate swagger generate spec -t swagger -m -c . -o ../../static/swagger.json

type server struct {
	s service.Service
	a *media.Admitter
}

// SetupRouter setups handlers to chi router.
func SetupRouter(s service.Service, a *media.Admitter, r chi.Router, timeout time.Duration, maxBodySize int64) {
	r.Use(
		middleware.RequestID,
		loggerMiddleware,
		middleware.StripSlashes,
		cors.AllowAll().Handler,
		recovererMiddleware,
		middleware.Timeout(timeout),
		bodyLimiterMiddleware(maxBodySize),
	)

	srv := server{
		s: s,
		a: a,
	}

	r.Route("/v1", func(r chi.Router) {
		r.Post("/posts", srv.createPost)
		r.Get("/posts/{id}", srv.getPost)
		r.Post("/posts/{id}/like", srv.toggleLike)
		r.Post("/media", srv.uploadMedia)
		r.Post("/users/{followee}/follow", srv.follow)
		r.Delete("/users/{followee}/follow", srv.unfollow)
		r.Get("/users/{user}/followees", srv.followees)
		r.Get("/feed", srv.getFeed)
		r.Get("/stats", mm.Cached(memory.NewStorage(), 10*time.Minute, srv.getStats))
	})
}

func loggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.WithFields(logrus.Fields{
			"ip":         realip.FromRequest(r),
			"method":     r.Method,
			"uri":        r.RequestURI,
			"request_id": middleware.GetReqID(r.Context()),
		}).Debug("request")

		next.ServeHTTP(w, r)
	})
}

func recovererMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rvr := recover(); rvr != nil {
				logrus.WithField("panic", rvr).Error("recovered from panic")
				writeError(w, http.StatusInternalServerError, "internal error")
			}
		}()

		next.ServeHTTP(w, r)
	})
}

func bodyLimiterMiddleware(maxBodySize int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

			next.ServeHTTP(w, r)
		})
	}
}
