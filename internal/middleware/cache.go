// Package middleware provides handler-level middlewares.
package middleware

import (
	"net/http"
	"net/http/httptest"
	"time"
)

// Storage keeps rendered responses keyed by request URI.
type Storage interface {
	Get(key string) []byte
	Set(key string, content []byte, duration time.Duration)
}

// Cached replays the handler's response from storage for ttl.
func Cached(storage Storage, ttl time.Duration, handler func(w http.ResponseWriter, r *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		content := storage.Get(r.RequestURI)
		if content != nil {
			_, _ = w.Write(content)
			return
		}

		c := httptest.NewRecorder()
		handler(c, r)

		for k, v := range c.Header() {
			w.Header()[k] = v
		}

		w.WriteHeader(c.Code)
		content = c.Body.Bytes()

		storage.Set(r.RequestURI, content, ttl)

		_, _ = w.Write(content)
	}
}
