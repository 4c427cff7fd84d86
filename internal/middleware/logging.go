package middleware

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// Logger is a middleware that logs the start and end of each request,
// including the caller identity when present.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		caller := r.Header.Get(UserIDHeader)
		if caller == "" {
			caller = "-"
		}

		defer func() {
			log.Printf(
				"%s %s %d %dB %s %s uid=%s",
				r.Method,
				r.URL.Path,
				ww.Status(),
				ww.BytesWritten(),
				time.Since(start),
				r.RemoteAddr,
				caller,
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
