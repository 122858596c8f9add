package middleware

import (
	"net/http"
	"time"

	"tech-assigner/internal/logx"
	"tech-assigner/internal/session"
)

// Auth extracts the operator session from the Authorization header and puts
// it on the request context. A missing token or a token already past its
// expiry claim is rejected with 401 before any backend call is made; the
// backend stays the final verifier for everything else.
func Auth(logger logx.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := session.FromBearer(r.Header.Get("Authorization"))
			if err != nil || sess.Expired(time.Now()) {
				logger.Warn("unauthenticated request",
					logx.String("path", r.URL.Path),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"session expired"}` + "\n"))
				return
			}
			next.ServeHTTP(w, r.WithContext(session.WithSession(r.Context(), sess)))
		})
	}
}
