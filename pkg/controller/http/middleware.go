package http

import (
	"net/http"

	"github.com/cherish-app/cherish/pkg/utils/logging"
	"github.com/go-chi/chi/v5/middleware"
)

// requestLogger attaches a logger tagged with the request ID to the request
// context. It must run after middleware.RequestID.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := logging.Default()
		if reqID := middleware.GetReqID(r.Context()); reqID != "" {
			logger = logger.With("request_id", reqID)
		}

		ctx := logging.With(r.Context(), logger)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
