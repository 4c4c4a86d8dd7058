package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// requestUser is seeded into the context by Logger and filled in by
// Authenticate once the bearer token resolves, so the log line written
// after the handler returns carries the caller's identity.
type requestUser struct {
	id string
}

type requestUserKey struct{}

func recordRequestUser(ctx context.Context, userID string) {
	if ru, ok := ctx.Value(requestUserKey{}).(*requestUser); ok {
		ru.id = userID
	}
}

// Logger creates a logging middleware
func Logger(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ru := &requestUser{}
			ctx := context.WithValue(r.Context(), requestUserKey{}, ru)

			// Wrap response writer to capture status code
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r.WithContext(ctx))

			fields := []zap.Field{
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("requestID", middleware.GetReqID(ctx)),
				zap.String("remoteAddr", r.RemoteAddr),
				zap.String("userAgent", r.UserAgent()),
			}
			if ru.id != "" {
				fields = append(fields, zap.String("userID", ru.id))
			}

			if ww.Status() >= http.StatusInternalServerError {
				logger.Error("HTTP Request", fields...)
				return
			}
			logger.Info("HTTP Request", fields...)
		})
	}
}
