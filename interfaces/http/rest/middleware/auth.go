package middleware

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"tastebud/pkg/auth"
	"tastebud/pkg/common"
	apperrors "tastebud/pkg/errors"
)

// Authenticate creates an authentication middleware around a configured
// validator. Token issuance happens upstream; this middleware only resolves
// the bearer token to a user and enforces per-caller rate limits.
func Authenticate(validator *auth.JWTValidator, userLimiter *auth.DistributedRateLimiter, logger *zap.Logger) func(next http.Handler) http.Handler {
	// IP limiting stays in-process; the distributed limiter guards per-user
	// write volume across instances.
	ipLimiter := auth.NewIPRateLimiter(100)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientIP := getClientIP(r)

			allowed, _ := ipLimiter.Allow(r.Context(), clientIP)
			if !allowed {
				common.RespondAppError(w, apperrors.NewRateLimitError(100, "1m"))
				return
			}

			token := extractToken(r)
			if token == "" {
				common.RespondAppError(w, apperrors.NewUnauthorizedError("missing authentication token"))
				return
			}

			claims, err := validator.Validate(token)
			if err != nil {
				logger.Warn("invalid token",
					zap.Error(err),
					zap.String("ip", clientIP),
					zap.String("path", r.URL.Path),
				)
				common.RespondAppError(w, err)
				return
			}

			if userLimiter != nil {
				allowed, limErr := userLimiter.Allow(r.Context(), claims.UserID)
				if limErr != nil {
					// Limiter store failure fails open, but leave a trace
					logger.Warn("rate limiter unavailable", zap.Error(limErr))
				}
				if !allowed {
					common.RespondAppError(w, apperrors.NewRateLimitError(userLimiter.Limit(), "1m"))
					return
				}
			}

			userCtx := &auth.UserContext{
				UserID:   claims.UserID,
				Username: claims.Username,
				Email:    claims.Email,
			}
			recordRequestUser(r.Context(), claims.UserID)

			ctx := auth.SetUserContext(r.Context(), userCtx)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken extracts the JWT token from the request
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
			return parts[1]
		}
		return authHeader
	}

	if cookie, err := r.Cookie("auth_token"); err == nil {
		return cookie.Value
	}

	return ""
}

// getClientIP extracts the client IP address
func getClientIP(r *http.Request) string {
	xff := r.Header.Get("X-Forwarded-For")
	if xff != "" {
		parts := strings.Split(xff, ",")
		return strings.TrimSpace(parts[0])
	}

	xri := r.Header.Get("X-Real-IP")
	if xri != "" {
		return xri
	}

	addr := r.RemoteAddr
	if idx := strings.LastIndex(addr, ":"); idx != -1 {
		return addr[:idx]
	}
	return addr
}
