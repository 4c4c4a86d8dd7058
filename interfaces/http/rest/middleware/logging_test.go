package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"tastebud/pkg/auth"
)

func signToken(t *testing.T, secret, subject string) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestLoggerRecordsAuthenticatedUser(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	validator, err := auth.NewJWTValidator(auth.JWTConfig{SecretKey: "test-secret"})
	require.NoError(t, err)

	handler := Logger(zap.New(core))(Authenticate(validator, nil, zap.NewNop())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}),
	))

	r := httptest.NewRequest("GET", "/api/ratings/stats", nil)
	r.Header.Set("Authorization", "Bearer "+signToken(t, "test-secret", "user-1"))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	entries := logs.All()
	require.Len(t, entries, 1)

	fields := entries[0].ContextMap()
	assert.Equal(t, "user-1", fields["userID"])
	assert.EqualValues(t, http.StatusOK, fields["status"])
	assert.Equal(t, "/api/ratings/stats", fields["path"])
}

func TestLoggerOmitsUserWhenUnauthenticated(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	handler := Logger(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/health", nil))

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.NotContains(t, entries[0].ContextMap(), "userID")
}

func TestLoggerElevatesServerErrors(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	handler := Logger(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/ratings/stats", nil))

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zap.ErrorLevel, entries[0].Level)
}
