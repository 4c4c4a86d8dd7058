package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "tastebud/pkg/errors"
)

// JWTConfig holds JWT validation configuration
type JWTConfig struct {
	SigningMethod string
	SecretKey     string
	Issuer        string
	Audience      []string
}

// Claims represents the validated identity carried by a request. Token
// issuance happens upstream; this service only resolves a token to a user.
type Claims struct {
	UserID   string
	Username string
	Email    string
	IssuedAt time.Time
}

// jwtClaims is the raw claim set parsed from the token
type jwtClaims struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// JWTValidator validates bearer tokens
type JWTValidator struct {
	config JWTConfig
}

// NewJWTValidator creates a validator for the configured signing method
func NewJWTValidator(config JWTConfig) (*JWTValidator, error) {
	if config.SecretKey == "" {
		return nil, fmt.Errorf("jwt secret key is required")
	}
	if config.SigningMethod == "" {
		config.SigningMethod = "HS256"
	}
	if config.SigningMethod != "HS256" {
		return nil, fmt.Errorf("unsupported signing method: %s", config.SigningMethod)
	}
	return &JWTValidator{config: config}, nil
}

// Validate parses and verifies a token string, returning the claims
func (v *JWTValidator) Validate(tokenString string) (*Claims, error) {
	parsed := &jwtClaims{}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{v.config.SigningMethod}),
	}
	if v.config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.config.Issuer))
	}
	if len(v.config.Audience) > 0 {
		opts = append(opts, jwt.WithAudience(v.config.Audience[0]))
	}

	token, err := jwt.ParseWithClaims(tokenString, parsed, func(t *jwt.Token) (interface{}, error) {
		return []byte(v.config.SecretKey), nil
	}, opts...)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("invalid token").WithCause(err)
	}
	if !token.Valid {
		return nil, apperrors.NewUnauthorizedError("invalid token")
	}
	if parsed.Subject == "" {
		return nil, apperrors.NewUnauthorizedError("token missing subject")
	}

	claims := &Claims{
		UserID:   parsed.Subject,
		Username: parsed.Username,
		Email:    parsed.Email,
	}
	if parsed.IssuedAt != nil {
		claims.IssuedAt = parsed.IssuedAt.Time
	}
	return claims, nil
}

// userContextKey is the context key for the authenticated user
type userContextKey struct{}

// UserContext carries the resolved identity through the request
type UserContext struct {
	UserID   string
	Username string
	Email    string
}

// SetUserContext stores the authenticated user in the context
func SetUserContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// GetUserFromContext extracts the authenticated user from the context
func GetUserFromContext(ctx context.Context) (*UserContext, error) {
	user, ok := ctx.Value(userContextKey{}).(*UserContext)
	if !ok || user == nil || user.UserID == "" {
		return nil, apperrors.NewUnauthorizedError("no authenticated user in context")
	}
	return user, nil
}
