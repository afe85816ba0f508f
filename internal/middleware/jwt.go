// internal/middleware/jwt.go
package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token expiration time - 24 hours
const tokenExpiration = 24 * time.Hour

// jwtSecret is the signing key, injected from configuration at startup.
var jwtSecret []byte

// SetJWTSecret installs the signing key. Must be called before tokens are
// issued or validated.
func SetJWTSecret(secret string) {
	jwtSecret = []byte(secret)
}

// Claims represents the JWT claims for our application
type Claims struct {
	MemberID uuid.UUID `json:"member_id"`
	jwt.RegisteredClaims
}

// UnprotectedRoutes defines routes that don't require JWT authentication
var UnprotectedRoutes = map[string]bool{
	"/health":           true,
	"/members/register": true,
	"/members/login":    true,
	"/boards":           true,
	"/boards/posts":     true,
	"/posts/view":       true,
	"/posts/search":     true,
}

// GenerateToken creates a new JWT token for the given member ID
func GenerateToken(memberID uuid.UUID) (string, error) {
	expirationTime := time.Now().Add(tokenExpiration)

	claims := &Claims{
		MemberID: memberID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "ojt-community-api",
			Subject:   memberID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(jwtSecret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ValidateToken validates the provided JWT token
func ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			// Verify signing method
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return jwtSecret, nil
		},
	)

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}

// ApplyJWTMiddleware wraps a handler function with JWT authentication
func ApplyJWTMiddleware(handler http.HandlerFunc, path string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Skip JWT validation for unprotected routes
		if UnprotectedRoutes[path] {
			handler(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Authorization header required", http.StatusUnauthorized)
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			http.Error(w, "Invalid authorization format", http.StatusUnauthorized)
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := ValidateToken(tokenString)
		if err != nil {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		if time.Now().After(claims.ExpiresAt.Time) {
			http.Error(w, "Token expired", http.StatusUnauthorized)
			return
		}

		// Set member ID in request context
		ctx := SetMemberIDInContext(r.Context(), claims.MemberID)

		handler(w, r.WithContext(ctx))
	}
}

// Define a custom context key type to avoid collisions
type contextKey string

// MemberIDKey is the key used to store the member ID in the context
const MemberIDKey contextKey = "member_id"

// SetMemberIDInContext saves the member ID in the request context
func SetMemberIDInContext(ctx context.Context, memberID uuid.UUID) context.Context {
	return context.WithValue(ctx, MemberIDKey, memberID)
}

// GetMemberIDFromContext retrieves the member ID from the context
func GetMemberIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	memberID, ok := ctx.Value(MemberIDKey).(uuid.UUID)
	return memberID, ok
}
