// internal/middleware/jwt_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestTokenRoundTrip(t *testing.T) {
	SetJWTSecret("test-secret")
	memberID := uuid.New()

	token, err := GenerateToken(memberID)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, memberID, claims.MemberID)
	assert.Equal(t, "ojt-community-api", claims.Issuer)

	// A token signed with a different secret is rejected
	SetJWTSecret("other-secret")
	_, err = ValidateToken(token)
	assert.Error(t, err)
	SetJWTSecret("test-secret")

	// Garbage is rejected
	_, err = ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestJWTMiddleware(t *testing.T) {
	SetJWTSecret("test-secret")
	memberID := uuid.New()

	var gotID uuid.UUID
	var gotOK bool
	handler := func(w http.ResponseWriter, r *http.Request) {
		gotID, gotOK = GetMemberIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}

	// An unprotected route passes through without a header
	w := httptest.NewRecorder()
	ApplyJWTMiddleware(handler, "/health")(w, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	// A protected route without a header is rejected
	w = httptest.NewRecorder()
	ApplyJWTMiddleware(handler, "/posts")(w, httptest.NewRequest("POST", "/posts", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// A malformed Authorization header is rejected
	w = httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/posts", nil)
	req.Header.Set("Authorization", "Basic abc123")
	ApplyJWTMiddleware(handler, "/posts")(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// A valid bearer token passes and the member ID lands in the context
	token, err := GenerateToken(memberID)
	assert.NoError(t, err)

	w = httptest.NewRecorder()
	req = httptest.NewRequest("POST", "/posts", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	ApplyJWTMiddleware(handler, "/posts")(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, gotOK)
	assert.Equal(t, memberID, gotID)
}
