package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"personalsite/internal/db"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestParseTokenRoundTrip(t *testing.T) {
	signed := signToken(t, testSecret, jwt.MapClaims{
		"user_id": "u-1",
		"email":   "ana@example.com",
		"role":    db.RoleUser,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	claims, err := ParseToken(testSecret, signed)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, db.RoleUser, claims.Role)
}

func TestParseTokenRejectsBadInput(t *testing.T) {
	t.Run("wrong secret", func(t *testing.T) {
		signed := signToken(t, "other-secret", jwt.MapClaims{"user_id": "u-1"})
		_, err := ParseToken(testSecret, signed)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		signed := signToken(t, testSecret, jwt.MapClaims{
			"user_id": "u-1",
			"exp":     time.Now().Add(-time.Hour).Unix(),
		})
		_, err := ParseToken(testSecret, signed)
		assert.Error(t, err)
	})

	t.Run("missing user_id", func(t *testing.T) {
		signed := signToken(t, testSecret, jwt.MapClaims{"email": "ana@example.com"})
		_, err := ParseToken(testSecret, signed)
		assert.Error(t, err)
	})
}

func TestMiddleware(t *testing.T) {
	var got *Claims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := Middleware(testSecret)(next)

	t.Run("valid token reaches handler", func(t *testing.T) {
		signed := signToken(t, testSecret, jwt.MapClaims{
			"user_id": "u-1",
			"role":    db.RoleUser,
			"exp":     time.Now().Add(time.Hour).Unix(),
		})
		r := httptest.NewRequest("GET", "/api/auth/me", nil)
		r.Header.Set("Authorization", "Bearer "+signed)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, got)
		assert.Equal(t, "u-1", got.UserID)
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/auth/me", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("mangled token is rejected", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/auth/me", nil)
		r.Header.Set("Authorization", "Bearer not.a.token")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := Middleware(testSecret)(RequireAdmin(next))

	request := func(role string) *httptest.ResponseRecorder {
		signed := signToken(t, testSecret, jwt.MapClaims{
			"user_id": "u-1",
			"role":    role,
			"exp":     time.Now().Add(time.Hour).Unix(),
		})
		r := httptest.NewRequest("GET", "/admin/stats", nil)
		r.Header.Set("Authorization", "Bearer "+signed)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		return w
	}

	assert.Equal(t, http.StatusOK, request(db.RoleAdmin).Code)
	assert.Equal(t, http.StatusForbidden, request(db.RoleUser).Code)
}
