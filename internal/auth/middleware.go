package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"personalsite/internal/db"
)

type contextKey int

const claimsKey contextKey = 0

// Claims is the authenticated identity extracted from a bearer token.
type Claims struct {
	UserID string
	Email  string
	Role   string
}

// FromContext returns the claims set by Middleware, if any.
func FromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*Claims)
	return claims, ok
}

// Middleware verifies the Authorization bearer token and stores the claims in
// the request context.
func Middleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				http.Error(w, "Not authorized to access this route", http.StatusUnauthorized)
				return
			}

			claims, err := ParseToken(secret, strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				http.Error(w, "Not authorized to access this route", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects requests whose token does not carry the ADMIN role.
// Must run after Middleware.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := FromContext(r.Context())
		if !ok || claims.Role != db.RoleAdmin {
			http.Error(w, "Not authorized to access this route", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ParseToken validates an HS256 token and extracts the identity claims.
func ParseToken(secret, tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	claims := &Claims{}
	if v, ok := mapClaims["user_id"].(string); ok {
		claims.UserID = v
	}
	if v, ok := mapClaims["email"].(string); ok {
		claims.Email = v
	}
	if v, ok := mapClaims["role"].(string); ok {
		claims.Role = v
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("token missing user_id claim")
	}
	return claims, nil
}
