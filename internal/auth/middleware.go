package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
)

type contextKey string

const AdminContextKey contextKey = "admin"

// Middleware rejects requests without a valid bearer token. A missing token
// gets 401, a bad one 400.
func Middleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := bearerToken(r.Header.Get("Authorization"))
			if tokenStr == "" {
				http.Error(w, "Access Denied: No Token Provided", http.StatusUnauthorized)
				return
			}
			claims, err := ValidateToken(secret, tokenStr)
			if err != nil {
				slog.InfoContext(r.Context(), "rejected admin token", "path", r.URL.Path, "err", err)
				http.Error(w, "Invalid Token", http.StatusBadRequest)
				return
			}
			ctx := context.WithValue(r.Context(), AdminContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken returns the second space-separated part of the header.
func bearerToken(header string) string {
	parts := strings.Fields(header)
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

func GetAdmin(ctx context.Context) *Claims {
	claims, _ := ctx.Value(AdminContextKey).(*Claims)
	return claims
}
