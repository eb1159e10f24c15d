package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"blogify/app/auth"
)

type contextKey string

const userIDKey contextKey = "userID"

// Protect guards a route with bearer-token authentication. A missing,
// malformed, invalid or expired token ends the request with a 401; on
// success the verified user ID is stored on the request context.
func Protect(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				unauthorized(w, "Authorization token missing")
				return
			}
			tokenString := strings.TrimPrefix(header, "Bearer ")
			if tokenString == "" {
				unauthorized(w, "Authorization token missing")
				return
			}

			userID, err := auth.ParseToken(secret, tokenString)
			if err != nil {
				unauthorized(w, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID returns the authenticated user's ID from the request context. The
// second return is false on routes that did not pass through Protect.
func UserID(r *http.Request) (int, bool) {
	id, ok := r.Context().Value(userIDKey).(int)
	return id, ok
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
