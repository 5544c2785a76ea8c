package handler

import (
	"context"
	"go-task-api/common"
	"go-task-api/service"
	"net/http"
	"strings"
)

type contextKey string

const (
	UserIDKey   contextKey = "userID"
	RawTokenKey contextKey = "rawToken"
)

// AuthMiddleware validates the bearer credential on every protected route.
// The scheme must be exactly "Bearer" (case-sensitive) and the token must
// decode; the user id claim and the raw token are placed into the request
// context. Whether the identity still exists is resolved downstream.
func AuthMiddleware(tokens service.ITokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				common.NewAppError(http.StatusUnauthorized, "Authorization header is required", nil).Send(w)
				return
			}

			scheme, tokenString, found := strings.Cut(authHeader, " ")
			if !found {
				common.NewAppError(http.StatusUnauthorized, "Invalid authorization header format", nil).Send(w)
				return
			}

			tokenString, err := tokens.ValidateCredentials(scheme, tokenString)
			if err != nil {
				common.NewAppError(http.StatusUnauthorized, "Authorization header invalid", nil).Send(w)
				return
			}

			userID, ok := tokens.ExtractUserID(tokenString)
			if !ok {
				common.NewAppError(http.StatusUnauthorized, "You are not authorized", nil).Send(w)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			ctx = context.WithValue(ctx, RawTokenKey, tokenString)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
