package server

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"trade-journal-go/internal/store"
)

type contextKey string

const userIDKey contextKey = "user_id"

// userID pulls the authenticated user's id out of the request context.
func userID(r *http.Request) uint {
	id, _ := r.Context().Value(userIDKey).(uint)
	return id
}

// authenticate resolves the bearer token to a user and stores the user id
// on the request context. Requests without a valid token get 401.
func (h *APIHandler) authenticate(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		user, err := h.store.GetUserByToken(r.Context(), token)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				writeError(w, http.StatusUnauthorized, "invalid token")
				return
			}
			h.log.Error("Failed to resolve API token", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "authentication failed")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, user.ID)
		next(w, r.WithContext(ctx))
	}
}

// rateLimit rejects requests beyond the configured rate with 429.
func rateLimit(limiter *rate.Limiter, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next(w, r)
	}
}
