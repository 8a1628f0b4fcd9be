package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"EmojiFM/config"
	"EmojiFM/core/auth"
	"EmojiFM/core/recommend"
	"EmojiFM/logger"
	"EmojiFM/repository"
)

// contextKey is a private type for request context values.
type contextKey string

const (
	userIDKey   contextKey = "userID"
	usernameKey contextKey = "username"
)

// APIHandler handles all API requests.
type APIHandler struct {
	moodRepo repository.EmojiMoodRepository
	userRepo repository.UserRepository
	engine   *recommend.Engine
	cfg      *config.Config
}

// NewAPIHandler creates a new API handler.
func NewAPIHandler(
	moodRepo repository.EmojiMoodRepository,
	userRepo repository.UserRepository,
	engine *recommend.Engine,
	cfg *config.Config,
) *APIHandler {
	return &APIHandler{
		moodRepo: moodRepo,
		userRepo: userRepo,
		engine:   engine,
		cfg:      cfg,
	}
}

// respondJSON writes v as a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode JSON response", logger.ErrorField(err))
	}
}

// respondError writes a JSON error body with the given status code.
func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// AuthMiddleware checks for a valid JWT bearer token and puts the
// caller's identity on the request context.
func (h *APIHandler) AuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			respondError(w, http.StatusUnauthorized, "Authorization header is required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			respondError(w, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		claims, err := auth.ParseToken(parts[1])
		if err != nil {
			respondError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
		ctx = context.WithValue(ctx, usernameKey, claims.Username)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// GetUserIDFromContext extracts the user ID set by AuthMiddleware.
func GetUserIDFromContext(ctx context.Context) (int64, error) {
	userID, ok := ctx.Value(userIDKey).(int64)
	if !ok {
		return 0, errors.New("user ID not found in context")
	}
	return userID, nil
}
