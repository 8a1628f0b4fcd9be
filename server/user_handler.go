package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"EmojiFM/logger"
	"EmojiFM/model"
	"EmojiFM/repository"
)

// userRequest is the request body for creating or updating a user.
type userRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (req *userRequest) validate() string {
	if strings.TrimSpace(req.Username) == "" {
		return "username is required"
	}
	if strings.TrimSpace(req.Email) == "" {
		return "email is required"
	}
	return ""
}

// ListUsersHandler returns every user.
func (h *APIHandler) ListUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := h.userRepo.ListUsers()
	if err != nil {
		logger.Error("failed to list users", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to list users")
		return
	}
	if users == nil {
		users = []model.User{}
	}
	respondJSON(w, http.StatusOK, users)
}

// GetUserHandler returns one user by id.
func (h *APIHandler) GetUserHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDVar(w, r)
	if !ok {
		return
	}

	user, err := h.userRepo.GetUserByID(id)
	if err != nil {
		logger.Error("failed to get user", logger.Int64("id", id), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to get user")
		return
	}
	if user == nil {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// CreateUserHandler creates a user without credentials. Accounts that
// can log in are made through /api/auth/register instead.
func (h *APIHandler) CreateUserHandler(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	user := &model.User{Username: req.Username, Email: req.Email}
	id, err := h.userRepo.CreateUser(user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			respondError(w, http.StatusConflict, "Username or email already exists")
			return
		}
		logger.Error("failed to create user", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	user.ID = id
	respondJSON(w, http.StatusCreated, user)
}

// UpdateUserHandler replaces username and email on an existing user.
func (h *APIHandler) UpdateUserHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDVar(w, r)
	if !ok {
		return
	}

	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	updated, err := h.userRepo.UpdateUser(id, &model.User{Username: req.Username, Email: req.Email})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUserNotFound):
			respondError(w, http.StatusNotFound, "User not found")
		case errors.Is(err, repository.ErrDuplicateUser):
			respondError(w, http.StatusConflict, "Username or email already exists")
		default:
			logger.Error("failed to update user", logger.Int64("id", id), logger.ErrorField(err))
			respondError(w, http.StatusInternalServerError, "Failed to update user")
		}
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// DeleteUserHandler removes a user. Idempotent like mood deletion.
func (h *APIHandler) DeleteUserHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDVar(w, r)
	if !ok {
		return
	}

	if err := h.userRepo.DeleteUser(id); err != nil {
		logger.Error("failed to delete user", logger.Int64("id", id), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to delete user")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
