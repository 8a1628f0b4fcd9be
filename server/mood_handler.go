package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"EmojiFM/logger"
	"EmojiFM/model"
	"EmojiFM/repository"

	"github.com/gorilla/mux"
)

// moodRequest is the request body for creating or updating a mood entry.
type moodRequest struct {
	Emoji           string `json:"emoji"`
	MoodDescription string `json:"moodDescription"`
	GenreHint       string `json:"genreHint"`
}

func (req *moodRequest) validate() string {
	if strings.TrimSpace(req.Emoji) == "" {
		return "emoji is required"
	}
	if strings.TrimSpace(req.GenreHint) == "" {
		return "genreHint is required"
	}
	return ""
}

// GetEmojiMoodsHandler returns every mood entry.
func (h *APIHandler) GetEmojiMoodsHandler(w http.ResponseWriter, r *http.Request) {
	moods, err := h.moodRepo.FindAll()
	if err != nil {
		logger.Error("failed to list emoji moods", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to list emoji moods")
		return
	}
	if moods == nil {
		moods = []model.EmojiMood{}
	}
	respondJSON(w, http.StatusOK, moods)
}

// GetEmojiMoodHandler returns one mood entry by id.
func (h *APIHandler) GetEmojiMoodHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDVar(w, r)
	if !ok {
		return
	}

	mood, err := h.moodRepo.FindByID(id)
	if err != nil {
		logger.Error("failed to get emoji mood", logger.Int64("id", id), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to get emoji mood")
		return
	}
	if mood == nil {
		respondError(w, http.StatusNotFound, "Emoji mood not found")
		return
	}
	respondJSON(w, http.StatusOK, mood)
}

// CreateEmojiMoodHandler creates a new mood entry.
func (h *APIHandler) CreateEmojiMoodHandler(w http.ResponseWriter, r *http.Request) {
	var req moodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	mood := &model.EmojiMood{
		Emoji:           req.Emoji,
		MoodDescription: req.MoodDescription,
		GenreHint:       req.GenreHint,
	}
	id, err := h.moodRepo.Create(mood)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmoji) {
			respondError(w, http.StatusConflict, "Emoji is already mapped")
			return
		}
		logger.Error("failed to create emoji mood", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to create emoji mood")
		return
	}

	created, err := h.moodRepo.FindByID(id)
	if err != nil || created == nil {
		// The row was inserted; fall back to echoing the input.
		mood.ID = id
		respondJSON(w, http.StatusCreated, mood)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// UpdateEmojiMoodHandler replaces the mutable fields of a mood entry.
func (h *APIHandler) UpdateEmojiMoodHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDVar(w, r)
	if !ok {
		return
	}

	var req moodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	updated, err := h.moodRepo.Update(id, &model.EmojiMood{
		Emoji:           req.Emoji,
		MoodDescription: req.MoodDescription,
		GenreHint:       req.GenreHint,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrMoodNotFound):
			respondError(w, http.StatusNotFound, "Emoji mood not found")
		case errors.Is(err, repository.ErrDuplicateEmoji):
			respondError(w, http.StatusConflict, "Emoji is already mapped")
		default:
			logger.Error("failed to update emoji mood", logger.Int64("id", id), logger.ErrorField(err))
			respondError(w, http.StatusInternalServerError, "Failed to update emoji mood")
		}
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// DeleteEmojiMoodHandler removes a mood entry. Idempotent: deleting an
// absent id still answers 204.
func (h *APIHandler) DeleteEmojiMoodHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDVar(w, r)
	if !ok {
		return
	}

	if err := h.moodRepo.Delete(id); err != nil {
		logger.Error("failed to delete emoji mood", logger.Int64("id", id), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to delete emoji mood")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// parseIDVar reads the {id} route variable, answering 400 on garbage.
func parseIDVar(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return id, true
}
