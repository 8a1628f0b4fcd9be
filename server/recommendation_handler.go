package server

import (
	"net/http"
	"time"

	"EmojiFM/logger"
)

// RecommendationsByEmojisHandler returns genre and song recommendations
// for the emoji string in the "emojis" query parameter.
//
// The engine never fails: upstream catalog outages degrade to the static
// fallback table, so this endpoint answers 200 for every input.
func (h *APIHandler) RecommendationsByEmojisHandler(w http.ResponseWriter, r *http.Request) {
	emojis := r.URL.Query().Get("emojis")

	start := time.Now()
	result := h.engine.Recommend(r.Context(), emojis)

	logger.Debug("served recommendations",
		logger.String("emojis", emojis),
		logger.Strings("genres", result.Genres),
		logger.Int("songs", len(result.Songs)),
		logger.Duration("elapsed", time.Since(start)))

	respondJSON(w, http.StatusOK, result)
}
