package model

// RecommendationResponse is the transient aggregate returned by the
// recommendation engine. Never persisted.
type RecommendationResponse struct {
	Genres []string `json:"genres"`
	Songs  []Song   `json:"songs"`
}
