package model

import "time"

// EmojiMood maps a single emoji grapheme to a mood label and a genre hint.
// The emoji is unique across the table; GenreHint is the only field the
// recommendation engine consumes, MoodDescription is display-only.
type EmojiMood struct {
	ID              int64     `json:"id"`
	Emoji           string    `json:"emoji"`
	MoodDescription string    `json:"moodDescription"`
	GenreHint       string    `json:"genreHint"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
