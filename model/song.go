package model

// Song is one recommended track. ID is the external catalog id and may be
// empty for statically sourced fallback songs. SourceGenre records the
// genre hint whose search produced the song, so the caller can attribute
// songs back to moods.
type Song struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Artist      string `json:"artist"`
	SpotifyURL  string `json:"spotifyUrl"`
	PreviewURL  string `json:"previewUrl"`
	SourceGenre string `json:"recommendedGenre"`
}

// Key returns the structural identity used for deduplication: two songs
// with the same name, artist and URLs are the same song regardless of
// which genre search returned them.
func (s Song) Key() string {
	return s.Name + "\x00" + s.Artist + "\x00" + s.SpotifyURL + "\x00" + s.PreviewURL
}

// DedupSongs removes structural duplicates, preserving first-seen order.
func DedupSongs(songs []Song) []Song {
	seen := make(map[string]struct{}, len(songs))
	out := make([]Song, 0, len(songs))
	for _, s := range songs {
		k := s.Key()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, s)
	}
	return out
}
