package recommend

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"EmojiFM/logger"
	"EmojiFM/model"

	"github.com/fsnotify/fsnotify"
)

// fallback_songs.json ships a per-genre list of well-known tracks used
// when the live catalog search yields nothing. It is data, not logic:
// operators can override it with FALLBACK_SONGS_PATH without touching
// the engine.
//
//go:embed fallback_songs.json
var defaultFallbackData []byte

// placeholderSong is returned for a genre that has no entry in the
// fallback table either.
var placeholderSong = model.Song{
	Name:       "No recommendation available",
	Artist:     "EmojiFM",
	SpotifyURL: "",
	PreviewURL: "",
}

type fallbackEntry struct {
	Name       string `json:"name"`
	Artist     string `json:"artist"`
	SpotifyURL string `json:"spotifyUrl"`
	PreviewURL string `json:"previewUrl"`
}

// FallbackTable is the static per-genre song table. Reads vastly
// outnumber reloads, so it is guarded by an RWMutex and swapped whole
// on reload.
type FallbackTable struct {
	mu     sync.RWMutex
	genres map[string][]fallbackEntry
}

// NewFallbackTable builds the table from the embedded default data.
func NewFallbackTable() *FallbackTable {
	genres, err := parseFallbackData(defaultFallbackData)
	if err != nil {
		// The embedded asset is validated by tests; reaching this means
		// a broken build, not a runtime condition.
		panic(fmt.Sprintf("embedded fallback song table is invalid: %v", err))
	}
	return &FallbackTable{genres: genres}
}

// LoadFile replaces the table contents with the given JSON file. The
// previous table keeps serving if the file cannot be read or parsed.
func (t *FallbackTable) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read fallback song file: %w", err)
	}
	genres, err := parseFallbackData(data)
	if err != nil {
		return fmt.Errorf("failed to parse fallback song file: %w", err)
	}

	t.mu.Lock()
	t.genres = genres
	t.mu.Unlock()

	logger.Info("loaded fallback song table",
		logger.String("path", path),
		logger.Int("genres", len(genres)))
	return nil
}

// Watch reloads the table whenever the file at path changes, until ctx
// is done. Parse failures keep the previous table.
func (t *FallbackTable) Watch(ctx context.Context, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fallback table watcher: %w", err)
	}
	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch fallback song file: %w", err)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				if err := t.LoadFile(path); err != nil {
					logger.Warn("fallback song table reload failed, keeping previous table",
						logger.String("path", path),
						logger.ErrorField(err))
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("fallback table watcher error", logger.ErrorField(err))
			}
		}
	}()
	return nil
}

// Songs returns up to limit fallback songs for one genre, each tagged
// with that genre. A genre with no entry yields the single placeholder.
func (t *FallbackTable) Songs(genre string, limit int) []model.Song {
	t.mu.RLock()
	entries := t.genres[genre]
	t.mu.RUnlock()

	if len(entries) == 0 {
		placeholder := placeholderSong
		placeholder.SourceGenre = genre
		return []model.Song{placeholder}
	}

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	songs := make([]model.Song, 0, len(entries))
	for _, e := range entries {
		songs = append(songs, model.Song{
			Name:        e.Name,
			Artist:      e.Artist,
			SpotifyURL:  e.SpotifyURL,
			PreviewURL:  e.PreviewURL,
			SourceGenre: genre,
		})
	}
	return songs
}

// SongsForGenres concatenates per-genre fallback songs in the given
// genre order, deduplicated structurally.
func (t *FallbackTable) SongsForGenres(genres []string, limit int) []model.Song {
	var all []model.Song
	for _, genre := range genres {
		all = append(all, t.Songs(genre, limit)...)
	}
	return model.DedupSongs(all)
}

func parseFallbackData(data []byte) (map[string][]fallbackEntry, error) {
	var genres map[string][]fallbackEntry
	if err := json.Unmarshal(data, &genres); err != nil {
		return nil, err
	}
	return genres, nil
}
