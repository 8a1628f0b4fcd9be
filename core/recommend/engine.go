package recommend

import (
	"context"
	"strings"
	"sync"
	"time"

	"EmojiFM/cache"
	"EmojiFM/config"
	"EmojiFM/logger"
	"EmojiFM/model"

	"github.com/rivo/uniseg"
)

// defaultGenre is recommended when a non-blank input resolves to nothing.
const defaultGenre = "Indie"

// MoodLookup is the slice of the mood store the engine needs.
type MoodLookup interface {
	FindByEmoji(emoji string) (*model.EmojiMood, error)
}

// SongSearcher performs one catalog search. Implementations absorb their
// own failures and report them as an empty list.
type SongSearcher interface {
	Search(ctx context.Context, query, itemType string, limit int, market, genreHint string) []model.Song
}

// Engine turns an emoji string into genre and song recommendations.
// Recommend never returns an error: every failure path degrades to the
// static fallback table, so a stale suggestion beats an error page.
type Engine struct {
	moods    MoodLookup
	searcher SongSearcher
	fallback *FallbackTable
	limit    int
	market   string
	cacheTTL time.Duration
}

// NewEngine wires the engine from its collaborators and configuration.
func NewEngine(moods MoodLookup, searcher SongSearcher, fallback *FallbackTable, cfg *config.Config) *Engine {
	return &Engine{
		moods:    moods,
		searcher: searcher,
		fallback: fallback,
		limit:    cfg.SearchLimit,
		market:   cfg.SpotifyMarket,
		cacheTTL: cfg.GenreCacheTTL,
	}
}

// Recommend resolves each emoji grapheme to a genre and fans out one
// catalog search per genre, merging the results. Blank input yields an
// empty result; any other input yields at least one genre and at least
// one song.
func (e *Engine) Recommend(ctx context.Context, emojis string) *model.RecommendationResponse {
	if strings.TrimSpace(emojis) == "" {
		return &model.RecommendationResponse{Genres: []string{}, Songs: []model.Song{}}
	}

	genres := e.resolveGenres(emojis)
	if len(genres) == 0 {
		// Unreachable given the default-genre rule; kept so a future
		// rule change cannot make the engine search with no genres.
		return &model.RecommendationResponse{Genres: []string{}, Songs: []model.Song{}}
	}

	songs := e.searchSongs(ctx, genres)
	if len(songs) == 0 {
		logger.Info("no live results for genres, using static fallback",
			logger.Strings("genres", genres))
		songs = e.fallback.SongsForGenres(genres, e.limit)
	}

	return &model.RecommendationResponse{Genres: genres, Songs: songs}
}

// resolveGenres maps the input to a deduplicated genre list in
// first-seen order. Matching is per grapheme cluster so emoji built
// from several code points (skin tones, ZWJ sequences, flags) resolve
// as the single character the user typed.
func (e *Engine) resolveGenres(emojis string) []string {
	clusters := graphemeClusters(emojis)

	var genres []string
	seen := make(map[string]struct{})
	add := func(genre string) {
		if genre == "" {
			return
		}
		if _, ok := seen[genre]; ok {
			return
		}
		seen[genre] = struct{}{}
		genres = append(genres, genre)
	}

	for _, cluster := range clusters {
		mood, err := e.moods.FindByEmoji(cluster)
		if err != nil {
			// A store failure on one character must not sink the whole
			// request; treat it as no match.
			logger.Warn("mood lookup failed", logger.String("emoji", cluster), logger.ErrorField(err))
			continue
		}
		if mood != nil {
			add(mood.GenreHint)
		}
	}

	// Special-case rules, only when the direct pass found nothing.
	if len(genres) == 0 {
		for _, cluster := range clusters {
			switch cluster {
			case "🤷‍♀️":
				add("Indie")
			case "🎉":
				add("Pop")
				add("Dance")
			}
		}
	}

	if len(genres) == 0 {
		add(defaultGenre)
	}
	return genres
}

// searchSongs fans out one search per genre and merges the results,
// deduplicated in first-seen genre order. One genre's failure never
// aborts another's; a panic anywhere in the fan-out degrades to the
// static fallback for the already-resolved genres.
func (e *Engine) searchSongs(ctx context.Context, genres []string) (songs []model.Song) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("recommendation fan-out panicked, using static fallback",
				logger.Any("panic", r))
			songs = e.fallback.SongsForGenres(genres, e.limit)
		}
	}()

	results := make([][]model.Song, len(genres))
	var wg sync.WaitGroup
	for i, genre := range genres {
		wg.Add(1)
		go func(i int, genre string) {
			defer wg.Done()
			if cached, ok := cache.GetGenreSongs(ctx, genre); ok {
				results[i] = cached
				return
			}
			found := e.searcher.Search(ctx, "genre:"+genre, "track", e.limit, e.market, genre)
			cache.SetGenreSongs(ctx, genre, found, e.cacheTTL)
			results[i] = found
		}(i, genre)
	}
	wg.Wait()

	var all []model.Song
	for _, r := range results {
		all = append(all, r...)
	}
	return model.DedupSongs(all)
}

// graphemeClusters splits s into user-perceived characters.
func graphemeClusters(s string) []string {
	var clusters []string
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		clusters = append(clusters, gr.Str())
	}
	return clusters
}
