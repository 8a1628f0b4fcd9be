package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"EmojiFM/db"
	"EmojiFM/logger"
	"EmojiFM/model"
)

// genreSongsKey builds the Redis key for a genre's cached search results.
func genreSongsKey(genre string) string {
	return fmt.Sprintf("genre_songs:%s", genre)
}

// GetGenreSongs returns the cached song list for a genre. The second
// return value is false on a miss, on any Redis error, or when Redis is
// not connected at all; callers fall through to a live search.
func GetGenreSongs(ctx context.Context, genre string) ([]model.Song, bool) {
	if db.RedisClient == nil {
		return nil, false
	}

	data, err := db.RedisClient.Get(ctx, genreSongsKey(genre)).Result()
	if err != nil {
		return nil, false
	}

	var songs []model.Song
	if err := json.Unmarshal([]byte(data), &songs); err != nil {
		logger.Warn("failed to unmarshal cached genre songs, treating as miss",
			logger.String("genre", genre),
			logger.ErrorField(err))
		return nil, false
	}
	return songs, true
}

// SetGenreSongs caches a genre's song list with the given TTL. Empty
// lists are not cached so a transient upstream failure doesn't pin
// "nothing found" for the whole TTL. A no-op when Redis is unavailable.
func SetGenreSongs(ctx context.Context, genre string, songs []model.Song, ttl time.Duration) {
	if db.RedisClient == nil || len(songs) == 0 {
		return
	}

	data, err := json.Marshal(songs)
	if err != nil {
		logger.Warn("failed to marshal genre songs for cache",
			logger.String("genre", genre),
			logger.ErrorField(err))
		return
	}

	if err := db.RedisClient.Set(ctx, genreSongsKey(genre), data, ttl).Err(); err != nil {
		logger.Warn("failed to cache genre songs",
			logger.String("genre", genre),
			logger.ErrorField(err))
	}
}
