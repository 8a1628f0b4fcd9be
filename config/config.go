package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config stores the application configuration.
// Values come from the environment (optionally via a .env file) with
// simple defaults for local development.
type Config struct {
	ServerPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// Spotify Web API credentials and endpoints. The endpoints are
	// configurable so tests can point the client at a local server.
	SpotifyClientID     string
	SpotifyClientSecret string
	SpotifyAuthURL      string
	SpotifyAPIURL       string
	SpotifyMarket       string // default market for searches, e.g. "ES"
	SpotifyTimeout      time.Duration

	SearchLimit    int           // per-genre track limit for recommendations
	GenreCacheTTL  time.Duration // Redis TTL for cached per-genre results
	FallbackSongs  string        // optional path overriding the embedded fallback table
	AllowedOrigins []string      // CORS origins for the frontend

	JWTSecret string

	LogLevel string
	LogPath  string
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt gets an environment variable as int or returns a default value.
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvDuration gets an environment variable as a duration or returns a default value.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

// Load loads configuration from environment variables (via .env file) or defaults.
func Load() *Config {
	// godotenv.Load() will not override existing env vars.
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found or error loading .env, relying on existing environment variables and defaults.")
	}

	origins := strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),

		DBHost:     getEnv("DB_HOST", "127.0.0.1"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBUser:     getEnv("DB_USER", "root"),
		DBPassword: os.Getenv("DB_PASSWORD"), // no hardcoded default for the password
		DBName:     getEnv("DB_NAME", "emojifm"),

		RedisHost:     getEnv("REDIS_HOST", "127.0.0.1"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		SpotifyClientID:     os.Getenv("SPOTIFY_CLIENT_ID"),
		SpotifyClientSecret: os.Getenv("SPOTIFY_CLIENT_SECRET"),
		SpotifyAuthURL:      getEnv("SPOTIFY_AUTH_URL", "https://accounts.spotify.com/api/token"),
		SpotifyAPIURL:       getEnv("SPOTIFY_API_URL", "https://api.spotify.com/v1"),
		SpotifyMarket:       getEnv("SPOTIFY_MARKET", "ES"),
		SpotifyTimeout:      getEnvDuration("SPOTIFY_TIMEOUT", 10*time.Second),

		SearchLimit:    getEnvInt("SEARCH_LIMIT", 10),
		GenreCacheTTL:  getEnvDuration("GENRE_CACHE_TTL", 10*time.Minute),
		FallbackSongs:  getEnv("FALLBACK_SONGS_PATH", ""),
		AllowedOrigins: origins,

		JWTSecret: getEnv("JWT_SECRET", "emojifm-dev-secret"),

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogPath:  getEnv("LOG_PATH", ""),
	}
}
