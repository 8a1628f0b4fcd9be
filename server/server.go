package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"EmojiFM/config"
	"EmojiFM/core/auth"
	"EmojiFM/core/recommend"
	"EmojiFM/core/spotify"
	"EmojiFM/db"
	"EmojiFM/logger"
	"EmojiFM/model"
	"EmojiFM/repository"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// Start initializes and starts the HTTP server.
func Start() {
	cfg := config.Load()

	logger.InitLogger(logger.Config{
		Level:      logger.LogLevel(cfg.LogLevel),
		OutputPath: cfg.LogPath,
		MaxSize:    100,
		MaxBackups: 5,
		MaxAge:     30,
		Compress:   true,
	})

	auth.SetSecret(cfg.JWTSecret)

	// Connect to the database (raw SQL side: mood store).
	if err := db.ConnectDB(cfg); err != nil {
		logger.Fatal("failed to connect to database", logger.ErrorField(err))
	}
	defer db.DB.Close()

	// GORM side: user store.
	if err := db.ConnectGormDB(cfg); err != nil {
		logger.Fatal("failed to connect to database with GORM", logger.ErrorField(err))
	}
	defer db.CloseGormDB()

	// Redis caches per-genre search results. An outage only costs
	// latency, so a failed connect is a warning, not a fatal.
	if err := db.ConnectRedis(cfg); err != nil {
		logger.Warn("Redis unavailable, genre search cache disabled", logger.ErrorField(err))
	} else {
		defer db.CloseRedis()
		logger.Info("connected to Redis")
	}

	// Schema + seed data.
	if err := db.InitDB(); err != nil {
		logger.Fatal("failed to initialize database", logger.ErrorField(err))
	}
	if err := db.AutoMigrateModels(&model.User{}); err != nil {
		logger.Fatal("failed to migrate user model", logger.ErrorField(err))
	}

	moodRepo := repository.NewMySQLEmojiMoodRepository(db.DB)
	userRepo := repository.NewGormUserRepository(db.GormDB)

	if err := repository.SeedEmojiMoods(moodRepo); err != nil {
		logger.Fatal("failed to seed emoji moods", logger.ErrorField(err))
	}

	// Recommendation pipeline: mood store + catalog client + fallback table.
	fallback := recommend.NewFallbackTable()
	serverCtx, cancelServerCtx := context.WithCancel(context.Background())
	defer cancelServerCtx()
	if cfg.FallbackSongs != "" {
		if err := fallback.LoadFile(cfg.FallbackSongs); err != nil {
			logger.Warn("failed to load fallback song override, using embedded table",
				logger.String("path", cfg.FallbackSongs), logger.ErrorField(err))
		} else if err := fallback.Watch(serverCtx, cfg.FallbackSongs); err != nil {
			logger.Warn("failed to watch fallback song file", logger.ErrorField(err))
		}
	}

	spotifyClient := spotify.NewClient(cfg)
	engine := recommend.NewEngine(moodRepo, spotifyClient, fallback, cfg)

	apiHandler := NewAPIHandler(moodRepo, userRepo, engine, cfg)

	router := mux.NewRouter()
	router.Use(corsMiddleware(cfg.AllowedOrigins))
	router.Use(requestIDMiddleware)

	// Recommendations
	router.HandleFunc("/api/recommendations/by-emojis", apiHandler.RecommendationsByEmojisHandler).Methods(http.MethodGet)

	// Emoji mood CRUD. Mutations require a login; reads are open.
	router.HandleFunc("/api/emojimoods", apiHandler.GetEmojiMoodsHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/emojimoods", apiHandler.AuthMiddleware(apiHandler.CreateEmojiMoodHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/emojimoods/{id}", apiHandler.GetEmojiMoodHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/emojimoods/{id}", apiHandler.AuthMiddleware(apiHandler.UpdateEmojiMoodHandler)).Methods(http.MethodPut)
	router.HandleFunc("/api/emojimoods/{id}", apiHandler.AuthMiddleware(apiHandler.DeleteEmojiMoodHandler)).Methods(http.MethodDelete)

	// User CRUD
	router.HandleFunc("/api/users", apiHandler.ListUsersHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/users", apiHandler.CreateUserHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/users/{id}", apiHandler.GetUserHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/users/{id}", apiHandler.UpdateUserHandler).Methods(http.MethodPut)
	router.HandleFunc("/api/users/{id}", apiHandler.DeleteUserHandler).Methods(http.MethodDelete)

	// Authentication
	router.HandleFunc("/api/auth/register", apiHandler.RegisterHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/login", apiHandler.LoginHandler).Methods(http.MethodPost)

	// Health
	router.HandleFunc("/api/health", healthHandler).Methods(http.MethodGet)

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("server starting", logger.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", logger.ErrorField(err))
		}
	}()

	<-stop
	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", logger.ErrorField(err))
	}

	logger.Info("server stopped")
}

// corsMiddleware applies the configured allowed origins.
func corsMiddleware(origins []string) mux.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(origins))
	allowAll := false
	for _, o := range origins {
		if o == "*" {
			allowAll = true
		}
		allowed[o] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if allowAll {
				w.Header().Set("Access-Control-Allow-Origin", "*")
			} else if _, ok := allowed[origin]; ok {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Vary", "Origin")
			}
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Max-Age", "86400")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// requestIDMiddleware tags each request with an id for log correlation.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)

		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Debug("request handled",
			logger.String("requestId", requestID),
			logger.String("method", r.Method),
			logger.String("path", r.URL.Path),
			logger.Duration("elapsed", time.Since(start)))
	})
}

// healthHandler reports liveness plus database and cache reachability.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok", "database": "ok", "redis": "disabled"}
	code := http.StatusOK

	if db.DB == nil || db.DB.Ping() != nil {
		status["database"] = "down"
		status["status"] = "degraded"
		code = http.StatusServiceUnavailable
	}
	if db.RedisClient != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := db.RedisClient.Ping(ctx).Err(); err != nil {
			status["redis"] = "down"
		} else {
			status["redis"] = "ok"
		}
	}

	respondJSON(w, code, status)
}
