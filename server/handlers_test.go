package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"EmojiFM/config"
	"EmojiFM/core/auth"
	"EmojiFM/core/recommend"
	"EmojiFM/model"
	"EmojiFM/repository"

	"github.com/gorilla/mux"
)

// memMoodRepo is an in-memory EmojiMoodRepository for handler tests.
type memMoodRepo struct {
	mu     sync.Mutex
	nextID int64
	moods  map[int64]model.EmojiMood
}

func newMemMoodRepo() *memMoodRepo {
	return &memMoodRepo{nextID: 1, moods: make(map[int64]model.EmojiMood)}
}

func (r *memMoodRepo) FindAll() ([]model.EmojiMood, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.EmojiMood, 0, len(r.moods))
	for _, m := range r.moods {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memMoodRepo) FindByID(id int64) (*model.EmojiMood, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.moods[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r *memMoodRepo) FindByEmoji(emoji string) (*model.EmojiMood, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.moods {
		if m.Emoji == emoji {
			m := m
			return &m, nil
		}
	}
	return nil, nil
}

func (r *memMoodRepo) Create(mood *model.EmojiMood) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.moods {
		if m.Emoji == mood.Emoji {
			return 0, repository.ErrDuplicateEmoji
		}
	}
	id := r.nextID
	r.nextID++
	stored := *mood
	stored.ID = id
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.moods[id] = stored
	return id, nil
}

func (r *memMoodRepo) Update(id int64, mood *model.EmojiMood) (*model.EmojiMood, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.moods[id]
	if !ok {
		return nil, repository.ErrMoodNotFound
	}
	for otherID, m := range r.moods {
		if otherID != id && m.Emoji == mood.Emoji {
			return nil, repository.ErrDuplicateEmoji
		}
	}
	existing.Emoji = mood.Emoji
	existing.MoodDescription = mood.MoodDescription
	existing.GenreHint = mood.GenreHint
	existing.UpdatedAt = time.Now()
	r.moods[id] = existing
	return &existing, nil
}

func (r *memMoodRepo) Delete(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.moods, id)
	return nil
}

func (r *memMoodRepo) Count() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.moods)), nil
}

func (r *memMoodRepo) CreateBatch(moods []model.EmojiMood) (int, error) {
	inserted := 0
	for i := range moods {
		if _, err := r.Create(&moods[i]); err == nil {
			inserted++
		}
	}
	return inserted, nil
}

// memUserRepo is an in-memory UserRepository for handler tests.
type memUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]model.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{nextID: 1, users: make(map[int64]model.User)}
}

func (r *memUserRepo) CreateUser(user *model.User) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return 0, repository.ErrDuplicateUser
		}
	}
	id := r.nextID
	r.nextID++
	stored := *user
	stored.ID = id
	r.users[id] = stored
	return id, nil
}

func (r *memUserRepo) GetUserByID(id int64) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *memUserRepo) GetUserByUsername(username string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) GetUserByEmail(email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) ListUsers() ([]model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memUserRepo) UpdateUser(id int64, user *model.User) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	existing.Username = user.Username
	existing.Email = user.Email
	r.users[id] = existing
	return &existing, nil
}

func (r *memUserRepo) DeleteUser(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

// searcherFunc adapts a function to the engine's searcher dependency.
type searcherFunc func(genreHint string) []model.Song

func (f searcherFunc) Search(ctx context.Context, query, itemType string, limit int, market, genreHint string) []model.Song {
	return f(genreHint)
}

type testEnv struct {
	handler  *APIHandler
	moodRepo *memMoodRepo
	userRepo *memUserRepo
	router   *mux.Router
}

// newTestEnv wires an APIHandler with in-memory repositories and mirrors
// the production routes, without auth so each handler can be tested in
// isolation. Auth behavior has its own tests.
func newTestEnv(searcher searcherFunc) *testEnv {
	auth.SetSecret("handler-test-secret")

	cfg := &config.Config{
		SearchLimit:   10,
		SpotifyMarket: "ES",
		GenreCacheTTL: time.Minute,
	}
	moodRepo := newMemMoodRepo()
	userRepo := newMemUserRepo()
	if searcher == nil {
		searcher = func(string) []model.Song { return []model.Song{} }
	}
	engine := recommend.NewEngine(moodRepo, searcher, recommend.NewFallbackTable(), cfg)
	h := NewAPIHandler(moodRepo, userRepo, engine, cfg)

	r := mux.NewRouter()
	r.HandleFunc("/api/recommendations/by-emojis", h.RecommendationsByEmojisHandler).Methods("GET")
	r.HandleFunc("/api/emojimoods", h.GetEmojiMoodsHandler).Methods("GET")
	r.HandleFunc("/api/emojimoods", h.CreateEmojiMoodHandler).Methods("POST")
	r.HandleFunc("/api/emojimoods/{id}", h.GetEmojiMoodHandler).Methods("GET")
	r.HandleFunc("/api/emojimoods/{id}", h.UpdateEmojiMoodHandler).Methods("PUT")
	r.HandleFunc("/api/emojimoods/{id}", h.DeleteEmojiMoodHandler).Methods("DELETE")
	r.HandleFunc("/api/users", h.ListUsersHandler).Methods("GET")
	r.HandleFunc("/api/users", h.CreateUserHandler).Methods("POST")
	r.HandleFunc("/api/users/{id}", h.GetUserHandler).Methods("GET")
	r.HandleFunc("/api/users/{id}", h.UpdateUserHandler).Methods("PUT")
	r.HandleFunc("/api/users/{id}", h.DeleteUserHandler).Methods("DELETE")
	r.HandleFunc("/api/auth/register", h.RegisterHandler).Methods("POST")
	r.HandleFunc("/api/auth/login", h.LoginHandler).Methods("POST")

	return &testEnv{handler: h, moodRepo: moodRepo, userRepo: userRepo, router: r}
}

func (e *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}
