package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"EmojiFM/model"

	"github.com/go-sql-driver/mysql"
)

// ErrMoodNotFound is returned when no mood entry exists for the given id.
var ErrMoodNotFound = errors.New("emoji mood not found")

// ErrDuplicateEmoji is returned when creating or updating a mood would
// duplicate an emoji that is already mapped.
var ErrDuplicateEmoji = errors.New("emoji already mapped")

// EmojiMoodRepository defines the interface for emoji mood data operations.
type EmojiMoodRepository interface {
	FindAll() ([]model.EmojiMood, error)
	FindByID(id int64) (*model.EmojiMood, error)
	FindByEmoji(emoji string) (*model.EmojiMood, error)
	Create(mood *model.EmojiMood) (int64, error)
	Update(id int64, mood *model.EmojiMood) (*model.EmojiMood, error)
	Delete(id int64) error
	Count() (int64, error)
	CreateBatch(moods []model.EmojiMood) (int, error)
}

// mysqlEmojiMoodRepository implements EmojiMoodRepository for MySQL.
type mysqlEmojiMoodRepository struct {
	db *sql.DB
}

// NewMySQLEmojiMoodRepository creates a new mysqlEmojiMoodRepository.
func NewMySQLEmojiMoodRepository(db *sql.DB) EmojiMoodRepository {
	return &mysqlEmojiMoodRepository{db: db}
}

const moodColumns = "id, emoji, mood_description, genre_hint, created_at, updated_at"

func scanMood(row interface{ Scan(...interface{}) error }) (*model.EmojiMood, error) {
	mood := &model.EmojiMood{}
	err := row.Scan(&mood.ID, &mood.Emoji, &mood.MoodDescription, &mood.GenreHint, &mood.CreatedAt, &mood.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return mood, nil
}

// FindAll returns every mood entry in insertion order.
func (r *mysqlEmojiMoodRepository) FindAll() ([]model.EmojiMood, error) {
	rows, err := r.db.Query("SELECT " + moodColumns + " FROM emoji_moods ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query emoji moods: %w", err)
	}
	defer rows.Close()

	var moods []model.EmojiMood
	for rows.Next() {
		mood, err := scanMood(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan emoji mood row: %w", err)
		}
		moods = append(moods, *mood)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate emoji mood rows: %w", err)
	}
	return moods, nil
}

// FindByID retrieves a mood entry by its ID. Returns (nil, nil) when absent.
func (r *mysqlEmojiMoodRepository) FindByID(id int64) (*model.EmojiMood, error) {
	row := r.db.QueryRow("SELECT "+moodColumns+" FROM emoji_moods WHERE id = ?", id)
	mood, err := scanMood(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan emoji mood row for ID %d: %w", id, err)
	}
	return mood, nil
}

// FindByEmoji retrieves a mood entry by exact emoji match. The emoji
// column is utf8mb4_bin so the comparison is over the full scalar
// sequence, not a single UTF-16 code unit. Returns (nil, nil) when absent.
func (r *mysqlEmojiMoodRepository) FindByEmoji(emoji string) (*model.EmojiMood, error) {
	row := r.db.QueryRow("SELECT "+moodColumns+" FROM emoji_moods WHERE emoji = ?", emoji)
	mood, err := scanMood(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan emoji mood row for emoji %q: %w", emoji, err)
	}
	return mood, nil
}

// Create adds a new mood entry and returns its assigned ID.
func (r *mysqlEmojiMoodRepository) Create(mood *model.EmojiMood) (int64, error) {
	res, err := r.db.Exec(
		"INSERT INTO emoji_moods (emoji, mood_description, genre_hint) VALUES (?, ?, ?)",
		mood.Emoji, mood.MoodDescription, mood.GenreHint,
	)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, ErrDuplicateEmoji
		}
		return 0, fmt.Errorf("failed to insert emoji mood: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for emoji mood: %w", err)
	}
	return id, nil
}

// Update replaces the emoji, mood description and genre hint of an
// existing entry. Returns ErrMoodNotFound when the id has no record.
func (r *mysqlEmojiMoodRepository) Update(id int64, mood *model.EmojiMood) (*model.EmojiMood, error) {
	res, err := r.db.Exec(
		"UPDATE emoji_moods SET emoji = ?, mood_description = ?, genre_hint = ? WHERE id = ?",
		mood.Emoji, mood.MoodDescription, mood.GenreHint, id,
	)
	if err != nil {
		if isDuplicateKey(err) {
			return nil, ErrDuplicateEmoji
		}
		return nil, fmt.Errorf("failed to update emoji mood %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read rows affected for emoji mood %d: %w", id, err)
	}
	if affected == 0 {
		// MySQL also reports 0 when the row exists but nothing changed,
		// so double-check existence before declaring not found.
		existing, findErr := r.FindByID(id)
		if findErr != nil {
			return nil, findErr
		}
		if existing == nil {
			return nil, ErrMoodNotFound
		}
		return existing, nil
	}
	return r.FindByID(id)
}

// Delete removes a mood entry. Deleting an absent id is not an error.
func (r *mysqlEmojiMoodRepository) Delete(id int64) error {
	_, err := r.db.Exec("DELETE FROM emoji_moods WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete emoji mood %d: %w", id, err)
	}
	return nil
}

// Count returns the number of mood entries.
func (r *mysqlEmojiMoodRepository) Count() (int64, error) {
	var count int64
	if err := r.db.QueryRow("SELECT COUNT(*) FROM emoji_moods").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count emoji moods: %w", err)
	}
	return count, nil
}

// CreateBatch inserts the given moods, skipping any whose emoji is
// already mapped. Returns the number of rows actually inserted.
func (r *mysqlEmojiMoodRepository) CreateBatch(moods []model.EmojiMood) (int, error) {
	stmt, err := r.db.Prepare("INSERT IGNORE INTO emoji_moods (emoji, mood_description, genre_hint) VALUES (?, ?, ?)")
	if err != nil {
		return 0, fmt.Errorf("failed to prepare batch insert statement: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, mood := range moods {
		res, err := stmt.Exec(mood.Emoji, mood.MoodDescription, mood.GenreHint)
		if err != nil {
			return inserted, fmt.Errorf("failed to insert emoji mood %q: %w", mood.Emoji, err)
		}
		if n, err := res.RowsAffected(); err == nil && n > 0 {
			inserted++
		}
	}
	return inserted, nil
}

// isDuplicateKey reports whether err is a MySQL unique constraint violation.
func isDuplicateKey(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}
