package db

import (
	"database/sql"
	"fmt"
	"log"

	"EmojiFM/config"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
)

var DB *sql.DB

// ConnectDB establishes a connection to the database.
func ConnectDB(cfg *config.Config) error {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)

	var err error
	DB, err = sql.Open("mysql", dsn)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}

	if err = DB.Ping(); err != nil {
		DB.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Successfully connected to the database.")
	return nil
}

// InitDB initializes the database schema, creating tables if they don't exist.
func InitDB() error {
	if err := createEmojiMoodsTable(); err != nil {
		return err
	}
	log.Println("Database initialization completed.")
	return nil
}

func createEmojiMoodsTable() error {
	// utf8mb4 is required so multi-code-point emoji survive storage intact.
	query := `
	CREATE TABLE IF NOT EXISTS emoji_moods (
		id INT AUTO_INCREMENT PRIMARY KEY,
		emoji VARCHAR(32) NOT NULL UNIQUE,
		mood_description VARCHAR(255),
		genre_hint VARCHAR(255),
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin;
	`
	_, err := DB.Exec(query)
	if err != nil {
		return fmt.Errorf("failed to create emoji_moods table: %w", err)
	}
	log.Println("emoji_moods table initialized successfully (or already exists).")
	return nil
}
