package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Tracker records which posts were already turned into videos, and how each
// publish attempt went, so future discovery passes can filter them out.
type Tracker struct {
	db *sql.DB
}

// Open opens (and if needed creates) the tracking database at path.
func Open(path string) (*Tracker, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open dedup db: %w", err)
	}

	schema := []string{
		`CREATE TABLE IF NOT EXISTS processed_posts (
			post_id TEXT PRIMARY KEY,
			title TEXT,
			processed_date TIMESTAMP,
			video_file TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS publish_status (
			post_id TEXT,
			platform TEXT,
			success INTEGER,
			detail TEXT,
			published_date TIMESTAMP,
			PRIMARY KEY (post_id, platform)
		)`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("init dedup schema: %w", err)
		}
	}
	return &Tracker{db: db}, nil
}

// Close closes the underlying database.
func (t *Tracker) Close() error { return t.db.Close() }

// IsProcessed reports whether the post already has a finished video.
func (t *Tracker) IsProcessed(id string) (bool, error) {
	var one int
	err := t.db.QueryRow(`SELECT 1 FROM processed_posts WHERE post_id = ?`, id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// MarkProcessed records a successful composition for the post.
func (t *Tracker) MarkProcessed(id, title, videoFile string) error {
	_, err := t.db.Exec(
		`INSERT OR REPLACE INTO processed_posts (post_id, title, processed_date, video_file) VALUES (?, ?, ?, ?)`,
		id, title, time.Now().UTC(), videoFile,
	)
	return err
}

// RecordPublish stores the outcome of one platform upload for the post.
func (t *Tracker) RecordPublish(id, platform string, success bool, detail string) error {
	_, err := t.db.Exec(
		`INSERT OR REPLACE INTO publish_status (post_id, platform, success, detail, published_date) VALUES (?, ?, ?, ?, ?)`,
		id, platform, boolToInt(success), detail, time.Now().UTC(),
	)
	return err
}

// Count returns how many posts have been processed.
func (t *Tracker) Count() (int, error) {
	var n int
	err := t.db.QueryRow(`SELECT COUNT(*) FROM processed_posts`).Scan(&n)
	return n, err
}

// Recent lists the most recently processed post titles.
func (t *Tracker) Recent(limit int) ([]string, error) {
	rows, err := t.db.Query(
		`SELECT title FROM processed_posts ORDER BY processed_date DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var titles []string
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, err
		}
		titles = append(titles, title)
	}
	return titles, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
