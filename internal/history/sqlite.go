package history

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	_ "github.com/mattn/go-sqlite3"

	"sanachat/internal/models"
)

// SQLiteStore keeps the transcript in an embedded database. Unlike the
// file backend, a save is a single transaction, so a crash mid-write
// cannot leave a half-written transcript behind.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite connects to the database at the provided path and ensures
// the transcript table exists.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite history path must be provided")
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}
	const schema = `CREATE TABLE IF NOT EXISTS transcript (
		position INTEGER PRIMARY KEY,
		role TEXT NOT NULL,
		content TEXT NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate transcript table: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Load(ctx context.Context) []models.Message {
	rows, err := s.db.QueryContext(ctx, `SELECT role, content FROM transcript ORDER BY position`)
	if err != nil {
		log.Printf("history: sqlite load failed: %v", err)
		return nil
	}
	defer rows.Close()

	var transcript []models.Message
	for rows.Next() {
		var msg models.Message
		if err := rows.Scan(&msg.Role, &msg.Content); err != nil {
			log.Printf("history: sqlite scan failed: %v", err)
			return nil
		}
		transcript = append(transcript, msg)
	}
	if err := rows.Err(); err != nil {
		log.Printf("history: sqlite iteration failed: %v", err)
		return nil
	}
	return transcript
}

func (s *SQLiteStore) Save(ctx context.Context, transcript []models.Message) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Printf("history: sqlite begin failed: %v", err)
		return
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM transcript`); err != nil {
		tx.Rollback()
		log.Printf("history: sqlite clear failed: %v", err)
		return
	}
	for i, msg := range transcript {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO transcript (position, role, content) VALUES (?, ?, ?)`,
			i, msg.Role, msg.Content); err != nil {
			tx.Rollback()
			log.Printf("history: sqlite insert failed: %v", err)
			return
		}
	}
	if err := tx.Commit(); err != nil {
		log.Printf("history: sqlite commit failed: %v", err)
	}
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
