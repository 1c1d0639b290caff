package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/ermoli2012-glitch/Cuerpo-Fiel-Bot/pkg"
)

// SQLiteStore persists history records in a local SQLite file (pure Go
// driver).  It is the fallback backend when no DATABASE_URL is configured.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens (or creates) the database at path and applies the schema.
func NewSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL improves concurrency for small writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		log.Println("warning: could not set WAL mode:", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS historial (
        id TEXT PRIMARY KEY,
        sender_id TEXT NOT NULL,
        mensaje TEXT NOT NULL,
        respuesta TEXT NOT NULL,
        created_at TEXT NOT NULL
    );`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// SaveExchange inserts one record.  Missing ID and timestamp are filled in.
func (s *SQLiteStore) SaveExchange(ctx context.Context, rec pkg.HistoryRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO historial (id, sender_id, mensaje, respuesta, created_at)
         VALUES (?, ?, ?, ?, ?)`,
		rec.ID, rec.SenderID, rec.Mensaje, rec.Respuesta, rec.Timestamp.UTC().Format(time.RFC3339),
	)
	return err
}

func (s *SQLiteStore) Close() error { return s.db.Close() }
