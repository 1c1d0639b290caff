package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "embed"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/ermoli2012-glitch/Cuerpo-Fiel-Bot/pkg"
)

//go:embed schema.sql
var schemaSQL string

// PostgresStore persists history records in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres opens the database, verifies the connection and applies the
// embedded schema.
func NewPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

// SaveExchange inserts one record.  Missing ID and timestamp are filled in.
func (s *PostgresStore) SaveExchange(ctx context.Context, rec pkg.HistoryRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO historial (id, sender_id, mensaje, respuesta, created_at)
         VALUES ($1, $2, $3, $4, $5)`,
		rec.ID, rec.SenderID, rec.Mensaje, rec.Respuesta, rec.Timestamp,
	)
	return err
}

func (s *PostgresStore) Close() error { return s.db.Close() }
