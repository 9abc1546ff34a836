package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"faq-agent/web/types"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// PostgresStore persists conversation transcripts. It is optional: the
// bot runs without persistence when no DSN is configured.
type PostgresStore struct {
	DB *sql.DB
}

func NewPostgresStore(connStr string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	return &PostgresStore{DB: db}, nil
}

// EnsureSchema creates the required tables if they do not already exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
            id UUID PRIMARY KEY,
            created_at TIMESTAMPTZ DEFAULT NOW(),
            last_active TIMESTAMPTZ DEFAULT NOW(),
            is_active BOOLEAN DEFAULT TRUE
        )`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_last_active ON sessions(last_active DESC)`,
		`CREATE TABLE IF NOT EXISTS messages (
            id UUID PRIMARY KEY,
            session_id UUID REFERENCES sessions(id) ON DELETE CASCADE,
            role TEXT NOT NULL,
            content TEXT NOT NULL,
            matched_index INT,
            created_at TIMESTAMPTZ DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_messages_session_created_at ON messages(session_id, created_at)`,
	}

	for _, stmt := range stmts {
		if _, err := s.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute schema statement: %w", err)
		}
	}
	return nil
}

func (s *PostgresStore) CreateSession(ctx context.Context) (uuid.UUID, error) {
	sessionID := uuid.New()
	now := time.Now()

	query := `
        INSERT INTO sessions (id, created_at, last_active, is_active)
        VALUES ($1, $2, $3, $4)
    `
	_, err := s.DB.ExecContext(ctx, query, sessionID, now, now, true)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create session: %w", err)
	}
	return sessionID, nil
}

// RecordTurn stores a user utterance and the bot reply in one
// transaction and bumps the session's last_active timestamp.
// matchedIndex is the knowledge base index the reply came from, or -1
// for fallback and keyword replies.
func (s *PostgresStore) RecordTurn(ctx context.Context, sessionID uuid.UUID, utterance, reply string, matchedIndex int) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO messages (id, session_id, role, content, matched_index, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	var matched sql.NullInt32
	if matchedIndex >= 0 {
		matched = sql.NullInt32{Int32: int32(matchedIndex), Valid: true}
	}

	now := time.Now()
	if _, err := tx.ExecContext(ctx, query, uuid.New(), sessionID, "user", utterance, sql.NullInt32{}, now); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, query, uuid.New(), sessionID, "bot", reply, matched, now); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `UPDATE sessions SET last_active = $1 WHERE id = $2`, now, sessionID); err != nil {
		return err
	}

	return tx.Commit()
}

// DeactivateSession marks a session inactive after a farewell.
func (s *PostgresStore) DeactivateSession(ctx context.Context, sessionID uuid.UUID) error {
	_, err := s.DB.ExecContext(ctx, `UPDATE sessions SET is_active = false WHERE id = $1`, sessionID)
	return err
}

func (s *PostgresStore) GetMessagesBySession(ctx context.Context, sessionID uuid.UUID) ([]types.ChatMessage, error) {
	query := `
		SELECT id, session_id, role, content FROM messages
		WHERE session_id = $1 ORDER BY created_at ASC
	`
	rows, err := s.DB.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []types.ChatMessage
	for rows.Next() {
		var msg types.ChatMessage
		var sessionUUID uuid.UUID
		if err := rows.Scan(&msg.ID, &sessionUUID, &msg.Role, &msg.Content); err != nil {
			return nil, err
		}
		msg.SessionID = sessionUUID.String()
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

// SessionExists reports whether the session is known and still active.
func (s *PostgresStore) SessionExists(ctx context.Context, sessionID uuid.UUID) (bool, error) {
	var active bool
	err := s.DB.QueryRowContext(ctx, `SELECT is_active FROM sessions WHERE id = $1`, sessionID).Scan(&active)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return active, nil
}
