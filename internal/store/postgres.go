package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"sosai/internal/domain"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS chats (
			chat_id TEXT PRIMARY KEY,
			anonymous_id TEXT NOT NULL,
			session_token TEXT NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS chat_messages (
			id BIGSERIAL PRIMARY KEY,
			chat_id TEXT NOT NULL REFERENCES chats(chat_id) ON DELETE CASCADE,
			role TEXT NOT NULL,
			content TEXT NOT NULL,
			anxiety DOUBLE PRECISION,
			depression DOUBLE PRECISION,
			anger DOUBLE PRECISION,
			stress DOUBLE PRECISION,
			risk_level TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE INDEX IF NOT EXISTS idx_chat_messages_chat_created ON chat_messages(chat_id, created_at);`,
	}
	for _, q := range queries {
		if _, err := s.pool.Exec(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

func (s *PostgresStore) StartChat(ctx context.Context) (Session, error) {
	session := Session{
		ChatID:       uuid.NewString(),
		AnonymousID:  uuid.NewString(),
		SessionToken: uuid.NewString(),
		CreatedAt:    time.Now(),
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO chats(chat_id, anonymous_id, session_token, created_at)
		VALUES ($1, $2, $3, $4)
	`, session.ChatID, session.AnonymousID, session.SessionToken, session.CreatedAt)
	if err != nil {
		return Session{}, err
	}
	return session, nil
}

func (s *PostgresStore) AppendMessage(ctx context.Context, chatID string, msg Message) error {
	var exists bool
	if err := s.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM chats WHERE chat_id=$1)`, chatID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrChatNotFound
	}

	ts := msg.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	var anxiety, depression, anger, stress *float64
	if msg.EmotionScore != nil {
		anxiety = &msg.EmotionScore.Anxiety
		depression = &msg.EmotionScore.Depression
		anger = &msg.EmotionScore.Anger
		stress = &msg.EmotionScore.Stress
	}
	var riskLevel *string
	if msg.RiskLevel != "" {
		level := string(msg.RiskLevel)
		riskLevel = &level
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO chat_messages(chat_id, role, content, anxiety, depression, anger, stress, risk_level, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, chatID, msg.Role, msg.Content, anxiety, depression, anger, stress, riskLevel, ts)
	return err
}

func (s *PostgresStore) History(ctx context.Context, chatID string) ([]Message, error) {
	var exists bool
	if err := s.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM chats WHERE chat_id=$1)`, chatID).Scan(&exists); err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrChatNotFound
	}

	rows, err := s.pool.Query(ctx, `
		SELECT role, content, anxiety, depression, anger, stress, COALESCE(risk_level, ''), created_at
		FROM chat_messages
		WHERE chat_id=$1
		ORDER BY created_at ASC, id ASC
	`, chatID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMessages(rows)
}

func scanMessages(rows pgx.Rows) ([]Message, error) {
	var msgs []Message
	for rows.Next() {
		var m Message
		var anxiety, depression, anger, stress *float64
		var riskLevel string
		if err := rows.Scan(&m.Role, &m.Content, &anxiety, &depression, &anger, &stress, &riskLevel, &m.Timestamp); err != nil {
			return nil, err
		}
		if anxiety != nil {
			m.EmotionScore = &domain.EmotionScores{
				Anxiety:    *anxiety,
				Depression: *depression,
				Anger:      *anger,
				Stress:     *stress,
			}
		}
		m.RiskLevel = domain.RiskLevel(riskLevel)
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return msgs, nil
}
