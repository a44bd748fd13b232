// Package store persists anonymous chat sessions and their turns. The
// service runs fine without a database; the in-memory implementation backs
// it then, and tests always.
package store

import (
	"context"
	"errors"
	"time"

	"sosai/internal/domain"
)

var ErrChatNotFound = errors.New("chat not found")

// Session identifies one anonymous conversation. The session token is an
// opaque bearer credential handed to the client at start; no account exists
// behind it.
type Session struct {
	ChatID       string    `json:"chatId"`
	AnonymousID  string    `json:"anonymousId"`
	SessionToken string    `json:"sessionToken"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Message is one stored turn. Emotion scores and risk level are only
// recorded for turns that went through the analysis pipeline.
type Message struct {
	Role         string                `json:"role"`
	Content      string                `json:"content"`
	Timestamp    time.Time             `json:"timestamp"`
	EmotionScore *domain.EmotionScores `json:"emotionScore,omitempty"`
	RiskLevel    domain.RiskLevel      `json:"riskLevel,omitempty"`
}

type ChatLog interface {
	StartChat(ctx context.Context) (Session, error)
	AppendMessage(ctx context.Context, chatID string, msg Message) error
	History(ctx context.Context, chatID string) ([]Message, error)
	Close()
}
