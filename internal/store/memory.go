package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type MemoryStore struct {
	mu    sync.RWMutex
	chats map[string][]Message
}

func NewMemory() *MemoryStore {
	return &MemoryStore{chats: make(map[string][]Message)}
}

func (s *MemoryStore) Close() {}

func (s *MemoryStore) StartChat(_ context.Context) (Session, error) {
	session := Session{
		ChatID:       uuid.NewString(),
		AnonymousID:  uuid.NewString(),
		SessionToken: uuid.NewString(),
		CreatedAt:    time.Now(),
	}

	s.mu.Lock()
	s.chats[session.ChatID] = nil
	s.mu.Unlock()

	return session, nil
}

func (s *MemoryStore) AppendMessage(_ context.Context, chatID string, msg Message) error {
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.chats[chatID]; !ok {
		return ErrChatNotFound
	}
	s.chats[chatID] = append(s.chats[chatID], msg)
	return nil
}

func (s *MemoryStore) History(_ context.Context, chatID string) ([]Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msgs, ok := s.chats[chatID]
	if !ok {
		return nil, ErrChatNotFound
	}
	out := make([]Message, len(msgs))
	copy(out, msgs)
	return out, nil
}
