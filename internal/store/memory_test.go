package store

import (
	"context"
	"errors"
	"testing"

	"sosai/internal/domain"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	session, err := s.StartChat(ctx)
	if err != nil {
		t.Fatalf("start chat failed: %v", err)
	}
	if session.ChatID == "" || session.AnonymousID == "" || session.SessionToken == "" {
		t.Fatalf("session has empty identifiers: %+v", session)
	}

	err = s.AppendMessage(ctx, session.ChatID, Message{Role: "user", Content: "요즘 힘들어요"})
	if err != nil {
		t.Fatalf("append user message failed: %v", err)
	}
	err = s.AppendMessage(ctx, session.ChatID, Message{
		Role:         "assistant",
		Content:      "많이 힘드셨겠어요.",
		EmotionScore: &domain.EmotionScores{Anxiety: 0.5, Depression: 0.6, Anger: 0.3, Stress: 0.5},
		RiskLevel:    domain.RiskMid,
	})
	if err != nil {
		t.Fatalf("append assistant message failed: %v", err)
	}

	msgs, err := s.History(ctx, session.ChatID)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("history has %d messages, want 2", len(msgs))
	}
	if msgs[0].Role != "user" || msgs[1].Role != "assistant" {
		t.Fatalf("history order wrong: %+v", msgs)
	}
	if msgs[1].EmotionScore == nil || msgs[1].EmotionScore.Depression != 0.6 {
		t.Fatalf("assistant emotion score not kept: %+v", msgs[1])
	}
	if msgs[0].Timestamp.IsZero() {
		t.Fatalf("timestamp not defaulted")
	}
}

func TestMemoryStoreUnknownChat(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	if err := s.AppendMessage(ctx, "missing", Message{Role: "user", Content: "x"}); !errors.Is(err, ErrChatNotFound) {
		t.Fatalf("append error=%v, want ErrChatNotFound", err)
	}
	if _, err := s.History(ctx, "missing"); !errors.Is(err, ErrChatNotFound) {
		t.Fatalf("history error=%v, want ErrChatNotFound", err)
	}
}
