// Package chat generates open-ended counseling replies through an external
// chat-completion provider. This path never surfaces provider failures to
// the user; it degrades to a fixed apology instead.
package chat

import (
	"context"
	"log/slog"

	"sosai/internal/domain"
	"sosai/internal/llm"
)

// Conversation turns sent onward per request, counted from the newest.
const historyLimit = 5

// FallbackReply is returned verbatim whenever the provider call fails.
const FallbackReply = "죄송합니다. 일시적인 오류가 발생했습니다. 잠시 후 다시 시도해 주시겠어요? 💚"

const systemPrompt = `당신은 따뜻하고 공감적인 상담 AI 챗봇입니다.
사용자의 감정에 공감하고, 적절한 위로와 지지를 제공하되 전문적인 상담사를 대체하지는 않습니다.
대화는 반말이 아닌 존댓말로 하며, 친근하고 따뜻한 어조를 유지합니다.
이모지를 적절히 사용하여 따뜻한 분위기를 만듭니다.

다음 원칙을 따릅니다:
1. 사용자의 감정을 인정하고 공감합니다
2. 판단하거나 비난하지 않습니다
3. 즉각적인 해결책을 제시하기보다 경청하고 지지합니다
4. 필요한 경우 전문가의 도움을 받도록 권장합니다
5. 항상 희망적인 메시지로 마무리합니다

응답은 다음과 같은 구조로 합니다:
1. 감정 인정과 공감
2. 지지와 이해의 표현
3. 필요한 경우 부드러운 제안이나 질문
`

type Model struct {
	provider llm.Provider
	model    string
	logger   *slog.Logger
}

func NewModel(provider llm.Provider, model string, logger *slog.Logger) *Model {
	return &Model{provider: provider, model: model, logger: logger}
}

// Reply sends the persona prompt, up to the last five history turns, and
// the current message to the provider and returns its text.
// History turns with IsUser unset are tagged "assistant";
// this mapping is part of the wire contract with existing clients and must
// not be flipped here.
func (m *Model) Reply(ctx context.Context, message string, history []domain.ChatTurn) string {
	if len(history) > historyLimit {
		history = history[len(history)-historyLimit:]
	}

	messages := make([]domain.Message, 0, len(history)+1)
	for _, turn := range history {
		role := "assistant"
		if turn.IsUser {
			role = "user"
		}
		messages = append(messages, domain.Message{Role: role, Content: turn.Text})
	}
	messages = append(messages, domain.Message{Role: "user", Content: message})

	resp, err := m.provider.Complete(ctx, domain.LLMRequest{
		Model:            m.model,
		System:           systemPrompt,
		Messages:         messages,
		Temperature:      0.7,
		MaxTokens:        300,
		TopP:             0.9,
		FrequencyPenalty: 0.5,
		PresencePenalty:  0.5,
	})
	if err != nil {
		m.logger.Error("chat completion failed", "error", err)
		return FallbackReply
	}
	return resp.Content
}
