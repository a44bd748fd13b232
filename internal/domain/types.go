package domain

import "time"

// RiskLevel is the coarse severity label driving which crisis-response
// template and hotline is surfaced. Severity order: LOW < MID < HIGH.
type RiskLevel string

const (
	RiskLow  RiskLevel = "LOW"
	RiskMid  RiskLevel = "MID"
	RiskHigh RiskLevel = "HIGH"
)

// Scenario categories. Internal names only; the API boundary maps them to
// Korean display names.
const (
	CategorySchoolViolence   = "school_violence"
	CategoryDomesticViolence = "domestic_violence"
	CategorySuicide          = "suicide"
	CategoryOther            = "other"
)

// EmotionScores holds the four weighted emotion dimensions derived from the
// sentiment model's five-bucket output. Non-negative, no upper bound.
type EmotionScores struct {
	Anxiety    float64 `json:"anxiety"`
	Depression float64 `json:"depression"`
	Anger      float64 `json:"anger"`
	Stress     float64 `json:"stress"`
}

// Peak returns the maximum of the four dimensions.
func (e EmotionScores) Peak() float64 {
	peak := e.Anxiety
	for _, v := range []float64{e.Depression, e.Anger, e.Stress} {
		if v > peak {
			peak = v
		}
	}
	return peak
}

// SentimentScore is one (label, probability) entry from an external text
// classifier.
type SentimentScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// CrisisContact is a static hotline record shown to at-risk users.
type CrisisContact struct {
	Organization string `json:"organization"`
	Phone        string `json:"phone"`
	URL          string `json:"url"`
}

// ChatTurn is one prior turn of a conversation, supplied wholesale by the
// client per request. IsUser marks messages authored by the user.
type ChatTurn struct {
	Text   string `json:"text"`
	IsUser bool   `json:"isUser"`
}

// Message is one entry of a chat-completion request.
type Message struct {
	Role    string
	Content string
}

// LLMRequest is a provider-neutral chat-completion request.
type LLMRequest struct {
	Model            string
	System           string
	Messages         []Message
	Temperature      float64
	MaxTokens        int
	TopP             float64
	FrequencyPenalty float64
	PresencePenalty  float64
}

type LLMResponse struct {
	Content string
}

// ExpertAlert is broadcast to connected counselor dashboards whenever an
// analysis yields HIGH risk.
type ExpertAlert struct {
	ChatID       string         `json:"chatId,omitempty"`
	AnonymousID  string         `json:"anonymousId,omitempty"`
	Message      string         `json:"message"`
	EmotionScore *EmotionScores `json:"emotionScore,omitempty"`
	RiskLevel    RiskLevel      `json:"riskLevel"`
	At           time.Time      `json:"at"`
}
