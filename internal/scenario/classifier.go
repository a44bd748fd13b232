// Package scenario classifies a message into crisis categories and builds
// the category-specific guidance blocks. Keyword matching decides first; an
// external generic classifier only backs it up when no keyword hits.
package scenario

import (
	"context"
	"log/slog"

	"sosai/internal/domain"
	"sosai/internal/keyword"
)

// FallbackClassifier is the generic text-classification model consulted
// only when no keyword matches. Only its top confidence is used.
type FallbackClassifier interface {
	Classify(ctx context.Context, text string) ([]domain.SentimentScore, error)
}

// Minimum top confidence for the fallback model to emit the generic
// category.
const fallbackConfidenceThreshold = 0.6

// Per-category keyword tables. Table order is the detection order surfaced
// to callers, so multi-match responses are reproducible.
var scenarioKeywords = keyword.Table{
	{
		Name: domain.CategorySchoolViolence,
		Keywords: []string{
			"학교", "선배", "괴롭힘", "학교폭력", "왕따",
			"집단따돌림", "학교폭행", "폭력", "때려",
			"괴롭혀", "협박", "아이들이", "친구들이",
			"학생", "반에서", "교실", "학교에서",
			"따돌림", "무시", "놀림", "욕", "협박",
			"때리", "맞", "폭행", "괴롭",
		},
	},
	{
		Name: domain.CategoryDomesticViolence,
		Keywords: []string{
			"아빠가 때려", "엄마가 때려", "부모가 때려",
			"가정폭력", "가정폭행", "가정학대",
			"집에서 폭력", "집에서 때려", "집에서 학대",
			"아빠가 술", "엄마가 술", "부모가 술",
			"아빠가 폭력", "엄마가 폭력", "부모가 폭력",
			"가정에서 폭력", "가정에서 때려", "가정에서 학대",
		},
	},
	{
		Name: domain.CategorySuicide,
		Keywords: []string{
			"자살", "죽고 싶다", "끝내고 싶다",
			"죽을래", "죽어버리고 싶다", "죽어야겠다",
			"목매달", "목매", "목매달아", "죽고",
			"살기 싫어", "살고 싶지 않아", "다 끝내고",
			"사라지고", "없어지고", "죽음",
		},
	},
}

var displayNames = map[string]string{
	domain.CategorySchoolViolence:   "학교폭력",
	domain.CategoryDomesticViolence: "가정폭력",
	domain.CategorySuicide:          "자살위험",
	domain.CategoryOther:            "기타",
}

type Classifier struct {
	fallback FallbackClassifier
	logger   *slog.Logger
}

func NewClassifier(fallback FallbackClassifier, logger *slog.Logger) *Classifier {
	return &Classifier{fallback: fallback, logger: logger}
}

// Classify returns the detected categories in first-detection order. With no
// keyword hit the fallback model decides between the generic category and
// nothing; a fallback failure is logged and degrades to the generic
// category, never an error.
func (c *Classifier) Classify(ctx context.Context, text string) []string {
	detected := keyword.Match(text, scenarioKeywords)
	if len(detected) > 0 {
		return detected
	}

	results, err := c.fallback.Classify(ctx, text)
	if err != nil {
		c.logger.Warn("fallback classification failed", "error", err)
		return []string{domain.CategoryOther}
	}
	if topConfidence(results) > fallbackConfidenceThreshold {
		return []string{domain.CategoryOther}
	}
	return nil
}

func topConfidence(results []domain.SentimentScore) float64 {
	top := 0.0
	for _, r := range results {
		if r.Score > top {
			top = r.Score
		}
	}
	return top
}

// DisplayName maps an internal category to its Korean display name; unknown
// categories map to the generic name.
func DisplayName(category string) string {
	if name, ok := displayNames[category]; ok {
		return name
	}
	return displayNames[domain.CategoryOther]
}
