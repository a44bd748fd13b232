// Package emotion turns free text into four weighted emotion scores and a
// risk level. The text understanding itself is delegated to an external
// five-bucket sentiment classifier; everything here is a fixed linear
// projection plus threshold comparisons.
package emotion

import (
	"context"
	"strings"

	"sosai/internal/domain"
	"sosai/internal/keyword"
)

// Classifier is the external sentiment model, label-encoded as "1 star" ..
// "5 stars" from most negative to most positive.
type Classifier interface {
	Classify(ctx context.Context, text string) ([]domain.SentimentScore, error)
}

// Per-bucket weights applied to the classifier probabilities. Bucket 5 is
// deliberately unweighted; these four rows are compatibility-frozen.
var bucketWeights = map[int]domain.EmotionScores{
	1: {Anxiety: 0.8, Depression: 0.9, Anger: 0.7, Stress: 0.8},
	2: {Anxiety: 0.6, Depression: 0.7, Anger: 0.5, Stress: 0.6},
	3: {Anxiety: 0.3, Depression: 0.3, Anger: 0.3, Stress: 0.3},
	4: {Anxiety: 0.1, Depression: 0.1, Anger: 0.1, Stress: 0.1},
}

// Risk thresholds over the peak emotion score.
const (
	highRiskThreshold = 0.6
	midRiskThreshold  = 0.4
)

// highRiskKeywords force HIGH risk regardless of emotion scores. This list
// is intentionally shorter than (and overlaps with) the scenario tables.
var highRiskKeywords = []string{
	"자살", "죽고", "죽을", "죽어", "목매달",
	"폭행", "폭력", "때려", "협박",
}

type Analyzer struct {
	classifier Classifier
}

func NewAnalyzer(classifier Classifier) *Analyzer {
	return &Analyzer{classifier: classifier}
}

// Score runs the sentiment classifier and projects its bucket probabilities
// into the four emotion dimensions. A classifier failure propagates; the API
// layer turns it into a 500.
func (a *Analyzer) Score(ctx context.Context, text string) (domain.EmotionScores, error) {
	results, err := a.classifier.Classify(ctx, text)
	if err != nil {
		return domain.EmotionScores{}, err
	}

	var scores domain.EmotionScores
	for _, r := range results {
		w, ok := bucketWeights[bucketOf(r.Label)]
		if !ok {
			continue
		}
		scores.Anxiety += r.Score * w.Anxiety
		scores.Depression += r.Score * w.Depression
		scores.Anger += r.Score * w.Anger
		scores.Stress += r.Score * w.Stress
	}
	return scores, nil
}

// bucketOf maps a classifier label like "2 stars" to its bucket index.
// Checked in ascending order, first digit hit wins; unknown labels (the
// five-star bucket included) map to 0 and contribute nothing.
func bucketOf(label string) int {
	switch {
	case strings.Contains(label, "1"):
		return 1
	case strings.Contains(label, "2"):
		return 2
	case strings.Contains(label, "3"):
		return 3
	case strings.Contains(label, "4"):
		return 4
	default:
		return 0
	}
}

// EvaluateRisk combines keyword presence in the raw text with the peak
// emotion score. Keyword hits dominate: any match yields HIGH.
func EvaluateRisk(text string, scores domain.EmotionScores) domain.RiskLevel {
	peak := scores.Peak()

	switch {
	case keyword.ContainsAny(text, highRiskKeywords) || peak > highRiskThreshold:
		return domain.RiskHigh
	case peak > midRiskThreshold:
		return domain.RiskMid
	default:
		return domain.RiskLow
	}
}
