// Package analysis runs the per-request decision pipeline: scenario
// classification and emotion scoring feed risk evaluation, which selects the
// supportive response.
package analysis

import (
	"context"
	"log/slog"

	"sosai/internal/domain"
	"sosai/internal/emotion"
	"sosai/internal/scenario"
)

type Service struct {
	scenarios *scenario.Classifier
	emotions  *emotion.Analyzer
	logger    *slog.Logger
}

func NewService(scenarios *scenario.Classifier, emotions *emotion.Analyzer, logger *slog.Logger) *Service {
	return &Service{scenarios: scenarios, emotions: emotions, logger: logger}
}

// Result carries everything the two analyze endpoint variants need.
type Result struct {
	// Categories in first-detection order; may be empty.
	Categories []string
	// Scenario is the Korean display name of the first detected category,
	// or the generic name when nothing was detected.
	Scenario string
	Scores   domain.EmotionScores
	Risk     domain.RiskLevel
	// CoarseRisk collapses Risk to "high"/"low": HIGH, or any concrete
	// (non-generic) category detected, means "high".
	CoarseRisk string
	// Response is the emotion-path supportive reply for Risk.
	Response string
}

// Analyze runs the full pipeline. Only a sentiment-classifier failure
// surfaces as an error; the scenario fallback path degrades internally.
func (s *Service) Analyze(ctx context.Context, text string) (Result, error) {
	categories := s.scenarios.Classify(ctx, text)

	scores, err := s.emotions.Score(ctx, text)
	if err != nil {
		return Result{}, err
	}

	risk := emotion.EvaluateRisk(text, scores)

	res := Result{
		Categories: categories,
		Scenario:   scenario.DisplayName(domain.CategoryOther),
		Scores:     scores,
		Risk:       risk,
		CoarseRisk: "low",
		Response:   emotion.GenerateResponse(text, risk, scores),
	}
	if len(categories) > 0 {
		res.Scenario = scenario.DisplayName(categories[0])
	}
	if risk == domain.RiskHigh || hasConcreteCategory(categories) {
		res.CoarseRisk = "high"
	}

	s.logger.Info("analysis complete",
		"risk", res.Risk,
		"coarse_risk", res.CoarseRisk,
		"categories", res.Categories,
	)
	return res, nil
}

func hasConcreteCategory(categories []string) bool {
	for _, c := range categories {
		switch c {
		case domain.CategorySchoolViolence, domain.CategoryDomesticViolence, domain.CategorySuicide:
			return true
		}
	}
	return false
}
