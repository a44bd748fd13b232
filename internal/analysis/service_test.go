package analysis

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"sosai/internal/domain"
	"sosai/internal/emotion"
	"sosai/internal/scenario"
)

type fakeClassifier struct {
	scores []domain.SentimentScore
	err    error
}

func (f *fakeClassifier) Classify(_ context.Context, _ string) ([]domain.SentimentScore, error) {
	return f.scores, f.err
}

func newService(sentiment, fallback *fakeClassifier) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(
		scenario.NewClassifier(fallback, logger),
		emotion.NewAnalyzer(sentiment),
		logger,
	)
}

func TestAnalyzeSuicideText(t *testing.T) {
	svc := newService(
		&fakeClassifier{scores: []domain.SentimentScore{{Label: "1 star", Score: 0.9}}},
		&fakeClassifier{},
	)

	res, err := svc.Analyze(context.Background(), "자살하고 싶어요")
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if res.Risk != domain.RiskHigh {
		t.Fatalf("risk=%s, want HIGH", res.Risk)
	}
	if res.CoarseRisk != "high" {
		t.Fatalf("coarseRisk=%s, want high", res.CoarseRisk)
	}
	if res.Scenario != "자살위험" {
		t.Fatalf("scenario=%s, want 자살위험", res.Scenario)
	}
	if res.Response == "" {
		t.Fatalf("response should not be empty")
	}
}

func TestAnalyzeNeutralText(t *testing.T) {
	svc := newService(
		&fakeClassifier{scores: []domain.SentimentScore{{Label: "4 stars", Score: 1.0}}},
		&fakeClassifier{scores: []domain.SentimentScore{{Label: "LABEL_0", Score: 0.3}}},
	)

	res, err := svc.Analyze(context.Background(), "오늘 날씨가 좋네요")
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if res.Risk != domain.RiskLow {
		t.Fatalf("risk=%s, want LOW", res.Risk)
	}
	if res.CoarseRisk != "low" {
		t.Fatalf("coarseRisk=%s, want low", res.CoarseRisk)
	}
	if len(res.Categories) != 0 {
		t.Fatalf("categories=%v, want empty", res.Categories)
	}
	if res.Scenario != "기타" {
		t.Fatalf("scenario=%s, want 기타", res.Scenario)
	}
}

func TestAnalyzeConcreteCategoryForcesCoarseHigh(t *testing.T) {
	// Keyword "학교" detects the category; the emotion side stays calm, yet
	// category membership alone collapses to "high".
	svc := newService(
		&fakeClassifier{scores: []domain.SentimentScore{{Label: "4 stars", Score: 1.0}}},
		&fakeClassifier{},
	)

	res, err := svc.Analyze(context.Background(), "학교에서 있었던 일이에요")
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if res.Risk != domain.RiskLow {
		t.Fatalf("risk=%s, want LOW", res.Risk)
	}
	if res.CoarseRisk != "high" {
		t.Fatalf("coarseRisk=%s, want high for detected school_violence", res.CoarseRisk)
	}
}

func TestAnalyzePropagatesSentimentError(t *testing.T) {
	svc := newService(
		&fakeClassifier{err: context.DeadlineExceeded},
		&fakeClassifier{scores: []domain.SentimentScore{{Label: "LABEL_0", Score: 0.3}}},
	)

	if _, err := svc.Analyze(context.Background(), "오늘 하루 이야기"); err == nil {
		t.Fatalf("expected sentiment error to propagate")
	}
}
