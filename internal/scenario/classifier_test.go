package scenario

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"sosai/internal/domain"
)

type fakeFallback struct {
	scores []domain.SentimentScore
	err    error
	calls  int
}

func (f *fakeFallback) Classify(_ context.Context, _ string) ([]domain.SentimentScore, error) {
	f.calls++
	return f.scores, f.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestClassifyKeywordHitSkipsFallback(t *testing.T) {
	fb := &fakeFallback{}
	c := NewClassifier(fb, testLogger())

	got := c.Classify(context.Background(), "학교폭력 때문에 힘들어요")
	if len(got) == 0 || got[0] != domain.CategorySchoolViolence {
		t.Fatalf("categories=%v, want school_violence first", got)
	}
	if fb.calls != 0 {
		t.Fatalf("fallback invoked %d times, want 0", fb.calls)
	}
}

func TestClassifyMultiMatchStableOrder(t *testing.T) {
	c := NewClassifier(&fakeFallback{}, testLogger())

	text := "자살하고 싶을 만큼 학교에서 왕따를 당해요"
	first := c.Classify(context.Background(), text)
	second := c.Classify(context.Background(), text)

	if len(first) != 2 || first[0] != domain.CategorySchoolViolence || first[1] != domain.CategorySuicide {
		t.Fatalf("categories=%v, want [school_violence suicide]", first)
	}
	if strings.Join(first, ",") != strings.Join(second, ",") {
		t.Fatalf("order not stable: %v vs %v", first, second)
	}
}

func TestClassifyFallbackLowConfidenceEmpty(t *testing.T) {
	fb := &fakeFallback{scores: []domain.SentimentScore{{Label: "LABEL_0", Score: 0.5}}}
	c := NewClassifier(fb, testLogger())

	got := c.Classify(context.Background(), "오늘 날씨가 좋네요")
	if len(got) != 0 {
		t.Fatalf("categories=%v, want empty for low-confidence fallback", got)
	}
	if fb.calls != 1 {
		t.Fatalf("fallback invoked %d times, want 1", fb.calls)
	}
}

func TestClassifyFallbackHighConfidenceOther(t *testing.T) {
	fb := &fakeFallback{scores: []domain.SentimentScore{{Label: "LABEL_1", Score: 0.9}}}
	c := NewClassifier(fb, testLogger())

	got := c.Classify(context.Background(), "요즘 고민이 있어요")
	if len(got) != 1 || got[0] != domain.CategoryOther {
		t.Fatalf("categories=%v, want [other]", got)
	}
}

func TestClassifyFallbackErrorDegradesToOther(t *testing.T) {
	fb := &fakeFallback{err: errors.New("model offline")}
	c := NewClassifier(fb, testLogger())

	got := c.Classify(context.Background(), "요즘 고민이 있어요")
	if len(got) != 1 || got[0] != domain.CategoryOther {
		t.Fatalf("categories=%v, want [other] on fallback error", got)
	}
}

func TestContactInfoRoundTrip(t *testing.T) {
	for _, name := range []string{"학교폭력", "가정폭력", "자살위험", "기타"} {
		c := ContactInfo(name)
		if c.Organization == "" || c.Phone == "" || c.URL == "" {
			t.Fatalf("incomplete contact for %s: %+v", name, c)
		}
	}

	unknown := ContactInfo("미지의 상황")
	if unknown != ContactInfo("기타") {
		t.Fatalf("unknown category should return the generic record, got %+v", unknown)
	}
}

func TestGenerateResponseEmptyCategories(t *testing.T) {
	got := GenerateResponse(nil, domain.RiskHigh)
	if !strings.Contains(got, "현재 상황을 파악하기 어렵습니다") {
		t.Fatalf("response=%q, want cannot-determine message", got)
	}
}

func TestGenerateResponseHighFraming(t *testing.T) {
	got := GenerateResponse([]string{domain.CategorySuicide}, domain.RiskHigh)
	if !strings.HasPrefix(got, "🚨 자살위험") {
		t.Fatalf("response=%q, want urgent framing with display name", got)
	}
	if !strings.Contains(got, "1393") {
		t.Fatalf("response missing suicide hotline: %q", got)
	}
}

func TestGenerateResponseJoinsBlocks(t *testing.T) {
	got := GenerateResponse([]string{domain.CategorySchoolViolence, domain.CategorySuicide}, domain.RiskMid)
	blocks := strings.Split(got, "\n\n")
	if len(blocks) < 2 {
		t.Fatalf("expected multiple blocks: %q", got)
	}
	if !strings.Contains(got, "117") || !strings.Contains(got, "1393") {
		t.Fatalf("response missing one of the category contacts: %q", got)
	}
}

func TestGenerateResponseIdempotent(t *testing.T) {
	cats := []string{domain.CategoryDomesticViolence}
	if GenerateResponse(cats, domain.RiskLow) != GenerateResponse(cats, domain.RiskLow) {
		t.Fatalf("identical inputs produced different output")
	}
}
