package enricher

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"daily-paper-bot/internal/domain"
)

type stubClient struct {
	answer string
	err    error
	system string
	user   string
}

func (s *stubClient) Complete(_ context.Context, system, user string) (string, error) {
	s.system = system
	s.user = user
	return s.answer, s.err
}

func TestSummarize(t *testing.T) {
	client := &stubClient{answer: "  A short summary.  "}
	svc := NewService(client, zerolog.Nop())

	res := svc.Summarize(context.Background(), "Some abstract.")
	if res.Degraded {
		t.Fatal("expected non-degraded result")
	}
	if res.Text != "A short summary." {
		t.Fatalf("expected trimmed summary, got %q", res.Text)
	}
	if !strings.Contains(client.user, "Some abstract.") {
		t.Fatalf("expected abstract in prompt, got %q", client.user)
	}
}

func TestSummarizeDegradesOnFailure(t *testing.T) {
	client := &stubClient{err: errors.New("boom")}
	svc := NewService(client, zerolog.Nop())

	res := svc.Summarize(context.Background(), "abstract")
	if !res.Degraded {
		t.Fatal("expected degraded result")
	}
	if res.Text != SummaryPlaceholder {
		t.Fatalf("expected placeholder, got %q", res.Text)
	}
}

func TestTranslateDegradesOnFailure(t *testing.T) {
	client := &stubClient{err: errors.New("boom")}
	svc := NewService(client, zerolog.Nop())

	res := svc.Translate(context.Background(), "summary")
	if !res.Degraded || res.Text != TranslationPlaceholder {
		t.Fatalf("expected degraded placeholder, got %+v", res)
	}
}

func TestCategorizeSplitsAndFilters(t *testing.T) {
	client := &stubClient{answer: " LLM , Robotics, Quantum computing ,"}
	svc := NewService(client, zerolog.Nop())

	res := svc.Categorize(context.Background(), "Paper", "Summary")
	if res.Degraded {
		t.Fatal("expected non-degraded result")
	}
	want := []domain.Category{domain.CategoryLLM, domain.CategoryRobotics}
	if len(res.Categories) != len(want) {
		t.Fatalf("expected %d categories, got %v", len(want), res.Categories)
	}
	for i, cat := range want {
		if res.Categories[i] != cat {
			t.Fatalf("expected %v, got %v", want, res.Categories)
		}
	}
	if !strings.Contains(client.system, "LLM, Multimodal, Computer vision") {
		t.Fatalf("expected enumeration in system prompt, got %q", client.system)
	}
}

func TestCategorizeDegradesToEmpty(t *testing.T) {
	client := &stubClient{err: errors.New("boom")}
	svc := NewService(client, zerolog.Nop())

	res := svc.Categorize(context.Background(), "Paper", "Summary")
	if !res.Degraded {
		t.Fatal("expected degraded result")
	}
	if len(res.Categories) != 0 {
		t.Fatalf("expected no categories, got %v", res.Categories)
	}
}
