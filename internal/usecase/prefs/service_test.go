package prefs

import (
	"context"
	"errors"
	"testing"

	"daily-paper-bot/internal/domain"
)

type stubSubs struct {
	ensured       []int64
	lang          domain.Language
	langUpdates   int
	categories    []domain.Category
	categoryCalls int
}

func (s *stubSubs) EnsureSubscriber(_ context.Context, chatID int64) error {
	s.ensured = append(s.ensured, chatID)
	return nil
}

func (s *stubSubs) UpdateLanguage(_ context.Context, _ int64, lang domain.Language) error {
	s.lang = lang
	s.langUpdates++
	return nil
}

func (s *stubSubs) UpdateCategories(_ context.Context, _ int64, categories []domain.Category) error {
	s.categories = categories
	s.categoryCalls++
	return nil
}

func (s *stubSubs) ListSubscribers(context.Context) ([]domain.Subscriber, error) {
	return nil, nil
}

func TestSubscribeDelegatesToRepo(t *testing.T) {
	repo := &stubSubs{}
	svc := NewService(repo)
	for i := 0; i < 2; i++ {
		if err := svc.Subscribe(context.Background(), 42); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	}
	if len(repo.ensured) != 2 {
		t.Fatalf("expected 2 ensure calls, got %d", len(repo.ensured))
	}
}

func TestSetCategoriesPartitionsInput(t *testing.T) {
	repo := &stubSubs{}
	svc := NewService(repo)

	applied, invalid, err := svc.SetCategories(context.Background(), 1, " LLM , Computer vision, Astrology ")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(applied) != 2 || applied[0] != domain.CategoryLLM || applied[1] != domain.CategoryComputerVision {
		t.Fatalf("unexpected applied set: %v", applied)
	}
	if len(invalid) != 1 || invalid[0] != "Astrology" {
		t.Fatalf("unexpected invalid set: %v", invalid)
	}
	if repo.categoryCalls != 1 {
		t.Fatalf("expected 1 repo update, got %d", repo.categoryCalls)
	}
}

func TestSetCategoriesAllInvalid(t *testing.T) {
	repo := &stubSubs{}
	svc := NewService(repo)

	_, invalid, err := svc.SetCategories(context.Background(), 1, "Astrology, Alchemy")
	if !errors.Is(err, ErrNoValidCategories) {
		t.Fatalf("expected ErrNoValidCategories, got %v", err)
	}
	if len(invalid) != 2 {
		t.Fatalf("expected both labels reported invalid, got %v", invalid)
	}
	if repo.categoryCalls != 0 {
		t.Fatal("stored preferences must stay untouched")
	}
}

func TestSetLanguage(t *testing.T) {
	repo := &stubSubs{}
	svc := NewService(repo)

	lang, err := svc.SetLanguage(context.Background(), 1, " ko ")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if lang != domain.LangKO || repo.lang != domain.LangKO {
		t.Fatalf("expected KO, got %v / %v", lang, repo.lang)
	}
}

func TestSetLanguageUnknown(t *testing.T) {
	repo := &stubSubs{}
	svc := NewService(repo)

	if _, err := svc.SetLanguage(context.Background(), 1, "FR"); !errors.Is(err, ErrUnknownLanguage) {
		t.Fatalf("expected ErrUnknownLanguage, got %v", err)
	}
	if repo.langUpdates != 0 {
		t.Fatal("unknown language must not reach the repo")
	}
}
