package prefs

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"daily-paper-bot/internal/domain"
)

var (
	// ErrNoValidCategories is returned when no label in the input matches the
	// enumeration; stored preferences stay untouched.
	ErrNoValidCategories = errors.New("no valid categories")
	// ErrUnknownLanguage is returned for a language outside the enumeration.
	ErrUnknownLanguage = errors.New("unknown language")
)

// Service manages subscriber preferences.
type Service struct {
	subs domain.SubscriberRepo
}

// NewService creates the service.
func NewService(subs domain.SubscriberRepo) *Service {
	return &Service{subs: subs}
}

// Subscribe registers the chat with default preferences. Repeated calls for
// the same chat are no-ops.
func (s *Service) Subscribe(ctx context.Context, chatID int64) error {
	if err := s.subs.EnsureSubscriber(ctx, chatID); err != nil {
		return fmt.Errorf("ensure subscriber: %w", err)
	}
	return nil
}

// SetCategories parses a comma-separated label list, stores the valid subset
// and reports both partitions. Invalid labels are dropped, not fatal; an
// input with no valid label leaves the stored preferences unchanged.
func (s *Service) SetCategories(ctx context.Context, chatID int64, raw string) (applied []domain.Category, invalid []string, err error) {
	for _, part := range strings.Split(raw, ",") {
		label := strings.TrimSpace(part)
		if label == "" {
			continue
		}
		if cat, ok := domain.ParseCategory(label); ok {
			applied = append(applied, cat)
		} else {
			invalid = append(invalid, label)
		}
	}
	if len(applied) == 0 {
		return nil, invalid, ErrNoValidCategories
	}
	if err := s.subs.UpdateCategories(ctx, chatID, applied); err != nil {
		return nil, nil, fmt.Errorf("update categories: %w", err)
	}
	return applied, invalid, nil
}

// SetLanguage validates and stores the summary language.
func (s *Service) SetLanguage(ctx context.Context, chatID int64, raw string) (domain.Language, error) {
	lang, ok := domain.ParseLanguage(strings.ToUpper(strings.TrimSpace(raw)))
	if !ok {
		return "", ErrUnknownLanguage
	}
	if err := s.subs.UpdateLanguage(ctx, chatID, lang); err != nil {
		return "", fmt.Errorf("update language: %w", err)
	}
	return lang, nil
}
