package enricher

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"daily-paper-bot/internal/domain"
	"daily-paper-bot/internal/infra/metrics"
)

// Placeholders substituted when a model call fails. A broken model call must
// never block paper discovery, so every operation degrades instead of erroring.
const (
	SummaryPlaceholder     = "Error in summarization."
	TranslationPlaceholder = "Error in translation."
)

const (
	summarizeSystem = "You are a highly knowledgeable assistant who is very specialized in deep learning field. " +
		"Provide the summarization of the given content into 2~3 sentences. ONLY provide the summarized sentences."
	translateSystem = "You are a highly knowledgeable assistant who is very specialized in English-Korean translating. " +
		"Provide translated text of the given content. Don't translate English terminologies and focus on translating common words. " +
		"ONLY provide translated sentences."
	categorizeSystemFormat = "You are a highly knowledgeable assistant who is very specialized in deep learning field. " +
		"Suggest one or multiple categories of the given paper. Categories must be selected among %s. " +
		"ONLY provide categories separated by comma and nothing else."
)

type messageClient interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Service enriches papers through a text-generation model.
type Service struct {
	client messageClient
	log    zerolog.Logger
}

var _ domain.Enricher = (*Service)(nil)

// NewService creates the enrichment service.
func NewService(client messageClient, logger zerolog.Logger) *Service {
	return &Service{client: client, log: logger}
}

// Summarize compresses an abstract into 2-3 sentences.
func (s *Service) Summarize(ctx context.Context, abstract string) domain.TextResult {
	user := "Summarize this content into maximum 2 sentences: " + abstract
	text, err := s.client.Complete(ctx, summarizeSystem, user)
	if err != nil {
		s.log.Error().Err(err).Msg("summarization failed")
		metrics.EnrichmentDegraded.WithLabelValues("summarize").Inc()
		return domain.TextResult{Text: SummaryPlaceholder, Degraded: true}
	}
	return domain.TextResult{Text: strings.TrimSpace(text)}
}

// Translate renders the text in Korean, keeping technical terms untranslated.
func (s *Service) Translate(ctx context.Context, text string) domain.TextResult {
	translated, err := s.client.Complete(ctx, translateSystem, "Translate it into Korean: "+text)
	if err != nil {
		s.log.Error().Err(err).Msg("translation failed")
		metrics.EnrichmentDegraded.WithLabelValues("translate").Inc()
		return domain.TextResult{Text: TranslationPlaceholder, Degraded: true}
	}
	return domain.TextResult{Text: strings.TrimSpace(translated)}
}

// Categorize asks the model to pick labels from the fixed enumeration. The
// answer is split on commas and filtered against the enumeration; labels the
// model invents are dropped.
func (s *Service) Categorize(ctx context.Context, title, summary string) domain.CategoryResult {
	system := fmt.Sprintf(categorizeSystemFormat, categoryList())
	user := fmt.Sprintf("What categories would you suggest me to add to this paper?\npaper title: %s\npaper summary: %s", title, summary)
	answer, err := s.client.Complete(ctx, system, user)
	if err != nil {
		s.log.Error().Err(err).Str("title", title).Msg("categorization failed")
		metrics.EnrichmentDegraded.WithLabelValues("categorize").Inc()
		return domain.CategoryResult{Degraded: true}
	}

	var categories []domain.Category
	for _, part := range strings.Split(answer, ",") {
		label := strings.TrimSpace(part)
		if label == "" {
			continue
		}
		cat, ok := domain.ParseCategory(label)
		if !ok {
			s.log.Debug().Str("label", label).Str("title", title).Msg("dropping unknown category label")
			continue
		}
		categories = append(categories, cat)
	}
	return domain.CategoryResult{Categories: categories}
}

func categoryList() string {
	parts := make([]string, 0, len(domain.Categories))
	for _, cat := range domain.Categories {
		parts = append(parts, string(cat))
	}
	return strings.Join(parts, ", ")
}
