package update

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"daily-paper-bot/internal/domain"
	"daily-paper-bot/internal/infra/metrics"
)

// Service runs the recurring discover-enrich-notify cycle.
type Service struct {
	source   domain.ListingSource
	papers   domain.PaperRepo
	subs     domain.SubscriberRepo
	enricher domain.Enricher
	sender   domain.MessageSender
	log      zerolog.Logger
	interval time.Duration
	now      func() time.Time
}

// NewService wires the cycle dependencies.
func NewService(
	source domain.ListingSource,
	paperRepo domain.PaperRepo,
	subs domain.SubscriberRepo,
	enricher domain.Enricher,
	sender domain.MessageSender,
	logger zerolog.Logger,
	interval time.Duration,
) *Service {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Service{
		source:   source,
		papers:   paperRepo,
		subs:     subs,
		enricher: enricher,
		sender:   sender,
		log:      logger,
		interval: interval,
		now:      time.Now,
	}
}

// Run loops RunCycle until the context is cancelled. A failed cycle is logged
// and the loop sleeps the regular interval before trying again; nothing short
// of cancellation stops it.
func (s *Service) Run(ctx context.Context) {
	for {
		if err := s.runCycleGuarded(ctx); err != nil && !errors.Is(err, context.Canceled) {
			s.log.Error().Err(err).Msg("update cycle failed")
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(s.interval):
		}
	}
}

func (s *Service) runCycleGuarded(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("update cycle panic: %v", r)
		}
	}()
	return s.RunCycle(ctx)
}

// RunCycle executes one full pass: fetch, parse, enrich unseen papers,
// persist, then fan the batch out to subscribers.
func (s *Service) RunCycle(ctx context.Context) error {
	cycleStart := time.Now()
	log := s.log.With().Str("cycle_id", uuid.NewString()).Logger()
	log.Info().Msg("update cycle started")
	defer func() {
		metrics.UpdateCycleSeconds.Observe(time.Since(cycleStart).Seconds())
	}()

	fetchDay, content, err := s.source.FetchDaily(ctx, s.now())
	if err != nil {
		if errors.Is(err, domain.ErrNoListing) {
			log.Info().Msg("no listing found, skipping cycle")
			return nil
		}
		return fmt.Errorf("fetch listing: %w", err)
	}

	entries, err := s.source.ParseListing(ctx, content)
	if err != nil {
		return fmt.Errorf("parse listing: %w", err)
	}

	batch, err := s.enrichNew(ctx, log, fetchDay, entries)
	if err != nil {
		return err
	}
	if len(batch) == 0 {
		log.Info().Msg("no new papers found")
		return nil
	}

	subscribers, err := s.subs.ListSubscribers(ctx)
	if err != nil {
		return fmt.Errorf("list subscribers: %w", err)
	}
	s.dispatch(log, subscribers, batch)
	log.Info().Int("papers", len(batch)).Int("subscribers", len(subscribers)).Msg("update cycle finished")
	return nil
}

// enrichNew walks entries in document order, enriching and inserting each
// title the store has not seen. Enrichment failures degrade per paper; the
// record is inserted regardless so the title is never enriched twice.
func (s *Service) enrichNew(ctx context.Context, log zerolog.Logger, fetchDay time.Time, entries []domain.ListingEntry) ([]domain.Paper, error) {
	var batch []domain.Paper
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		exists, err := s.papers.PaperExists(ctx, entry.Title)
		if err != nil {
			return nil, fmt.Errorf("check paper %q: %w", entry.Title, err)
		}
		if exists {
			continue
		}

		summary := s.enricher.Summarize(ctx, entry.Abstract)
		translation := s.enricher.Translate(ctx, summary.Text)
		classified := s.enricher.Categorize(ctx, entry.Title, summary.Text)

		paper := domain.Paper{
			Title:       entry.Title,
			URL:         entry.URL,
			Abstract:    entry.Abstract,
			PublishDate: fetchDay,
			SummaryEN:   summary.Text,
			SummaryKO:   translation.Text,
			Categories:  classified.Categories,
		}
		if err := s.papers.InsertPaper(ctx, paper); err != nil {
			return nil, fmt.Errorf("insert paper %q: %w", entry.Title, err)
		}
		metrics.PapersDiscovered.Inc()
		log.Info().
			Str("title", entry.Title).
			Bool("degraded", summary.Degraded || translation.Degraded || classified.Degraded).
			Msg("new paper added")
		batch = append(batch, paper)
	}
	return batch, nil
}
