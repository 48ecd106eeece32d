package update

import (
	"github.com/rs/zerolog"

	"daily-paper-bot/internal/domain"
	"daily-paper-bot/internal/infra/metrics"
)

// dispatch sends every matching paper to every subscriber. A failed send is
// logged and skipped; it never blocks other recipients or remaining papers.
func (s *Service) dispatch(log zerolog.Logger, subscribers []domain.Subscriber, batch []domain.Paper) {
	for _, sub := range subscribers {
		for _, paper := range batch {
			if !sub.WantsAny(paper.Categories) {
				continue
			}
			text := FormatNotification(paper, sub.Lang)
			if err := s.sender.SendHTML(sub.ChatID, text); err != nil {
				log.Error().Err(err).Int64("chat_id", sub.ChatID).Str("title", paper.Title).Msg("notification failed")
				continue
			}
			metrics.NotificationsSent.Inc()
		}
	}
}
