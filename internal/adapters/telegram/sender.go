package telegram

import (
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"daily-paper-bot/internal/domain"
	"daily-paper-bot/internal/infra/metrics"
)

// Sender delivers rendered messages through the bot API.
type Sender struct {
	bot *tgbotapi.BotAPI
	log zerolog.Logger
}

var _ domain.MessageSender = (*Sender)(nil)

// NewSender creates the sender.
func NewSender(bot *tgbotapi.BotAPI, logger zerolog.Logger) *Sender {
	return &Sender{bot: bot, log: logger}
}

// SendHTML sends text with HTML rendering, splitting when over the limit.
func (s *Sender) SendHTML(chatID int64, text string) error {
	for _, part := range SplitMessage(text) {
		msg := tgbotapi.NewMessage(chatID, part)
		msg.ParseMode = tgbotapi.ModeHTML
		msg.DisableWebPagePreview = false
		start := time.Now()
		_, err := s.bot.Send(msg)
		metrics.ObserveNetworkRequest("telegram_bot", "send_message", strconv.FormatInt(chatID, 10), start, err)
		if err != nil {
			metrics.BotSendErrors.Inc()
			return err
		}
	}
	return nil
}
