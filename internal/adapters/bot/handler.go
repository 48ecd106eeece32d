package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"daily-paper-bot/internal/adapters/telegram"
	"daily-paper-bot/internal/domain"
	"daily-paper-bot/internal/infra/metrics"
	"daily-paper-bot/internal/usecase/prefs"
)

// Handler serves inbound bot commands over long polling.
type Handler struct {
	bot         *tgbotapi.BotAPI
	log         zerolog.Logger
	prefs       *prefs.Service
	pollTimeout int
}

// NewHandler creates the command handler.
func NewHandler(botAPI *tgbotapi.BotAPI, logger zerolog.Logger, prefsUC *prefs.Service, pollTimeout int) *Handler {
	if pollTimeout <= 0 {
		pollTimeout = 30
	}
	return &Handler{bot: botAPI, log: logger, prefs: prefsUC, pollTimeout: pollTimeout}
}

// Run consumes updates until the context is cancelled.
func (h *Handler) Run(ctx context.Context) {
	updateCfg := tgbotapi.NewUpdate(0)
	updateCfg.Timeout = h.pollTimeout
	updates := h.bot.GetUpdatesChan(updateCfg)
	h.log.Info().Msg("bot command loop started")
	for {
		select {
		case <-ctx.Done():
			h.bot.StopReceivingUpdates()
			return
		case upd, ok := <-updates:
			if !ok {
				return
			}
			h.HandleUpdate(ctx, upd)
		}
	}
}

// HandleUpdate dispatches one inbound update. Every recognizable message gets
// a reply, even on misuse.
func (h *Handler) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	msg := upd.Message
	if msg == nil || msg.Text == "" {
		return
	}
	chatID := msg.Chat.ID
	h.log.Debug().Int64("chat_id", chatID).Str("text", msg.Text).Msg("message received")

	switch msg.Command() {
	case "start":
		h.handleStart(ctx, chatID)
	case "setcategory":
		h.handleSetCategory(ctx, chatID, msg.CommandArguments())
	case "setlang":
		h.handleSetLang(ctx, chatID, msg.CommandArguments())
	default:
		h.reply(chatID, "Sorry, I didn't understand that command. Use /start for available commands.")
	}
}

func (h *Handler) handleStart(ctx context.Context, chatID int64) {
	if err := h.prefs.Subscribe(ctx, chatID); err != nil {
		h.log.Error().Err(err).Int64("chat_id", chatID).Msg("subscribe failed")
		h.reply(chatID, "Sorry, an error occurred while processing your request.")
		return
	}
	h.reply(chatID, welcomeMessage())
}

func (h *Handler) handleSetCategory(ctx context.Context, chatID int64, args string) {
	if strings.TrimSpace(args) == "" {
		h.reply(chatID, "Please provide categories. Ex: /setcategory LLM,Computer vision")
		return
	}
	applied, invalid, err := h.prefs.SetCategories(ctx, chatID, args)
	switch {
	case errors.Is(err, prefs.ErrNoValidCategories):
		h.reply(chatID, "No valid categories provided. Please choose from: "+categoryList())
	case err != nil:
		h.log.Error().Err(err).Int64("chat_id", chatID).Msg("set category failed")
		h.reply(chatID, "Sorry, an error occurred while processing your request.")
	default:
		text := "Category is set to: " + joinCategoryLabels(applied)
		if len(invalid) > 0 {
			text += "\nInvalid categories ignored: " + strings.Join(invalid, ", ")
		}
		h.reply(chatID, text)
	}
}

func (h *Handler) handleSetLang(ctx context.Context, chatID int64, args string) {
	if strings.TrimSpace(args) == "" {
		h.reply(chatID, "Please provide a language. Ex: /setlang KO")
		return
	}
	lang, err := h.prefs.SetLanguage(ctx, chatID, args)
	switch {
	case errors.Is(err, prefs.ErrUnknownLanguage):
		h.reply(chatID, "Invalid language. Please choose from: "+languageList())
	case err != nil:
		h.log.Error().Err(err).Int64("chat_id", chatID).Msg("set language failed")
		h.reply(chatID, "Sorry, an error occurred while processing your request.")
	default:
		h.reply(chatID, fmt.Sprintf("Language is set to %s", lang))
	}
}

func (h *Handler) reply(chatID int64, text string) {
	for _, part := range telegram.SplitMessage(text) {
		msg := tgbotapi.NewMessage(chatID, part)
		start := time.Now()
		_, err := h.bot.Send(msg)
		metrics.ObserveNetworkRequest("telegram_bot", "send_message", strconv.FormatInt(chatID, 10), start, err)
		if err != nil {
			metrics.BotSendErrors.Inc()
			h.log.Error().Err(err).Int64("chat_id", chatID).Msg("reply failed")
			return
		}
	}
}

func welcomeMessage() string {
	return "Welcome to the daily paper bot!\n\n" +
		"Here are the available commands:\n" +
		"/setcategory - Set your preferred paper categories\n" +
		"  Usage: /setcategory category1,category2,category3\n" +
		"  Available categories: " + categoryList() + "\n" +
		"  Example: /setcategory LLM,Computer vision\n\n" +
		"/setlang - Set your preferred language for summaries\n" +
		"  Usage: /setlang language\n" +
		"  Available languages: " + languageList() + "\n" +
		"  Example: /setlang KO"
}

func categoryList() string {
	return joinCategoryLabels(domain.Categories)
}

func languageList() string {
	labels := make([]string, 0, len(domain.Languages))
	for _, lang := range domain.Languages {
		labels = append(labels, string(lang))
	}
	return strings.Join(labels, ", ")
}

func joinCategoryLabels(categories []domain.Category) string {
	labels := make([]string, 0, len(categories))
	for _, cat := range categories {
		labels = append(labels, string(cat))
	}
	return strings.Join(labels, ", ")
}
