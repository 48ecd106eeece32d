package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus"

	"daily-paper-bot/internal/adapters/bot"
	"daily-paper-bot/internal/adapters/enricher"
	"daily-paper-bot/internal/adapters/papers"
	"daily-paper-bot/internal/adapters/repo"
	"daily-paper-bot/internal/adapters/telegram"
	"daily-paper-bot/internal/infra/config"
	"daily-paper-bot/internal/infra/db"
	ophttp "daily-paper-bot/internal/infra/http"
	"daily-paper-bot/internal/infra/log"
	"daily-paper-bot/internal/infra/metrics"
	"daily-paper-bot/internal/usecase/prefs"
	"daily-paper-bot/internal/usecase/update"
)

func main() {
	cfg := config.Load()
	logger := log.NewLogger(cfg.AppEnv)
	metrics.MustRegister(prometheus.DefaultRegisterer)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(cfg.PGDSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	store := repo.NewPostgres(pool)
	if err := store.EnsureSchema(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to bootstrap schema")
	}

	source, err := papers.NewClient(cfg.Papers.BaseURL, cfg.Papers.FetchTimeout, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid papers base url")
	}
	modelClient := enricher.NewAnthropicClient(cfg.Anthropic.APIKey, cfg.Anthropic.Model, cfg.Anthropic.Timeout)
	enrichSvc := enricher.NewService(modelClient, logger)

	botAPI, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create bot")
	}
	sender := telegram.NewSender(botAPI, logger)

	prefsSvc := prefs.NewService(store)
	updateSvc := update.NewService(source, store, store, enrichSvc, sender, logger, cfg.UpdateInterval)
	handler := bot.NewHandler(botAPI, logger, prefsSvc, cfg.Telegram.PollTimeout)

	opsServer := ophttp.NewServer(logger)
	go func() {
		if err := opsServer.Start(fmt.Sprintf(":%d", cfg.Port)); err != nil {
			logger.Error().Err(err).Msg("ops server stopped")
		}
	}()

	done := make(chan struct{}, 2)
	go func() {
		handler.Run(ctx)
		done <- struct{}{}
	}()
	go func() {
		updateSvc.Run(ctx)
		done <- struct{}{}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = opsServer.Shutdown(shutdownCtx)
	<-done
	<-done
	logger.Info().Msg("stopped")
}
