package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"telegram-pager-bot/cmd/bot/config"
	"telegram-pager-bot/internal/bot"
	"telegram-pager-bot/internal/log"
	"telegram-pager-bot/internal/pager"
	"telegram-pager-bot/internal/server"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func main() {
	if err := run(); err != nil {
		slog.Error("application run failed", "error", err)
		os.Exit(1)
	}
}

// run инкапсулирует всю логику инициализации и запуска приложения.
func run() error {
	// 1. Загрузка конфигурации
	cfg, err := config.LoadConfig("bot_config.yml")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Инициализация логгера с маскировкой токенов
	var level slog.Level
	switch cfg.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	var handler slog.Handler
	switch cfg.Logging.Format {
	case "text":
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	default:
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}

	logger := log.NewMaskedLogger(handler)
	slog.SetDefault(logger)

	// 3. Валидация конфигурации (после инициализации логгера)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	// 4. Клиент Telegram Bot API
	api, err := tgbotapi.NewBotAPI(cfg.Bot.Token)
	if err != nil {
		return fmt.Errorf("failed to create telegram bot api client: %w", err)
	}
	slog.Info("Authorized on telegram", slog.String("username", api.Self.UserName))

	// 5. Подсистема пагинации
	transport := bot.NewTransport(api)
	registry := pager.NewRegistry()
	dispatcher := pager.NewDispatcher(registry, transport, logger.With(slog.String("component", "dispatcher")))
	pg := pager.New(registry, transport, dispatcher, logger.With(slog.String("component", "pager")))

	b := bot.New(api, cfg.Bot, dispatcher, pg, pagerOptions(cfg.Pager), logger.With(slog.String("component", "bot")))

	// 6. Статусный HTTP-сервер
	srv := server.New(cfg.Server.Address(), registry)

	serverDone := make(chan struct{})
	go func() {
		defer close(serverDone)
		slog.Info("Starting status server", "addr", cfg.Server.Address())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server error", "error", err)
		}
	}()

	// 7. Запуск бота и graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	botDone := make(chan struct{})
	go func() {
		defer close(botDone)
		b.Start(ctx)
	}()

	<-ctx.Done()
	slog.Info("Signal received, shutting down...")

	<-botDone
	slog.Info("Bot stopped")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.ShutdownTimeoutSeconds)*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	<-serverDone
	slog.Info("HTTP server stopped")

	slog.Info("Application exited gracefully")
	return nil
}

// pagerOptions преобразует конфигурацию пагинации в опции сессий.
func pagerOptions(cfg config.PagerConfig) pager.Options {
	opts := pager.DefaultOptions()
	opts.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	opts.JumpTimeout = time.Duration(cfg.JumpReplyTimeoutSeconds) * time.Second
	opts.JumpMinPages = cfg.JumpMinPages
	opts.FooterFormat = cfg.FooterFormat

	labels := pager.DefaultLabels()
	if cfg.Labels.First != "" {
		labels.First = cfg.Labels.First
	}
	if cfg.Labels.Back != "" {
		labels.Back = cfg.Labels.Back
	}
	if cfg.Labels.Next != "" {
		labels.Next = cfg.Labels.Next
	}
	if cfg.Labels.Last != "" {
		labels.Last = cfg.Labels.Last
	}
	if cfg.Labels.Stop != "" {
		labels.Stop = cfg.Labels.Stop
	}
	if cfg.Labels.Jump != "" {
		labels.Jump = cfg.Labels.Jump
	}
	opts.Labels = labels

	return opts
}
