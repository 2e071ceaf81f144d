package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mkrylova/entry-form/config"
	"github.com/mkrylova/entry-form/docgen"
	"github.com/mkrylova/entry-form/handlers"
	api "github.com/mkrylova/entry-form/routes"
	"github.com/mkrylova/entry-form/services"
	"github.com/mkrylova/entry-form/storage"
)

func main() {
	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort), slog.String("data_dir", cfg.DataDir))

	// Журнал заявок и печатная форма
	rosterStore := storage.NewXLSXRosterStore(cfg.DataDir)
	if err := rosterStore.EnsureLog(context.Background()); err != nil {
		logger.Error("failed to prepare roster log", slog.Any("error", err))
		os.Exit(1)
	}
	renderer := docgen.NewDocxRenderer()
	logger.Info("roster log ready", slog.String("path", rosterStore.Path()))

	// Почтовое реле
	mailer := services.NewSMTPMailer(services.SMTPMailerConfig{
		Host: cfg.SMTPHost,
		Port: cfg.SMTPPort,
		User: cfg.SMTPUser,
		Pass: cfg.SMTPPass,
		From: cfg.SMTPFrom,
	})

	// Необязательный архив готовых заявок (Cloudflare R2)
	var uploader storage.FileUploader
	if cfg.R2Enabled() {
		uploader, err = storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("R2 archive enabled", slog.String("bucket", cfg.R2BucketName))
	}

	// Необязательное зеркало журнала в Google Sheets
	var mirror services.RowMirror
	if cfg.SheetsEnabled() {
		sheetsMirror, err := storage.NewSheetsMirror(context.Background(), cfg.GoogleSAJSONPath, cfg.SpreadsheetID)
		if err != nil {
			logger.Error("failed to initialize sheets mirror", slog.Any("error", err))
			os.Exit(1)
		}
		mirror = sheetsMirror
		logger.Info("sheets mirror enabled", slog.String("spreadsheet", cfg.SpreadsheetID))
	}

	// Сервис конвейера и обработчики HTTP
	entryService := services.NewEntryService(rosterStore, renderer, mailer, cfg.NotifyTo, uploader, mirror, logger)
	entryHandler := handlers.NewEntryHandler(entryService, logger)

	router := chi.NewRouter()
	api.SetupRoutes(router, entryHandler)
	logger.Info("routes configured")

	// Настройка и запуск HTTP-сервера
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second, // рендеринг и SMTP идут внутри запроса
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}
