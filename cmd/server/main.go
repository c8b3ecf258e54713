package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Conwon99/twilio-webhook/internal/config"
	"github.com/Conwon99/twilio-webhook/internal/mapping"
	"github.com/Conwon99/twilio-webhook/internal/phone"
	"github.com/Conwon99/twilio-webhook/internal/repository"
	"github.com/Conwon99/twilio-webhook/internal/routes"
	"github.com/Conwon99/twilio-webhook/internal/services"
	"github.com/Conwon99/twilio-webhook/pkg/logger"
	"github.com/Conwon99/twilio-webhook/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logr := logger.New(cfg.LogLevel, cfg.AppName)
	logr.Info("starting webhook relay")

	metricsCollector := metrics.New()
	store := repository.NewLogStore()
	mappings := mapping.NewLoader(cfg.MappingFile, logr)
	phones := phone.New(cfg.CountryCode, cfg.TrunkPrefix)

	var chat services.ChatNotifier
	if cfg.SlackWebhookURL != "" {
		slack, err := services.NewSlackNotifier(cfg.SlackWebhookURL, cfg.ProviderTimeout, logr)
		if err != nil {
			logr.Error("invalid slack configuration", slog.Any("error", err))
			os.Exit(1)
		}
		chat = slack
	} else {
		logr.Warn("no slack webhook configured, chat channel will be skipped")
	}

	sms := services.NewTwilioProvider(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.ProviderTimeout, logr)

	dispatcher := services.NewDispatcher(services.DispatcherOptions{
		Chat:               chat,
		SMS:                sms,
		Mappings:           mappings,
		Phones:             phones,
		DefaultSender:      cfg.DefaultSender,
		SecondaryRecipient: cfg.SecondaryRecipient,
		ConfirmationText:   cfg.ConfirmationText,
		Metrics:            metricsCollector,
		Logger:             logr,
	})

	forwarder := services.NewLogForwarder(cfg.LogEndpoint, cfg.ProviderTimeout, logr)
	webhook := routes.NewWebhookHandler(dispatcher, forwarder, store, metricsCollector, logr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	started := time.Now()
	httpSrv := startHTTPServer(cfg.HTTPPort, webhook, metricsCollector, logr, started)

	<-ctx.Done()
	shutdownHTTP(httpSrv, logr)
	logr.Info("webhook relay stopped")
}

func startHTTPServer(port string, webhook *routes.WebhookHandler, metricsCollector *metrics.Metrics, logr *slog.Logger, started time.Time) *http.Server {
	if port == "" {
		port = "8080"
	}
	handler := routes.NewRouter(webhook, metricsCollector, started)
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: handler,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Error("http server error", slog.Any("error", err))
		}
	}()
	return srv
}

func shutdownHTTP(srv *http.Server, logr *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logr.Error("failed to shutdown http server", slog.Any("error", err))
	}
}
