package cli

import (
	"context"
	stdlog "log"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"contact-form-backend/pkg/api"
	"contact-form-backend/pkg/config"
	"contact-form-backend/pkg/contact"
	"contact-form-backend/pkg/mail"
	"contact-form-backend/pkg/telegram"
	"contact-form-backend/pkg/version"
)

func NewServeCommand() *cobra.Command {
	var debug bool
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the Telegram poller",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runServe(debug, configPath)
		},
	}

	cmd.Flags().BoolVar(&debug, "debug", false, "enable debug level logging")
	cmd.Flags().StringVar(&configPath, "config", "", "path to an optional YAML config file")

	return cmd
}

func runServe(debug bool, configPath string) error {
	zl := setupLogger(debug)
	defer func() { _ = zl.Sync() }()

	log := zl.Sugar()
	log.With("version", version.Version).Info("Starting contact-form backend")

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log.Infow("Configuration loaded",
		"listen", cfg.Server.ListenAddress(),
		"smtpHost", cfg.Mail.Host,
		"smtpPort", cfg.Mail.Port,
		"telegramConfigured", cfg.Telegram.Configured(),
		"allowedOrigins", cfg.Server.AllowedOrigins,
	)

	mailer := mail.NewSender(cfg.Mail, log)
	tgClient := telegram.NewClient(cfg.Telegram, log)
	notifier := telegram.NewNotifier(tgClient, log)
	poller := telegram.NewPoller(tgClient, log)

	server := api.NewServer(zl, cfg, debug)
	if err := server.RegisterAll([]api.APIController{
		contact.NewController(log, mailer, notifier, cfg),
	}); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		poller.Run(ctx)
	}()

	err = server.ListenAndServe(ctx)

	// Stop the poller even when the server failed on its own.
	cancel()
	wg.Wait()

	log.Info("Shutdown complete")
	return err
}

func setupLogger(debug bool) *zap.Logger {
	cfg := zap.NewProductionConfig()
	if debug {
		cfg = zap.NewDevelopmentConfig()
	}
	// Disable automatic stacktraces for non-fatal levels to avoid noisy traces in WARN/INFO logs
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.UTC().Format(time.RFC3339))
	}
	cfg.EncoderConfig.TimeKey = "ts"
	// Mirror everything into the append-only process log file.
	cfg.OutputPaths = append(cfg.OutputPaths, "app.log")
	logger, err := cfg.Build()
	if err != nil {
		stdlog.Fatalf("failed to set up logger: %v", err)
	}
	return logger
}
