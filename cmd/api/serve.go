package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"trades_marketplace/internal/adapter/http/handlers"
	"trades_marketplace/internal/adapter/http/routes"
	"trades_marketplace/internal/adapter/persistence/repository"
	"trades_marketplace/internal/infrastructure/config"
	"trades_marketplace/internal/infrastructure/database"
	"trades_marketplace/internal/infrastructure/logging"
	"trades_marketplace/internal/infrastructure/metrics"
	"trades_marketplace/internal/infrastructure/notification"
	"trades_marketplace/internal/usecase"
	"trades_marketplace/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the HTTP API and serve until SIGINT or SIGTERM.

Examples:
  # Serve against DynamoDB Local
  DYNAMODB_ENDPOINT=http://localhost:8000 marketplace serve

  # Publish notifications to NATS
  NATS_URL=nats://localhost:4222 marketplace serve`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	gin.SetMode(cfg.GinMode)

	ddb, err := database.ConnectDynamoDB(ctx, cfg)
	if err != nil {
		return err
	}

	notifier, closeNotifier, err := newNotifier(cfg, logger)
	if err != nil {
		return err
	}
	defer closeNotifier()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	tables := tablesFromConfig(cfg)
	jobRepo := repository.NewJobRequestDynamoRepository(ddb, tables.JobRequests)
	quoteRepo := repository.NewQuoteDynamoRepository(ddb, tables.Quotes, tables.JobRequests)
	userRepo := repository.NewUserDynamoRepository(ddb, tables.Users, tables.RoleChanges)
	sessionRepo := repository.NewSessionDynamoRepository(ddb, tables.Sessions)
	codeRepo := repository.NewLoginCodeDynamoRepository(ddb, tables.LoginCodes)

	jobUseCase := usecase.NewJobRequestUseCase(jobRepo, logger)
	quoteUseCase := usecase.NewQuoteUseCase(quoteRepo, jobRepo, notifier, m, logger, cfg.QuoteValidity)
	lifecycleUseCase := usecase.NewLifecycleUseCase(jobRepo, quoteRepo, notifier, m, logger)
	authUseCase := usecase.NewAuthUseCase(userRepo, sessionRepo, codeRepo, notifier, m, logger, usecase.AuthConfig{
		SessionTTL:        cfg.SessionTTL,
		LoginCodeTTL:      cfg.LoginCodeTTL,
		LoginCodeInterval: cfg.LoginCodeInterval,
		LoginCodeBurst:    cfg.LoginCodeBurst,
	})

	router := routes.NewRouter(routes.Dependencies{
		JobRequests:   handlers.NewJobRequestHandler(jobUseCase, lifecycleUseCase),
		Quotes:        handlers.NewQuoteHandler(quoteUseCase, lifecycleUseCase),
		Auth:          handlers.NewAuthHandler(authUseCase, lifecycleUseCase, cfg.CookieSecure),
		Authenticator: authUseCase,
		Metrics:       m,
		Gatherer:      reg,
		Logger:        logger,
	})

	return routes.Run(ctx, cfg.Addr(), router, logger)
}

// newNotifier publishes to NATS when NATS_URL is set and only logs otherwise.
func newNotifier(cfg *config.Config, logger *zap.Logger) (interfaces.INotifier, func(), error) {
	if cfg.NATSURL == "" {
		logger.Warn("NATS_URL not set, notifications will only be logged")
		return notification.NewLogNotifier(logger), func() {}, nil
	}

	nc, err := notification.Connect(cfg.NATSURL, logger)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if err := nc.Drain(); err != nil {
			logger.Warn("failed to drain NATS connection", zap.Error(err))
		}
	}
	return notification.NewNATSNotifier(nc, cfg.NATSSubjectPrefix, logger), closeFn, nil
}

func tablesFromConfig(cfg *config.Config) repository.Tables {
	return repository.Tables{
		JobRequests: cfg.JobRequestsTable,
		Quotes:      cfg.QuotesTable,
		Users:       cfg.UsersTable,
		RoleChanges: cfg.RoleChangesTable,
		Sessions:    cfg.SessionsTable,
		LoginCodes:  cfg.LoginCodesTable,
	}.WithDefaults()
}

