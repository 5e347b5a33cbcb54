package internal

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	logger_adapter "storefront-service/internal/adapters/logger"
	postgres_adapter "storefront-service/internal/adapters/postgres"
	rabbitmq_adapter "storefront-service/internal/adapters/rabbitmq"
	"storefront-service/internal/adapters/rest"
	smtp_adapter "storefront-service/internal/adapters/smtp"
	"storefront-service/internal/configs"
	"storefront-service/internal/core/port"
	"storefront-service/internal/core/usecase"
	"storefront-service/pkg/fluentlogger"
	"storefront-service/pkg/postgres"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"
)

type App struct {
	config    *configs.AppConfig
	dbPool    *pgxpool.Pool
	apiServer *rest.Server

	orderEvents  port.OrderEventsPort
	logger       port.LoggerPort
	fluentClient *fluent.Fluent
}

func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	var activeLoggers []port.LoggerPort

	stdoutLogger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Level:    parseLogLevel(appConfig.StdoutLogger.Level),
		IsJSON:   !appConfig.IsDevelopment(),
		UseColor: appConfig.IsDevelopment(),
	})
	activeLoggers = append(activeLoggers, stdoutLogger)

	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, parseLogLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	baseLogger := multiLogger.WithFields(port.Fields{"service_name": appConfig.AppName})
	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	dbPool, err := postgres.NewClient(context.Background(), postgres.Config{DatabaseURL: appConfig.Database.URL})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	appLogger.Info("Successfully connected to PostgreSQL pool", nil)

	catalogRepository, err := postgres_adapter.NewCatalogRepository(dbPool)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to create catalog repository: %w", err)
	}
	orderRepository, err := postgres_adapter.NewOrderRepository(dbPool)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to create order repository: %w", err)
	}

	mailer, err := smtp_adapter.NewMailerAdapter(smtp_adapter.Config{
		Host:       appConfig.SMTP.Host,
		Port:       appConfig.SMTP.Port,
		Username:   appConfig.SMTP.Username,
		Password:   appConfig.SMTP.Password,
		From:       appConfig.SMTP.From,
		AdminEmail: appConfig.SMTP.AdminEmail,
	}, baseLogger.WithFields(port.Fields{"component": "smtp_mailer"}))
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to create SMTP mailer: %w", err)
	}

	var orderEvents port.OrderEventsPort
	if appConfig.RabbitMQ.Enabled {
		publisher, err := rabbitmq_adapter.NewOrderEventsPublisherAdapter(
			appConfig.RabbitMQ.URL,
			appConfig.RabbitMQ.Exchange,
			baseLogger.WithFields(port.Fields{"component": "order_events_publisher"}),
		)
		if err != nil {
			dbPool.Close()
			return nil, fmt.Errorf("failed to create order events publisher: %w", err)
		}
		orderEvents = publisher
		appLogger.Info("Order events publisher initialized", port.Fields{"exchange": appConfig.RabbitMQ.Exchange})
	}
	appLogger.Info("All outgoing adapters initialized.", nil)

	findProductsUC := usecase.NewFindProductsUseCase(catalogRepository)
	getProductDetailsUC := usecase.NewGetProductDetailsUseCase(catalogRepository)
	listBrandsUC := usecase.NewListBrandsUseCase(catalogRepository)
	listAromaboxesUC := usecase.NewListAromaboxesUseCase(catalogRepository)
	getAromaboxDetailsUC := usecase.NewGetAromaboxDetailsUseCase(catalogRepository)
	createOrderUC := usecase.NewCreateOrderUseCase(orderRepository, mailer, orderEvents)
	submitContactUC := usecase.NewSubmitContactUseCase(mailer)
	appLogger.Info("All use cases initialized.", nil)

	catalogHandlers := rest.NewCatalogHandler(
		findProductsUC,
		getProductDetailsUC,
		listBrandsUC,
		listAromaboxesUC,
		getAromaboxDetailsUC,
		appConfig.IsDevelopment(),
	)
	orderHandlers := rest.NewOrderHandler(createOrderUC, submitContactUC, appConfig.IsDevelopment())

	apiServer := rest.NewServer(rest.ServerConfig{
		Port:           appConfig.Rest.PORT,
		AllowedOrigins: appConfig.Rest.AllowedOrigins,
	}, catalogHandlers, orderHandlers, baseLogger)

	return &App{
		config:       appConfig,
		dbPool:       dbPool,
		apiServer:    apiServer,
		orderEvents:  orderEvents,
		logger:       appLogger,
		fluentClient: fluentClient,
	}, nil
}

// Run starts the HTTP server and blocks until an OS signal or a server
// failure triggers graceful shutdown.
func (a *App) Run() error {
	appCtx, cancelApp := context.WithCancel(context.Background())
	defer cancelApp()

	defer func() {
		a.logger.Info("App: Shutdown sequence initiated...", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := a.apiServer.Stop(shutdownCtx); err != nil {
			a.logger.Error("App: Error stopping api server", err, nil)
		}

		if a.orderEvents != nil {
			if err := a.orderEvents.Close(); err != nil {
				a.logger.Error("App: Error closing order events publisher", err, nil)
			}
		}

		if a.dbPool != nil {
			a.dbPool.Close()
			a.logger.Info("App: PostgreSQL pool closed.", nil)
		}

		if a.fluentClient != nil {
			if err := a.fluentClient.Close(); err != nil {
				log.Printf("App: Error closing fluent client: %v\n", err)
			}
		}
		a.logger.Info("Application shut down gracefully.", nil)
	}()

	a.logger.Info("Application is starting...", nil)

	serverErrors := make(chan error, 1)
	go func() {
		if err := a.apiServer.Start(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	case <-appCtx.Done():
		a.logger.Warn("Context was cancelled unexpectedly, shutting down...", nil)
	case err := <-serverErrors:
		a.logger.Error("HTTP server failed, shutting down", err, nil)
		return err
	}

	return nil
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		log.Printf("Warning: Unknown log level '%s'. Defaulting to 'info'.", levelStr)
		return slog.LevelInfo
	}
}
