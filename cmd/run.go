package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lotobot/application"
	"lotobot/bot"
	"lotobot/config"
	"lotobot/database"
	"lotobot/domain/interfaces"
	"lotobot/infrastructure"
	"lotobot/infrastructure/observability"

	log "github.com/sirupsen/logrus"
)

const (
	healthRefreshInterval = 15 * time.Second
	natsConnectTimeout    = 10 * time.Second
)

// eventBus publishes committed events and dispatches them to in-process handlers
type eventBus interface {
	interfaces.EventPublisher
	interfaces.EventSubscriber
}

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Info("Starting lotobot...")

	cfg := config.Get()

	metrics := observability.NewMetricsProvider(observability.Config{
		Enabled:        cfg.OTelEnabled,
		ServiceName:    cfg.OTelServiceName,
		Environment:    cfg.Environment,
		ExporterType:   cfg.OTelExporterType,
		OTLPEndpoint:   cfg.OTelOTLPEndpoint,
		ExportInterval: cfg.OTelExportInterval(),
	})
	if err := metrics.Initialize(ctx); err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}
	defer shutdownMetrics(metrics)

	databaseURL := cfg.GetDatabaseURL()
	log.WithField("database", database.RedactDatabaseURL(databaseURL)).Info("Running database migrations...")
	if err := database.RunMigrationsWithURL(databaseURL); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	db, err := database.NewConnection(ctx, databaseURL, database.WithQueryTracer(observability.NewQueryTracer(metrics)))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		log.Info("Closing database connection...")
		db.Close()
	}()

	health := infrastructure.NewHealthServer(cfg.HealthAddr)
	health.AddChecker("database", func(ctx context.Context) error {
		return db.Ping(ctx)
	})

	bus, natsClient, err := newEventBus(ctx, cfg.NATSServers, health)
	if err != nil {
		return err
	}
	if natsClient != nil {
		defer func() {
			if err := natsClient.Close(); err != nil {
				log.WithError(err).Error("Error closing NATS client")
			}
		}()
	}

	uowFactory := infrastructure.NewUnitOfWorkFactory(db, bus)
	controller := application.NewGameController(uowFactory,
		interfaces.GameSettings{
			Bet:            cfg.BetAmount,
			WinThreshold:   cfg.WinThreshold,
			SessionTimeout: cfg.SessionTimeout,
		},
		application.NewCooldownGuard(map[string]time.Duration{
			application.ActionDraw:  cfg.DrawCooldown,
			application.ActionCheck: cfg.CheckCooldown,
		}),
		metrics,
	)

	discordBot, err := bot.New(bot.Config{
		Token:           cfg.DiscordToken,
		GuildID:         cfg.GuildID,
		LeaderboardSize: cfg.LeaderboardSize,
	}, controller, bus)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}

	if err := health.Start(ctx, healthRefreshInterval); err != nil {
		log.WithError(err).Warn("Health server not started")
	}

	log.WithField("environment", cfg.Environment).Info("Bot is running")
	<-ctx.Done()

	log.Info("Shutting down bot...")
	health.Stop()

	if err := discordBot.Close(); err != nil {
		log.WithError(err).Error("Error closing Discord bot")
	}

	log.Info("Shutdown completed")
	return nil
}

// newEventBus returns the in-process bus when servers is empty, otherwise a
// NATS-backed bus with its stream ensured and a health checker registered
func newEventBus(ctx context.Context, servers string, health *infrastructure.HealthServer) (eventBus, *infrastructure.NATSClient, error) {
	if servers == "" {
		log.Info("NATS_SERVERS not set, events stay in-process")
		return infrastructure.NewLocalEventPublisher(), nil, nil
	}

	client := infrastructure.NewNATSClient(servers)
	connectCtx, cancel := context.WithTimeout(ctx, natsConnectTimeout)
	defer cancel()
	if err := client.Connect(connectCtx); err != nil {
		return nil, nil, fmt.Errorf("failed to set up NATS event bus: %w", err)
	}

	mapper := infrastructure.NewEventSubjectMapper()
	if err := infrastructure.EnsureEventStream(client, mapper); err != nil {
		log.WithError(err).Warn("Failed to ensure event stream, events may not be retained")
	}
	health.AddChecker("nats", func(context.Context) error {
		if !client.IsConnected() {
			return errors.New("nats disconnected")
		}
		return nil
	})
	return infrastructure.NewNATSEventPublisher(client, mapper), client, nil
}

func shutdownMetrics(metrics *observability.MetricsProvider) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := metrics.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Error shutting down metrics")
	}
}
