package cmd

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"gamblebot/bot"
	"gamblebot/config"
	"gamblebot/database"
	"gamblebot/events"
	"gamblebot/gate"
	"gamblebot/observability"
	"gamblebot/repository"
	"gamblebot/service"
)

// sessionCleanupInterval is how often expired game sessions are swept
const sessionCleanupInterval = 30 * time.Second

// Run initializes and starts the application
func Run(ctx context.Context) error {
	cfg := config.Get()
	log.SetLevel(cfg.LogLevel)
	log.WithField("environment", cfg.Environment).Info("Starting gamblebot...")

	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	eventBus := events.NewBus()
	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus, cfg.StartingBalance)

	metrics := observability.NewMetricsProvider(cfg)
	if err := metrics.Initialize(ctx); err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}
	metrics.Subscribe(eventBus)

	g, closeGate, err := newGate(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeGate()

	blackjackSessions := service.NewSessionStore[*service.BlackjackSession](cfg.SessionTimeout)
	roadSessions := service.NewSessionStore[*service.RoadSession](cfg.SessionTimeout)
	go blackjackSessions.RunCleanup(ctx, sessionCleanupInterval)
	go roadSessions.RunCleanup(ctx, sessionCleanupInterval)
	metrics.TrackSessions("blackjack", blackjackSessions.Len)
	metrics.TrackSessions("road", roadSessions.Len)

	services := bot.Services{
		Economy:   service.NewEconomyService(uowFactory),
		Gambling:  service.NewGamblingService(uowFactory),
		Blackjack: service.NewBlackjackService(uowFactory, blackjackSessions),
		Road:      service.NewRoadService(uowFactory, roadSessions),
		Rakeback:  service.NewRakebackService(uowFactory),
		Rain:      service.NewRainService(uowFactory),
	}

	log.Info("Initializing Discord bot...")
	botConfig := bot.Config{
		Token:             cfg.DiscordToken,
		GuildID:           cfg.GuildID,
		AnnounceChannelID: cfg.AnnounceChannelID,
		BigWinMultiplier:  cfg.BigWinMultiplier,
		RainWindow:        cfg.RainWindow,
	}
	discordBot, err := bot.New(botConfig, services, g, eventBus)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}

	log.Info("Bot is running")
	<-ctx.Done()

	log.Info("Shutting down bot...")
	if err := discordBot.Close(); err != nil {
		log.WithError(err).Error("Error closing Discord bot")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := metrics.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Error shutting down metrics")
	}

	log.Info("Shutdown completed")
	return nil
}

// newGate picks the Redis gate when REDIS_URL is set so several bot
// processes share holds. Redis holds outlive a rain window so a crashed
// process cannot pin a channel forever.
func newGate(ctx context.Context, cfg *config.Config) (gate.Gate, func(), error) {
	if cfg.RedisURL == "" {
		log.Info("Using in-process command gate")
		return gate.NewMemoryGate(), func() {}, nil
	}

	redisGate, err := gate.NewRedisGate(ctx, cfg.RedisURL, cfg.RainWindow+time.Minute)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	log.Info("Using redis command gate")
	return redisGate, func() {
		if err := redisGate.Close(); err != nil {
			log.WithError(err).Error("Error closing redis gate")
		}
	}, nil
}
