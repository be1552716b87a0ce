package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"gamblebot/bot/common"
	"gamblebot/bot/features/announcements"
	"gamblebot/bot/features/blackjack"
	"gamblebot/bot/features/casino"
	"gamblebot/bot/features/economy"
	"gamblebot/bot/features/rain"
	"gamblebot/bot/features/road"
	"gamblebot/events"
	"gamblebot/gate"
	"gamblebot/service"
)

// nameCacheSize bounds the display name cache
const nameCacheSize = 4096

// Config holds bot configuration
type Config struct {
	Token             string
	GuildID           string
	AnnounceChannelID string
	BigWinMultiplier  float64
	RainWindow        time.Duration
}

// Services are the core operations the bot exposes
type Services struct {
	Economy   service.EconomyService
	Gambling  service.GamblingService
	Blackjack service.BlackjackService
	Road      service.RoadService
	Rakeback  service.RakebackService
	Rain      service.RainService
}

// Bot manages the Discord session and all feature modules
type Bot struct {
	config  Config
	session *discordgo.Session
	gate    gate.Gate

	// Feature modules
	economy   *economy.Feature
	casino    *casino.Feature
	blackjack *blackjack.Feature
	road      *road.Feature
	rain      *rain.Feature
}

// New creates a new bot instance with all features and connects it
func New(config Config, services Services, g gate.Gate, eventBus *events.Bus) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessageReactions

	names, err := common.NewNameCache(dg, nameCacheSize)
	if err != nil {
		return nil, fmt.Errorf("error creating name cache: %w", err)
	}

	bot := &Bot{
		config:    config,
		session:   dg,
		gate:      g,
		economy:   economy.New(services.Economy, services.Rakeback, names),
		casino:    casino.New(services.Gambling),
		blackjack: blackjack.New(services.Blackjack),
		road:      road.New(services.Road),
		rain:      rain.New(services.Rain, g, config.RainWindow, names),
	}

	announcements.New(dg, config.AnnounceChannelID, config.BigWinMultiplier).Subscribe(eventBus)

	dg.AddHandler(bot.handleCommands)
	dg.AddHandler(bot.handleInteractions)

	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	log.WithField("user", dg.State.User.Username).Info("Discord bot connected")
	return bot, nil
}

// Close gracefully shuts down the bot
func (b *Bot) Close() error {
	return b.session.Close()
}

// handleCommands routes slash commands to appropriate handlers
func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	b.withUserGate(s, i, func() {
		switch i.ApplicationCommandData().Name {
		case "balance", "daily", "work", "tip", "leaderboard", "rakeback":
			b.economy.HandleCommand(s, i)
		case "dice", "coinflip", "roulette", "slots", "limbo":
			b.casino.HandleCommand(s, i)
		case "blackjack":
			b.blackjack.HandleCommand(s, i)
		case "uncrossable":
			b.road.HandleCommand(s, i)
		case "rain":
			b.rain.HandleCommand(s, i)
		}
	})
}

// handleInteractions routes button presses to appropriate features
func (b *Bot) handleInteractions(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}

	customID := i.MessageComponentData().CustomID
	b.withUserGate(s, i, func() {
		switch {
		case strings.HasPrefix(customID, "bj_"):
			b.blackjack.HandleInteraction(s, i)
		case strings.HasPrefix(customID, "road_"):
			b.road.HandleInteraction(s, i)
		}
	})
}

// withUserGate runs fn while holding the invoking user's gate, so one user
// never has two wagers in flight
func (b *Bot) withUserGate(s *discordgo.Session, i *discordgo.InteractionCreate, fn func()) {
	userID, err := common.ParseUserID(common.InteractionUserID(i))
	if err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "failed to parse user ID"), false)
		return
	}

	release, err := b.gate.Acquire(context.Background(), gate.UserKey(userID))
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}
	defer release()

	fn()
}
