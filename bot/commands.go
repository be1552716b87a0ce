package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"gamblebot/games"
)

func amountOption(description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "amount",
		Description: description,
		Required:    true,
	}
}

func choices(values ...string) []*discordgo.ApplicationCommandOptionChoice {
	out := make([]*discordgo.ApplicationCommandOptionChoice, len(values))
	for i, v := range values {
		out[i] = &discordgo.ApplicationCommandOptionChoice{Name: v, Value: v}
	}
	return out
}

func floatPtr(v float64) *float64 {
	return &v
}

// Commands returns every slash command the bot serves
func Commands() []*discordgo.ApplicationCommand {
	const betHelp = "Amount to bet (250, 10k, half, 25%, all)"

	return []*discordgo.ApplicationCommand{
		{
			Name:        "balance",
			Description: "Check a balance and recent bets",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "User to check (defaults to you)",
				},
			},
		},
		{
			Name:        "daily",
			Description: "Claim your daily reward",
		},
		{
			Name:        "work",
			Description: "Work a shift for some money",
		},
		{
			Name:        "tip",
			Description: "Send money to another player",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "User to tip",
					Required:    true,
				},
				amountOption("Amount to tip (250, 10k, half, 25%, all)"),
			},
		},
		{
			Name:        "leaderboard",
			Description: "Show the richest players",
		},
		{
			Name:        "rakeback",
			Description: "Claim your accumulated rakeback",
		},
		{
			Name:        "dice",
			Description: "Roll 1-100 and win when the roll is at or under your chance",
			Options: []*discordgo.ApplicationCommandOption{
				amountOption(betHelp),
				{
					Type:        discordgo.ApplicationCommandOptionNumber,
					Name:        "chance",
					Description: "Win chance in percent (default 49)",
					MinValue:    floatPtr(games.MinDiceChance),
					MaxValue:    games.MaxDiceChance,
				},
			},
		},
		{
			Name:        "coinflip",
			Description: "Call heads or tails for even money",
			Options: []*discordgo.ApplicationCommandOption{
				amountOption(betHelp),
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "side",
					Description: "Heads or tails",
					Required:    true,
					Choices:     choices(string(games.Heads), string(games.Tails)),
				},
			},
		},
		{
			Name:        "roulette",
			Description: "Bet on the color of the pocket",
			Options: []*discordgo.ApplicationCommandOption{
				amountOption(betHelp),
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "color",
					Description: "Red and black pay 2x, green pays 35x",
					Required:    true,
					Choices:     choices(string(games.Red), string(games.Black), string(games.Green)),
				},
			},
		},
		{
			Name:        "slots",
			Description: "Spin four reels",
			Options:     []*discordgo.ApplicationCommandOption{amountOption(betHelp)},
		},
		{
			Name:        "limbo",
			Description: "Win when the multiplier reaches your target",
			Options: []*discordgo.ApplicationCommandOption{
				amountOption(betHelp),
				{
					Type:        discordgo.ApplicationCommandOptionNumber,
					Name:        "target",
					Description: "Target multiplier (default 2)",
					MinValue:    floatPtr(games.MinLimboTarget),
					MaxValue:    games.MaxLimboTarget,
				},
			},
		},
		{
			Name:        "blackjack",
			Description: "Play a hand of blackjack against the dealer",
			Options:     []*discordgo.ApplicationCommandOption{amountOption(betHelp)},
		},
		{
			Name:        "uncrossable",
			Description: "Cross lanes to double your bet, cash out before you get hit",
			Options: []*discordgo.ApplicationCommandOption{
				amountOption(betHelp),
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "difficulty",
					Description: "How busy the road is (default easy)",
					Choices:     choices(string(games.Easy), string(games.Medium), string(games.Hard)),
				},
			},
		},
		{
			Name:        "rain",
			Description: "Split money between everyone who reacts",
			Options:     []*discordgo.ApplicationCommandOption{amountOption("Amount to rain (250, 10k, half, 25%, all)")},
		},
	}
}

// registerCommands registers all slash commands with Discord, scoped to the
// configured guild when there is one
func (b *Bot) registerCommands() error {
	_, err := b.session.ApplicationCommandBulkOverwrite(b.session.State.User.ID, b.config.GuildID, Commands())
	if err != nil {
		return fmt.Errorf("cannot register commands: %w", err)
	}
	return nil
}
