package casino

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"gamblebot/bot/common"
	"gamblebot/games"
	"gamblebot/models"
)

// streakFooterAt is the loss streak length from which dice shows a footer
const streakFooterAt = 5

var colorEmoji = map[games.Color]string{
	games.Red:   "🔴",
	games.Black: "⚫",
	games.Green: "🟢",
}

func resultColor(won bool) int {
	if won {
		return common.ColorSuccess
	}
	return common.ColorDanger
}

func BuildDiceEmbed(result *models.DiceResult) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "🎲 Dice",
		Color: resultColor(result.Won),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Roll", Value: fmt.Sprintf("**%d**", result.Roll), Inline: true},
			{Name: "Needed", Value: "≤ " + strconv.FormatFloat(result.Chance, 'f', -1, 64), Inline: true},
			{Name: "Multiplier", Value: common.FormatMultiplier(result.Multiplier), Inline: true},
		},
		Description: common.FormatResultLine(result.Payout, result.NewBalance),
	}

	if result.LossStreak >= streakFooterAt {
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("You've lost %d dice rolls in a row", result.LossStreak),
		}
	}
	return embed
}

func BuildCoinflipEmbed(result *models.CoinflipResult) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "🪙 Coinflip",
		Color: resultColor(result.Won),
		Description: fmt.Sprintf("You picked **%s**, the coin landed on **%s**.\n%s",
			result.Choice, result.Landed, common.FormatResultLine(result.Payout, result.NewBalance)),
	}
}

func BuildRouletteEmbed(result *models.RouletteResult) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "🎡 Roulette",
		Color: resultColor(result.Won),
		Description: fmt.Sprintf("You bet on %s **%s**, the ball landed on %s **%d**.\n%s",
			colorEmoji[result.Choice], result.Choice, colorEmoji[result.Color], result.Landing,
			common.FormatResultLine(result.Payout, result.NewBalance)),
	}
}

func BuildSlotsEmbed(result *models.SlotsResult) *discordgo.MessageEmbed {
	won := result.Multiplier > 0
	reels := "| " + strings.Join(result.Symbols[:], " | ") + " |"

	desc := reels + "\n"
	if won {
		desc += fmt.Sprintf("Matched for **%dx**\n", result.Multiplier)
	}
	desc += common.FormatResultLine(result.Payout, result.NewBalance)

	return &discordgo.MessageEmbed{
		Title:       "🎰 Slots",
		Color:       resultColor(won),
		Description: desc,
	}
}

func BuildLimboEmbed(result *models.LimboResult) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "🚀 Limbo",
		Color: resultColor(result.Won),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Target", Value: common.FormatMultiplier(result.Target), Inline: true},
			{Name: "Result", Value: common.FormatMultiplier(result.Result), Inline: true},
		},
		Description: common.FormatResultLine(result.Payout, result.NewBalance),
	}
}
