package economy

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"gamblebot/bot/common"
	"gamblebot/models"
)

// BuildProfileEmbed shows balance, totals and the latest bets
func BuildProfileEmbed(profile *models.Profile, name string) *discordgo.MessageEmbed {
	entry := profile.Entry
	embed := &discordgo.MessageEmbed{
		Title:     fmt.Sprintf("💰 %s", name),
		Color:     common.ColorPrimary,
		Timestamp: time.Now().Format(time.RFC3339),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Balance", Value: common.FormatMoney(entry.Balance), Inline: true},
			{Name: "Wagered", Value: common.FormatMoney(entry.Wagered), Inline: true},
			{Name: "Net Profit", Value: common.FormatMoney(entry.NetProfit), Inline: true},
		},
	}

	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:  "Recent Bets",
		Value: formatRecentBets(profile.RecentBets, profile.TotalBets),
	})
	return embed
}

func formatRecentBets(bets []*models.BetRecord, total int) string {
	if len(bets) == 0 {
		return "No bets yet"
	}

	lines := make([]string, 0, len(bets)+1)
	for _, bet := range bets {
		lines = append(lines, FormatBetLine(bet))
	}
	if more := total - len(bets); more > 0 {
		lines = append(lines, fmt.Sprintf("... and %d more", more))
	}
	return strings.Join(lines, "\n")
}

// FormatBetLine renders one bet record
func FormatBetLine(bet *models.BetRecord) string {
	if bet.Won() {
		return fmt.Sprintf("🟢 **%s** %s → +%s (%s)", bet.Game, common.FormatMoney(bet.Amount),
			common.FormatMoney(bet.Payout), common.FormatMultiplier(bet.Multiplier))
	}
	return fmt.Sprintf("🔴 **%s** %s", bet.Game, common.FormatMoney(bet.Amount))
}

// BuildRewardEmbed reports a daily or work payout
func BuildRewardEmbed(title, action string, result *models.RewardResult) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: title,
		Color: common.ColorSuccess,
		Description: fmt.Sprintf("%s and earned **%s**.\nBalance: **%s**\nNext claim %s",
			action, common.FormatMoney(result.Amount), common.FormatMoney(result.NewBalance),
			common.FormatDiscordTimestamp(result.NextAvailable, "R")),
	}
}

func BuildTipEmbed(result *models.TipResult, fromID, toID int64) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "🎁 Tip",
		Color: common.ColorSuccess,
		Description: fmt.Sprintf("%s tipped %s **%s**.\nYour balance: **%s**",
			common.GetUserMention(fromID), common.GetUserMention(toID),
			common.FormatMoney(result.Amount), common.FormatMoney(result.SenderBalance)),
	}
}

// BuildLeaderboardEmbed ranks the richest users; nameOf resolves display names
func BuildLeaderboardEmbed(board *models.Leaderboard, nameOf func(userID int64) string) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:     "🏆 Leaderboard 🏆",
		Color:     common.ColorGold,
		Timestamp: time.Now().Format(time.RFC3339),
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Total wagered: %s", common.FormatMoney(board.TotalWagered)),
		},
	}

	if len(board.Entries) == 0 {
		embed.Description = "No players found"
		return embed
	}

	lines := make([]string, 0, len(board.Entries))
	for i, entry := range board.Entries {
		var medal string
		switch i {
		case 0:
			medal = "🥇"
		case 1:
			medal = "🥈"
		case 2:
			medal = "🥉"
		default:
			medal = fmt.Sprintf("%d.", i+1)
		}
		lines = append(lines, fmt.Sprintf("%s **%s** - %s", medal, nameOf(entry.UserID), common.FormatMoney(entry.Balance)))
	}

	embed.Description = strings.Join(lines, "\n")
	return embed
}

func BuildRakebackEmbed(result *models.RakebackClaimResult) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "♻️ Rakeback",
		Color: common.ColorSuccess,
		Description: fmt.Sprintf("You claimed **%s** in rakeback.\nBalance: **%s**",
			common.FormatMoney(result.Amount), common.FormatMoney(result.NewBalance)),
	}
}
