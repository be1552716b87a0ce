package road

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"gamblebot/bot/common"
	"gamblebot/games"
	"gamblebot/service"
)

// laneWindow is how many lanes the road drawing shows
const laneWindow = 6

// BuildRoadEmbed draws the chicken's progress and the crossing's state
func BuildRoadEmbed(session *service.RoadSession) *discordgo.MessageEmbed {
	road := session.Road

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("🐔 Uncrossable (%s)", road.Difficulty),
		Color:       common.ColorPrimary,
		Description: DrawRoad(road),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Lanes", Value: fmt.Sprint(road.Position), Inline: true},
			{Name: "Multiplier", Value: common.FormatMultiplier(road.Multiplier()), Inline: true},
			{Name: "Bet", Value: common.FormatMoney(road.Bet), Inline: true},
		},
	}

	switch road.State {
	case games.RoadActive:
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Stake %s · next lane %d%% risk", common.FormatMoney(road.Stake), road.NextCollisionChance()),
		}
		embed.Description += fmt.Sprintf("\nExpires %s", common.FormatDiscordTimestamp(session.Deadline, "R"))
	case games.RoadCrashed:
		embed.Color = common.ColorDanger
		embed.Description += "\n💥 **Hit by a car!**\n" + common.FormatResultLine(road.Payout(), session.Balance)
	case games.RoadCashedOut:
		embed.Color = common.ColorSuccess
		embed.Description += "\n" + common.FormatResultLine(road.Payout(), session.Balance)
	}
	return embed
}

// DrawRoad renders the lanes around the chicken
func DrawRoad(road *games.Road) string {
	start := max(road.Position-laneWindow/2, 0)

	var b strings.Builder
	for lane := start; lane < start+laneWindow; lane++ {
		switch {
		case lane == road.Position && road.State == games.RoadCrashed:
			b.WriteString("💥")
		case lane == road.Position:
			b.WriteString("🐔")
		case lane < road.Position:
			b.WriteString("✅")
		default:
			b.WriteString("⬛")
		}
	}
	return b.String()
}
