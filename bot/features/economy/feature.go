package economy

import (
	"github.com/bwmarrin/discordgo"

	"gamblebot/bot/common"
	"gamblebot/service"
)

// Feature serves the balance, daily, work, tip, leaderboard and rakeback commands
type Feature struct {
	economy  service.EconomyService
	rakeback service.RakebackService
	names    *common.NameCache
}

func New(economy service.EconomyService, rakeback service.RakebackService, names *common.NameCache) *Feature {
	return &Feature{
		economy:  economy,
		rakeback: rakeback,
		names:    names,
	}
}

// HandleCommand routes an economy slash command
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.ApplicationCommandData().Name {
	case "balance":
		f.handleBalance(s, i)
	case "daily":
		f.handleDaily(s, i)
	case "work":
		f.handleWork(s, i)
	case "tip":
		f.handleTip(s, i)
	case "leaderboard":
		f.handleLeaderboard(s, i)
	case "rakeback":
		f.handleRakeback(s, i)
	}
}
