package casino

import (
	"github.com/bwmarrin/discordgo"

	"gamblebot/service"
)

// Feature serves the single-shot games: dice, coinflip, roulette, slots and limbo
type Feature struct {
	gambling service.GamblingService
}

func New(gambling service.GamblingService) *Feature {
	return &Feature{gambling: gambling}
}

// HandleCommand routes a game slash command
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.ApplicationCommandData().Name {
	case "dice":
		f.handleDice(s, i)
	case "coinflip":
		f.handleCoinflip(s, i)
	case "roulette":
		f.handleRoulette(s, i)
	case "slots":
		f.handleSlots(s, i)
	case "limbo":
		f.handleLimbo(s, i)
	}
}
