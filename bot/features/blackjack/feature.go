package blackjack

import (
	"strings"

	"github.com/bwmarrin/discordgo"

	"gamblebot/service"
)

// Feature serves /blackjack and its buttons
type Feature struct {
	blackjack service.BlackjackService
}

func New(blackjack service.BlackjackService) *Feature {
	return &Feature{blackjack: blackjack}
}

// HandleCommand starts a hand
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleStart(s, i)
}

// HandleInteraction handles the hand's buttons
func (f *Feature) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}
	if strings.HasPrefix(i.MessageComponentData().CustomID, customIDPrefix) {
		f.handleButton(s, i)
	}
}
