package road

import (
	"strings"

	"github.com/bwmarrin/discordgo"

	"gamblebot/service"
)

// Feature serves /uncrossable and its buttons
type Feature struct {
	road service.RoadService
}

func New(road service.RoadService) *Feature {
	return &Feature{road: road}
}

func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleStart(s, i)
}

func (f *Feature) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}
	if strings.HasPrefix(i.MessageComponentData().CustomID, customIDPrefix) {
		f.handleButton(s, i)
	}
}
