package rain

import (
	"time"

	"github.com/bwmarrin/discordgo"

	"gamblebot/bot/common"
	"gamblebot/gate"
	"gamblebot/service"
)

// Feature serves /rain: the host's amount is split among everyone who
// reacts within the window
type Feature struct {
	rain   service.RainService
	gate   gate.Gate
	window time.Duration
	names  *common.NameCache
}

func New(rain service.RainService, g gate.Gate, window time.Duration, names *common.NameCache) *Feature {
	return &Feature{
		rain:   rain,
		gate:   g,
		window: window,
		names:  names,
	}
}

func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleRain(s, i)
}
