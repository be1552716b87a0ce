package road

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"gamblebot/bot/common"
	"gamblebot/service"
)

const (
	customIDPrefix = "road_"
	crossAction    = "road_cross"
	cashAction     = "road_cash"
)

// BuildComponents returns cross / cash out buttons while the crossing is live
func BuildComponents(session *service.RoadSession) []discordgo.MessageComponent {
	if session.Over() {
		return nil
	}

	road := session.Road
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    fmt.Sprintf("🐔 Cross (%d%% risk)", road.NextCollisionChance()),
					Style:    discordgo.PrimaryButton,
					CustomID: crossAction + ":" + session.ID,
				},
				discordgo.Button{
					Label:    fmt.Sprintf("💰 Cash Out (%s)", common.FormatMoney(road.Bet)),
					Style:    discordgo.SuccessButton,
					CustomID: cashAction + ":" + session.ID,
				},
			},
		},
	}
}
