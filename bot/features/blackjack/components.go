package blackjack

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/shopspring/decimal"

	"gamblebot/bot/common"
	"gamblebot/games"
	"gamblebot/service"
)

const (
	customIDPrefix = "bj_"
	againAction    = "bj_again"
)

// actionIDs maps button custom ID actions to engine actions
var actionIDs = map[string]games.Action{
	"bj_hit":    games.ActionHit,
	"bj_stand":  games.ActionStand,
	"bj_double": games.ActionDoubleDown,
}

// BuildComponents returns the buttons for the session's current state
func BuildComponents(session *service.BlackjackSession) []discordgo.MessageComponent {
	if session.Resolved() {
		return buildAgainButton(session.UserID, session.InitialStake, session.Balance)
	}

	buttons := []discordgo.MessageComponent{
		discordgo.Button{
			Label:    "Hit",
			Style:    discordgo.PrimaryButton,
			CustomID: "bj_hit:" + session.ID,
		},
		discordgo.Button{
			Label:    "Stand",
			Style:    discordgo.SecondaryButton,
			CustomID: "bj_stand:" + session.ID,
		},
	}

	if session.Hand.CanDoubleDown() {
		buttons = append(buttons, discordgo.Button{
			Label:    "Double Down",
			Style:    discordgo.SuccessButton,
			CustomID: "bj_double:" + session.ID,
			Disabled: session.Balance.LessThan(session.Hand.Stake),
		})
	}

	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: buttons},
	}
}

// buildAgainButton offers another hand at the same stake when it is affordable
func buildAgainButton(userID int64, stake, balance decimal.Decimal) []discordgo.MessageComponent {
	if balance.LessThan(stake) {
		return nil
	}
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    fmt.Sprintf("🔄 Play Again (%s)", common.FormatMoney(stake)),
					Style:    discordgo.PrimaryButton,
					CustomID: fmt.Sprintf("%s:%d:%s", againAction, userID, stake),
				},
			},
		},
	}
}

// parseAgainPayload splits "<userID>:<stake>"
func parseAgainPayload(payload string) (int64, string, error) {
	owner, stake, ok := strings.Cut(payload, ":")
	if !ok {
		return 0, "", fmt.Errorf("malformed play again payload %q", payload)
	}
	userID, err := common.ParseUserID(owner)
	if err != nil {
		return 0, "", fmt.Errorf("malformed play again owner %q: %w", owner, err)
	}
	return userID, stake, nil
}
