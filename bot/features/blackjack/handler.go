package blackjack

import (
	"context"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"gamblebot/bot/common"
	"gamblebot/service"
)

func (f *Feature) handleStart(s *discordgo.Session, i *discordgo.InteractionCreate) {
	userID, err := common.ParseUserID(common.InteractionUserID(i))
	if err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "failed to parse user ID"), false)
		return
	}

	f.start(s, i, userID, common.CommandOptions(i).String("amount"))
}

func (f *Feature) start(s *discordgo.Session, i *discordgo.InteractionCreate, userID int64, amountText string) {
	session, err := f.blackjack.Start(context.Background(), userID, amountText)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	log.WithFields(log.Fields{
		"userID":    userID,
		"sessionID": session.ID,
		"stake":     session.InitialStake.String(),
	}).Debug("Blackjack started")

	common.Respond(s, i, BuildHandEmbed(session), BuildComponents(session))
}

func (f *Feature) handleButton(s *discordgo.Session, i *discordgo.InteractionCreate) {
	userID, err := common.ParseUserID(common.InteractionUserID(i))
	if err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "failed to parse user ID"), false)
		return
	}

	action, payload := common.SplitCustomID(i.MessageComponentData().CustomID)

	if action == againAction {
		owner, stake, err := parseAgainPayload(payload)
		if err != nil {
			common.HandleError(s, i, common.NewSystemError(err, "bad play again button"), false)
			return
		}
		if owner != userID {
			common.HandleError(s, i, service.ErrNotSessionOwner, false)
			return
		}
		f.start(s, i, userID, stake)
		return
	}

	engineAction, ok := actionIDs[action]
	if !ok {
		log.Warnf("Unknown blackjack button %q", action)
		return
	}

	session, err := f.blackjack.Apply(context.Background(), payload, userID, engineAction)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	common.Update(s, i, BuildHandEmbed(session), BuildComponents(session))
}
