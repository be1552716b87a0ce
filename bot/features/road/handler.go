package road

import (
	"context"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"gamblebot/bot/common"
	"gamblebot/games"
	"gamblebot/service"
)

func (f *Feature) handleStart(s *discordgo.Session, i *discordgo.InteractionCreate) {
	userID, err := common.ParseUserID(common.InteractionUserID(i))
	if err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "failed to parse user ID"), false)
		return
	}

	opts := common.CommandOptions(i)
	difficulty := games.Easy
	if text := opts.String("difficulty"); text != "" {
		difficulty, err = games.ParseDifficulty(text)
		if err != nil {
			common.HandleError(s, i, err, false)
			return
		}
	}

	session, err := f.road.Start(context.Background(), userID, opts.String("amount"), difficulty)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	common.Respond(s, i, BuildRoadEmbed(session), BuildComponents(session))
}

func (f *Feature) handleButton(s *discordgo.Session, i *discordgo.InteractionCreate) {
	userID, err := common.ParseUserID(common.InteractionUserID(i))
	if err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "failed to parse user ID"), false)
		return
	}

	action, sessionID := common.SplitCustomID(i.MessageComponentData().CustomID)

	var session *service.RoadSession
	switch action {
	case crossAction:
		session, err = f.road.Cross(context.Background(), sessionID, userID)
	case cashAction:
		session, err = f.road.CashOut(context.Background(), sessionID, userID)
	default:
		log.Warnf("Unknown road button %q", action)
		return
	}
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	common.Update(s, i, BuildRoadEmbed(session), BuildComponents(session))
}
