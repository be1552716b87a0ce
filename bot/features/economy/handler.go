package economy

import (
	"context"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"gamblebot/bot/common"
)

func (f *Feature) handleBalance(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	target := common.InteractionUser(i)
	if user := common.CommandOptions(i).User(s, "user"); user != nil {
		target = user
	}

	userID, err := common.ParseUserID(target.ID)
	if err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "failed to parse user ID"), false)
		return
	}

	profile, err := f.economy.Profile(ctx, userID)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	common.Respond(s, i, BuildProfileEmbed(profile, f.names.DisplayName(i.GuildID, userID)), nil)
}

func (f *Feature) handleDaily(s *discordgo.Session, i *discordgo.InteractionCreate) {
	userID, err := common.ParseUserID(common.InteractionUserID(i))
	if err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "failed to parse user ID"), false)
		return
	}

	result, err := f.economy.Daily(context.Background(), userID)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	common.Respond(s, i, BuildRewardEmbed("📅 Daily Reward", "You claimed your daily reward", result), nil)
}

func (f *Feature) handleWork(s *discordgo.Session, i *discordgo.InteractionCreate) {
	userID, err := common.ParseUserID(common.InteractionUserID(i))
	if err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "failed to parse user ID"), false)
		return
	}

	result, err := f.economy.Work(context.Background(), userID)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	common.Respond(s, i, BuildRewardEmbed("💼 Work", "You worked a shift", result), nil)
}

func (f *Feature) handleTip(s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := common.CommandOptions(i)

	recipient := opts.User(s, "user")
	if recipient == nil {
		common.RespondWithError(s, i, "Invalid recipient user.")
		return
	}
	if recipient.Bot {
		common.RespondWithError(s, i, "Bots don't need money.")
		return
	}

	fromID, err := common.ParseUserID(common.InteractionUserID(i))
	if err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "failed to parse sender ID"), false)
		return
	}
	toID, err := common.ParseUserID(recipient.ID)
	if err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "failed to parse recipient ID"), false)
		return
	}

	result, err := f.economy.Tip(context.Background(), fromID, toID, opts.String("amount"))
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	log.WithFields(log.Fields{
		"from":   fromID,
		"to":     toID,
		"amount": result.Amount.String(),
	}).Info("Tip sent")

	common.Respond(s, i, BuildTipEmbed(result, fromID, toID), nil)
}

func (f *Feature) handleLeaderboard(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if err := common.DeferResponse(s, i, false); err != nil {
		log.Errorf("Error deferring leaderboard response: %v", err)
		return
	}

	board, err := f.economy.Leaderboard(context.Background(), common.LeaderboardSize)
	if err != nil {
		common.HandleError(s, i, err, true)
		return
	}

	embed := BuildLeaderboardEmbed(board, func(userID int64) string {
		return f.names.DisplayName(i.GuildID, userID)
	})
	if err := common.EditWithEmbed(s, i, embed); err != nil {
		log.Errorf("Error sending leaderboard: %v", err)
	}
}

func (f *Feature) handleRakeback(s *discordgo.Session, i *discordgo.InteractionCreate) {
	userID, err := common.ParseUserID(common.InteractionUserID(i))
	if err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "failed to parse user ID"), false)
		return
	}

	result, err := f.rakeback.Claim(context.Background(), userID)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	common.Respond(s, i, BuildRakebackEmbed(result), nil)
}
