package rain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"gamblebot/bot/common"
	"gamblebot/gate"
	"gamblebot/models"
)

// reactionPage is the most users Discord returns per reactions request
const reactionPage = 100

func (f *Feature) handleRain(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	hostID, err := common.ParseUserID(common.InteractionUserID(i))
	if err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "failed to parse user ID"), false)
		return
	}
	channelID, err := common.ParseID(i.ChannelID)
	if err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "failed to parse channel ID"), false)
		return
	}

	release, err := f.gate.Acquire(ctx, gate.ChannelKey(channelID))
	if errors.Is(err, gate.ErrBusy) {
		common.RespondWithError(s, i, "It's already raining in this channel. Wait for it to end.")
		return
	}
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	amount, err := f.rain.Start(ctx, hostID, common.CommandOptions(i).String("amount"))
	if err != nil {
		release()
		common.HandleError(s, i, err, false)
		return
	}

	if err := common.RespondWithEmbed(s, i, BuildStartEmbed(hostID, amount, f.window.Seconds()), nil, false); err != nil {
		log.WithError(err).Error("Error announcing rain")
	}

	msg, err := s.InteractionResponse(i.Interaction)
	if err != nil {
		log.WithError(err).WithField("amount", amount.String()).Error("Failed to fetch rain message, rain abandoned")
		release()
		return
	}
	if err := s.MessageReactionAdd(msg.ChannelID, msg.ID, common.RainEmoji); err != nil {
		log.WithError(err).Warn("Failed to seed rain reaction")
	}

	go func() {
		defer release()
		f.collect(s, i, msg, hostID, channelID, amount)
	}()
}

// collect waits out the window, pays the reactors and edits the announcement
func (f *Feature) collect(s *discordgo.Session, i *discordgo.InteractionCreate, msg *discordgo.Message, hostID, channelID int64, amount decimal.Decimal) {
	ctx, cancel := context.WithTimeout(context.Background(), f.window+time.Minute)
	defer cancel()

	select {
	case <-time.After(f.window):
	case <-ctx.Done():
		return
	}

	users, err := f.reactors(s, msg)
	if err != nil {
		log.WithError(err).WithField("messageID", msg.ID).Error("Failed to read rain reactions")
	}

	result, err := f.rain.Distribute(ctx, hostID, channelID, amount, Participants(users))
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"hostID": hostID,
			"amount": amount.String(),
		}).Error("Failed to distribute rain")
		return
	}

	embed := BuildResultEmbed(result, func(userID int64) string {
		return f.names.DisplayName(i.GuildID, userID)
	})
	if err := common.EditWithEmbed(s, i, embed); err != nil {
		log.WithError(err).Error("Failed to post rain result")
	}
}

func (f *Feature) reactors(s *discordgo.Session, msg *discordgo.Message) ([]*discordgo.User, error) {
	var all []*discordgo.User
	after := ""
	for {
		page, err := s.MessageReactions(msg.ChannelID, msg.ID, common.RainEmoji, reactionPage, "", after)
		if err != nil {
			return all, err
		}
		all = append(all, page...)
		if len(page) < reactionPage {
			return all, nil
		}
		after = page[len(page)-1].ID
	}
}

// Participants returns the IDs of human reactors
func Participants(users []*discordgo.User) []int64 {
	ids := make([]int64, 0, len(users))
	for _, u := range users {
		if u == nil || u.Bot {
			continue
		}
		id, err := common.ParseUserID(u.ID)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

func BuildStartEmbed(hostID int64, amount decimal.Decimal, seconds float64) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "🌧️ Rain",
		Color: common.ColorInfo,
		Description: fmt.Sprintf("%s is making it rain **%s**!\nReact with %s in the next %.0f seconds to get a share.",
			common.GetUserMention(hostID), common.FormatMoney(amount), common.RainEmoji, seconds),
	}
}

// BuildResultEmbed lists who got paid; nameOf resolves display names
func BuildResultEmbed(result *models.RainResult, nameOf func(userID int64) string) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "🌧️ Rain Over",
		Color: common.ColorSuccess,
	}

	if len(result.Participants) == 0 {
		embed.Color = common.ColorWarning
		embed.Description = fmt.Sprintf("Nobody caught any of the **%s**.", common.FormatMoney(result.Amount))
		return embed
	}

	names := make([]string, len(result.Participants))
	for i, id := range result.Participants {
		names[i] = nameOf(id)
	}
	embed.Description = fmt.Sprintf("**%s** split between %d users, **%s** each:\n%s",
		common.FormatMoney(result.Amount), len(result.Participants), common.FormatMoney(result.Share),
		strings.Join(names, ", "))
	return embed
}
