package announcements

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"gamblebot/bot/common"
	"gamblebot/events"
)

// poster is the part of the Discord session announcements need
type poster interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Feature posts big wins to a channel
type Feature struct {
	poster     poster
	channelID  string
	multiplier decimal.Decimal
}

func New(p poster, channelID string, multiplier float64) *Feature {
	return &Feature{
		poster:     p,
		channelID:  channelID,
		multiplier: decimal.NewFromFloat(multiplier),
	}
}

// Subscribe registers the big win handler. It does nothing without a channel.
func (f *Feature) Subscribe(bus *events.Bus) {
	if f.channelID == "" {
		log.Info("Big win announcements disabled")
		return
	}
	bus.Subscribe(events.EventTypeBetPlaced, f.handleBetPlaced)
}

func (f *Feature) handleBetPlaced(_ context.Context, event events.Event) {
	bet, ok := event.(events.BetPlacedEvent)
	if !ok || !f.IsBigWin(bet) {
		return
	}

	if _, err := f.poster.ChannelMessageSendEmbed(f.channelID, BuildBigWinEmbed(bet)); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"userID": bet.UserID,
			"betID":  bet.BetID,
		}).Error("Failed to announce big win")
	}
}

// IsBigWin reports whether the payout reaches the configured multiple of the stake
func (f *Feature) IsBigWin(bet events.BetPlacedEvent) bool {
	if !bet.Payout.IsPositive() {
		return false
	}
	return bet.Payout.GreaterThanOrEqual(bet.Amount.Mul(f.multiplier))
}

func BuildBigWinEmbed(bet events.BetPlacedEvent) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "🎉 Big Win!",
		Color: common.ColorGold,
		Description: fmt.Sprintf("%s won **%s** on **%s** with a %s bet (%s).",
			common.GetUserMention(bet.UserID), common.FormatMoney(bet.Payout), bet.Game,
			common.FormatMoney(bet.Amount), common.FormatMultiplier(bet.Multiplier)),
	}
}
