package blackjack

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"gamblebot/bot/common"
	"gamblebot/games"
	"gamblebot/service"
)

const hiddenCard = "🂠"

// BuildHandEmbed renders both hands, hiding the dealer's hole card while the
// player is still acting
func BuildHandEmbed(session *service.BlackjackSession) *discordgo.MessageEmbed {
	hand := session.Hand

	dealer := formatCards(hand.Dealer)
	dealerScore := fmt.Sprint(games.Score(hand.Dealer))
	if !session.Resolved() && len(hand.Dealer) > 1 {
		dealer = hand.Dealer[0].String() + " " + hiddenCard
		dealerScore = fmt.Sprint(games.Score(hand.Dealer[:1]))
	}

	embed := &discordgo.MessageEmbed{
		Title: "🃏 Blackjack",
		Color: common.ColorPrimary,
		Fields: []*discordgo.MessageEmbedField{
			{Name: fmt.Sprintf("Your Hand (%d)", games.Score(hand.Player)), Value: formatCards(hand.Player), Inline: true},
			{Name: fmt.Sprintf("Dealer (%s)", dealerScore), Value: dealer, Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Stake: %s", common.FormatMoney(hand.Stake)),
		},
	}

	if !session.Resolved() {
		embed.Description = fmt.Sprintf("Hit, stand or double down. Expires %s",
			common.FormatDiscordTimestamp(session.Deadline, "R"))
		return embed
	}

	embed.Description = outcomeLine(hand) + "\n" + common.FormatResultLine(hand.Payout(), session.Balance)
	switch hand.Outcome {
	case games.OutcomePlayerWin:
		embed.Color = common.ColorSuccess
	case games.OutcomeDealerWin:
		embed.Color = common.ColorDanger
	default:
		embed.Color = common.ColorWarning
	}
	return embed
}

func outcomeLine(hand *games.Blackjack) string {
	player, dealer := games.Score(hand.Player), games.Score(hand.Dealer)
	switch {
	case hand.Outcome == games.OutcomePlayerWin && games.IsNatural(hand.Player):
		return "**Blackjack!**"
	case hand.Outcome == games.OutcomeDealerWin && games.IsNatural(hand.Dealer):
		return "**Dealer has blackjack.**"
	case player > 21:
		return "**Bust!**"
	case dealer > 21:
		return "**Dealer busts!**"
	case hand.Outcome == games.OutcomePush:
		return "**Push.**"
	case hand.Outcome == games.OutcomePlayerWin:
		return "**You beat the dealer.**"
	default:
		return "**Dealer wins.**"
	}
}

func formatCards(cards []games.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
