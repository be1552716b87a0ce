package casino

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"gamblebot/bot/common"
	"gamblebot/games"
)

// defaultDiceChance is used when /dice is sent without a chance
const defaultDiceChance = 49

// play resolves a game for the invoking user and renders the embed it returns
func (f *Feature) play(s *discordgo.Session, i *discordgo.InteractionCreate, run func(ctx context.Context, userID int64) (*discordgo.MessageEmbed, error)) {
	userID, err := common.ParseUserID(common.InteractionUserID(i))
	if err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "failed to parse user ID"), false)
		return
	}

	embed, err := run(context.Background(), userID)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}
	common.Respond(s, i, embed, nil)
}

func (f *Feature) handleDice(s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := common.CommandOptions(i)
	chance := opts.Float("chance", defaultDiceChance)

	f.play(s, i, func(ctx context.Context, userID int64) (*discordgo.MessageEmbed, error) {
		result, err := f.gambling.PlayDice(ctx, userID, opts.String("amount"), chance)
		if err != nil {
			return nil, err
		}
		return BuildDiceEmbed(result), nil
	})
}

func (f *Feature) handleCoinflip(s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := common.CommandOptions(i)

	f.play(s, i, func(ctx context.Context, userID int64) (*discordgo.MessageEmbed, error) {
		side, err := games.ParseSide(opts.String("side"))
		if err != nil {
			return nil, err
		}
		result, err := f.gambling.PlayCoinflip(ctx, userID, opts.String("amount"), side)
		if err != nil {
			return nil, err
		}
		return BuildCoinflipEmbed(result), nil
	})
}

func (f *Feature) handleRoulette(s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := common.CommandOptions(i)

	f.play(s, i, func(ctx context.Context, userID int64) (*discordgo.MessageEmbed, error) {
		color, err := games.ParseColor(opts.String("color"))
		if err != nil {
			return nil, err
		}
		result, err := f.gambling.PlayRoulette(ctx, userID, opts.String("amount"), color)
		if err != nil {
			return nil, err
		}
		return BuildRouletteEmbed(result), nil
	})
}

func (f *Feature) handleSlots(s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := common.CommandOptions(i)

	f.play(s, i, func(ctx context.Context, userID int64) (*discordgo.MessageEmbed, error) {
		result, err := f.gambling.PlaySlots(ctx, userID, opts.String("amount"))
		if err != nil {
			return nil, err
		}
		return BuildSlotsEmbed(result), nil
	})
}

func (f *Feature) handleLimbo(s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := common.CommandOptions(i)

	f.play(s, i, func(ctx context.Context, userID int64) (*discordgo.MessageEmbed, error) {
		result, err := f.gambling.PlayLimbo(ctx, userID, opts.String("amount"), opts.Float("target", 2))
		if err != nil {
			return nil, err
		}
		return BuildLimboEmbed(result), nil
	})
}
