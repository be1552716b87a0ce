package bot

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
)

func TestCommands(t *testing.T) {
	seen := map[string]bool{}
	for _, cmd := range Commands() {
		assert.False(t, seen[cmd.Name], "duplicate command %s", cmd.Name)
		seen[cmd.Name] = true
		assert.NotEmpty(t, cmd.Description, cmd.Name)

		// Discord rejects required options after optional ones
		optional := false
		for _, opt := range cmd.Options {
			if !opt.Required {
				optional = true
			} else {
				assert.False(t, optional, "%s: required option %s after optional", cmd.Name, opt.Name)
			}
		}
	}

	for _, name := range []string{
		"balance", "daily", "work", "tip", "leaderboard", "rakeback", "dice",
		"coinflip", "roulette", "slots", "limbo", "blackjack", "uncrossable", "rain",
	} {
		assert.True(t, seen[name], "missing command %s", name)
	}
}

func TestCommands_AmountIsFreeText(t *testing.T) {
	for _, cmd := range Commands() {
		for _, opt := range cmd.Options {
			if opt.Name == "amount" {
				assert.Equal(t, discordgo.ApplicationCommandOptionString, opt.Type, cmd.Name)
			}
		}
	}
}

func TestCommands_DiceChanceIsNumber(t *testing.T) {
	for _, cmd := range Commands() {
		if cmd.Name != "dice" {
			continue
		}
		for _, opt := range cmd.Options {
			if opt.Name == "chance" {
				assert.Equal(t, discordgo.ApplicationCommandOptionNumber, opt.Type)
				assert.Equal(t, 98.0, opt.MaxValue)
				return
			}
		}
	}
	t.Fatal("dice has no chance option")
}
