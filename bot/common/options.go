package common

import (
	"strings"

	"github.com/bwmarrin/discordgo"
)

// Options indexes slash command options by name
type Options map[string]*discordgo.ApplicationCommandInteractionDataOption

// CommandOptions returns the options of the invoked command
func CommandOptions(i *discordgo.InteractionCreate) Options {
	opts := Options{}
	for _, opt := range i.ApplicationCommandData().Options {
		opts[opt.Name] = opt
	}
	return opts
}

func (o Options) String(name string) string {
	if opt, ok := o[name]; ok {
		return strings.TrimSpace(opt.StringValue())
	}
	return ""
}

func (o Options) Int(name string, fallback int64) int64 {
	if opt, ok := o[name]; ok {
		return opt.IntValue()
	}
	return fallback
}

func (o Options) Float(name string, fallback float64) float64 {
	if opt, ok := o[name]; ok {
		return opt.FloatValue()
	}
	return fallback
}

func (o Options) User(s *discordgo.Session, name string) *discordgo.User {
	if opt, ok := o[name]; ok {
		return opt.UserValue(s)
	}
	return nil
}

// SplitCustomID splits "prefix:payload" component IDs
func SplitCustomID(customID string) (action, payload string) {
	action, payload, _ = strings.Cut(customID, ":")
	return action, payload
}
