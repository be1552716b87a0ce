package common

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"gamblebot/games"
	"gamblebot/gate"
	"gamblebot/service"
)

// BotError represents a structured error with user-facing and internal messages
type BotError struct {
	UserMessage string // Message shown to Discord user
	LogMessage  string // Internal message for logging
	Err         error  // Underlying error
	System      bool   // Unexpected failure rather than a rejected request
}

// Error implements the error interface
func (e *BotError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.LogMessage, e.Err)
	}
	return e.LogMessage
}

// Unwrap returns the underlying error
func (e *BotError) Unwrap() error {
	return e.Err
}

// NewUserError creates an error for user-caused issues (validation, insufficient funds, etc)
func NewUserError(userMessage string, err error) *BotError {
	return &BotError{
		UserMessage: userMessage,
		LogMessage:  "request rejected",
		Err:         err,
	}
}

// NewSystemError creates an error for system issues (database, unexpected state, etc)
func NewSystemError(err error, logMessage string) *BotError {
	return &BotError{
		UserMessage: "Something went wrong. Please try again later.",
		LogMessage:  logMessage,
		Err:         err,
		System:      true,
	}
}

// userFacing are rejections whose own message reads well in chat
var userFacing = []error{
	service.ErrNoFunds,
	service.ErrInsufficientFunds,
	service.ErrNonPositiveAmount,
	service.ErrSelfTip,
	service.ErrNoRakeback,
	service.ErrNotSessionOwner,
	games.ErrInvalidChance,
	games.ErrInvalidSide,
	games.ErrInvalidColor,
	games.ErrInvalidTarget,
	games.ErrInvalidDifficulty,
	games.ErrDoubleDownUnavailable,
	games.ErrRoadOver,
	games.ErrHandOver,
}

// Classify turns a service error into a BotError
func Classify(err error) *BotError {
	var botErr *BotError
	if errors.As(err, &botErr) {
		return botErr
	}

	var cooldown *service.CooldownError
	if errors.As(err, &cooldown) {
		msg := fmt.Sprintf("%s. Try again %s.", capitalize(cooldown.Err.Error()),
			FormatDiscordTimestamp(cooldown.NextAvailable, "R"))
		return NewUserError(msg, err)
	}

	switch {
	case errors.Is(err, service.ErrInvalidAmount):
		return NewUserError("That amount isn't valid. Try a number like `250`, `10k`, `half`, `25%` or `all`.", err)
	case errors.Is(err, service.ErrSessionNotFound), errors.Is(err, service.ErrSessionExpired):
		return NewUserError("This game has expired. Start a new one.", err)
	case errors.Is(err, gate.ErrBusy):
		return NewUserError("You already have an action in progress. Wait for it to finish.", err)
	}

	for _, known := range userFacing {
		if errors.Is(err, known) {
			return NewUserError(capitalize(known.Error())+".", err)
		}
	}

	return NewSystemError(err, "unexpected error")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}

// RespondWithError sends an error message as an interaction response
func RespondWithError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("❌ %s", message),
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Errorf("Error sending error response: %v", err)
	}
}

// FollowUpWithError sends an error message as a follow-up to a deferred interaction
func FollowUpWithError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	_, err := s.FollowupMessageCreate(i.Interaction, false, &discordgo.WebhookParams{
		Content: fmt.Sprintf("❌ %s", message),
		Flags:   discordgo.MessageFlagsEphemeral,
	})
	if err != nil {
		log.Errorf("Error sending follow-up error message: %v", err)
	}
}

// HandleError logs err and tells the user what went wrong
func HandleError(s *discordgo.Session, i *discordgo.InteractionCreate, err error, deferred bool) {
	botErr := Classify(err)

	entry := log.WithFields(log.Fields{
		"user_id":     InteractionUserID(i),
		"interaction": InteractionName(i),
		"error":       botErr.Error(),
	})
	if botErr.System {
		entry.Error(botErr.LogMessage)
	} else {
		entry.Debug(botErr.LogMessage)
	}

	if deferred {
		FollowUpWithError(s, i, botErr.UserMessage)
	} else {
		RespondWithError(s, i, botErr.UserMessage)
	}
}
