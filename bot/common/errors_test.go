package common

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"gamblebot/games"
	"gamblebot/gate"
	"gamblebot/service"
)

func TestClassify_UserErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		contains string
	}{
		{"insufficient funds", service.ErrInsufficientFunds, "You don't have that much money."},
		{"invalid amount", service.ErrInvalidAmount, "`half`"},
		{"expired session", service.ErrSessionExpired, "expired"},
		{"busy gate", gate.ErrBusy, "already have an action"},
		{"engine validation", games.ErrInvalidChance, "Chance must be between 1 and 98."},
		{"wrapped", fmt.Errorf("play: %w", games.ErrInvalidColor), "Color must be"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			botErr := Classify(tt.err)
			assert.False(t, botErr.System)
			assert.Contains(t, botErr.UserMessage, tt.contains)
			assert.ErrorIs(t, botErr, tt.err)
		})
	}
}

func TestClassify_Cooldown(t *testing.T) {
	next := time.Unix(1735732800, 0)
	err := &service.CooldownError{Err: service.ErrDailyCooldown, NextAvailable: next}

	botErr := Classify(err)

	assert.False(t, botErr.System)
	assert.Equal(t, "Daily reward already claimed. Try again <t:1735732800:R>.", botErr.UserMessage)
}

func TestClassify_SystemError(t *testing.T) {
	cause := errors.New("connection refused")

	botErr := Classify(fmt.Errorf("failed to get ledger: %w", cause))

	assert.True(t, botErr.System)
	assert.Equal(t, "Something went wrong. Please try again later.", botErr.UserMessage)
	assert.ErrorIs(t, botErr, cause)
}

func TestClassify_KeepsBotError(t *testing.T) {
	original := NewUserError("Pick someone else.", nil)
	assert.Same(t, original, Classify(original))
}
