package common

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatBalance(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		expected string
	}{
		{"small", "999", "999"},
		{"thousands", "1000", "1,000"},
		{"millions", "1234567", "1,234,567"},
		{"decimals", "1234.5", "1,234.5"},
		{"rounded", "0.3333", "0.33"},
		{"trailing zeros", "12.10", "12.1"},
		{"negative", "-2500", "-2,500"},
		{"zero", "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatBalance(decimal.RequireFromString(tt.amount)))
		})
	}
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$1,500", FormatMoney(decimal.NewFromInt(1500)))
	assert.Equal(t, "-$20.5", FormatMoney(decimal.RequireFromString("-20.5")))
}

func TestFormatBalanceCompact(t *testing.T) {
	tests := []struct {
		name     string
		amount   int64
		expected string
	}{
		{"Less than 1k", 999, "999"},
		{"Exactly 1k", 1000, "1k"},
		{"1.5k", 1500, "1.5k"},
		{"213.9k", 213901, "213.9k"},
		{"1M", 1000000, "1M"},
		{"1.5B", 1500000000, "1.5B"},
		{"2T", 2000000000000, "2T"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatBalanceCompact(decimal.NewFromInt(tt.amount)))
		})
	}
}

func TestFormatMultiplier(t *testing.T) {
	assert.Equal(t, "2x", FormatMultiplier(2))
	assert.Equal(t, "1.98x", FormatMultiplier(1.98))
	assert.Equal(t, "3.33x", FormatMultiplier(3.3333))
}

func TestFormatResultLine(t *testing.T) {
	balance := decimal.NewFromInt(1100)

	assert.Contains(t, FormatResultLine(decimal.NewFromInt(100), balance), "You won **$100**")
	assert.Contains(t, FormatResultLine(decimal.Zero, balance), "Push")
	assert.Contains(t, FormatResultLine(decimal.NewFromInt(-100), balance), "You lost **$100**")
}

func TestFormatDiscordTimestamp(t *testing.T) {
	at := time.Unix(1735732800, 0)
	assert.Equal(t, "<t:1735732800:R>", FormatDiscordTimestamp(at, "R"))
}
