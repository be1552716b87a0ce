package common

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FormatBalance formats an amount with thousand separators and at most two
// decimals, dropping trailing zeros
func FormatBalance(amount decimal.Decimal) string {
	str := amount.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(str, ".")
	frac = strings.TrimRight(frac, "0")

	var result strings.Builder
	if amount.LessThan(decimal.Zero) && str != "0.00" {
		result.WriteByte('-')
	}

	n := len(whole)
	for i, digit := range whole {
		if i > 0 && (n-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(digit)
	}

	if frac != "" {
		result.WriteByte('.')
		result.WriteString(frac)
	}
	return result.String()
}

// FormatMoney prefixes FormatBalance with the currency symbol
func FormatMoney(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return "-" + Currency + FormatBalance(amount.Abs())
	}
	return Currency + FormatBalance(amount)
}

// FormatBalanceCompact formats an amount in compact form (e.g. 100k, 1.5M)
func FormatBalanceCompact(amount decimal.Decimal) string {
	units := []struct {
		shift  int32
		suffix string
	}{
		{12, "T"},
		{9, "B"},
		{6, "M"},
		{3, "k"},
	}

	abs := amount.Abs()
	for _, u := range units {
		if abs.GreaterThanOrEqual(decimal.New(1, u.shift)) {
			scaled := amount.Shift(-u.shift).RoundDown(1)
			return scaled.String() + u.suffix
		}
	}
	return amount.RoundDown(2).String()
}

// FormatMultiplier renders a multiplier like 2x or 1.98x
func FormatMultiplier(m float64) string {
	return decimal.NewFromFloat(m).Round(2).String() + "x"
}

// FormatDiscordTimestamp formats a time as a Discord timestamp that displays in user's local timezone
// Format types: "t" = short time, "T" = long time, "d" = short date, "D" = long date,
// "f" = short date/time, "F" = long date/time, "R" = relative time
func FormatDiscordTimestamp(t time.Time, format string) string {
	return fmt.Sprintf("<t:%d:%s>", t.Unix(), format)
}

// FormatResultLine is the one-line summary shown under every settled wager
func FormatResultLine(payout, newBalance decimal.Decimal) string {
	switch {
	case payout.IsPositive():
		return fmt.Sprintf("🎉 You won **%s**. Balance: **%s**", FormatMoney(payout), FormatMoney(newBalance))
	case payout.IsZero():
		return fmt.Sprintf("🤝 Push, your stake is back. Balance: **%s**", FormatMoney(newBalance))
	default:
		return fmt.Sprintf("😔 You lost **%s**. Balance: **%s**", FormatMoney(payout.Abs()), FormatMoney(newBalance))
	}
}
