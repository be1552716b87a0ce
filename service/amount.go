package service

import (
	"errors"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrNoFunds           = errors.New("you don't have any money for that")
	ErrInsufficientFunds = errors.New("you don't have that much money")
	ErrNonPositiveAmount = errors.New("amount must be positive")
	ErrInvalidAmount     = errors.New("amount is not a number")
)

var percentPattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)%$`)

var amountSuffixes = map[byte]int32{
	'k': 3,
	'm': 6,
	'b': 9,
	't': 12,
	'q': 15,
	's': 18,
}

// ParseAmount turns user input into a stake against balance. It accepts
// all/max, half (or /2 and /), percentages like 40%, and numbers with an
// optional k/m/b/t/q/s suffix. Commas and dollar signs are ignored.
func ParseAmount(text string, balance decimal.Decimal) (decimal.Decimal, error) {
	if !balance.IsPositive() {
		return decimal.Zero, ErrNoFunds
	}

	arg := strings.ToLower(strings.TrimSpace(text))

	var amount decimal.Decimal
	switch arg {
	case "all", "max":
		amount = balance
	case "half", "/2", "/":
		amount = balance.Div(decimal.NewFromInt(2))
	default:
		if m := percentPattern.FindStringSubmatch(arg); m != nil {
			pct, err := decimal.NewFromString(m[1])
			if err != nil {
				return decimal.Zero, ErrInvalidAmount
			}
			amount = balance.Mul(pct).Div(decimal.NewFromInt(100))
			break
		}

		parsed, err := parseHumanNumber(arg)
		if err != nil {
			return decimal.Zero, err
		}
		amount = parsed
	}

	if !amount.IsPositive() {
		return decimal.Zero, ErrNonPositiveAmount
	}
	if amount.GreaterThan(balance) {
		return decimal.Zero, ErrInsufficientFunds
	}
	return amount, nil
}

func parseHumanNumber(arg string) (decimal.Decimal, error) {
	arg = strings.NewReplacer(",", "", "$", "", " ", "").Replace(arg)
	if arg == "" {
		return decimal.Zero, ErrInvalidAmount
	}

	var exp int32
	if shift, ok := amountSuffixes[arg[len(arg)-1]]; ok {
		exp = shift
		arg = arg[:len(arg)-1]
	}

	n, err := decimal.NewFromString(arg)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return n.Shift(exp), nil
}
