package models

import "github.com/shopspring/decimal"

// Profile is what the balance command shows
type Profile struct {
	Entry      *LedgerEntry
	RecentBets []*BetRecord
	TotalBets  int
}

// Leaderboard holds the richest users and the economy-wide wagered total
type Leaderboard struct {
	Entries      []*LedgerEntry
	TotalWagered decimal.Decimal
}
