package observability

const MetricPrefix = "gamblebot"

// Metric names
const (
	BetsTotal   = MetricPrefix + ".bets.total"
	BetsWagered = MetricPrefix + ".bets.wagered"
	BetsPayout  = MetricPrefix + ".bets.payout"

	BalanceChangesTotal = MetricPrefix + ".balance.changes_total"

	RakebackClaimed  = MetricPrefix + ".rakeback.claimed"
	RainDistributed  = MetricPrefix + ".rain.distributed"
	RainParticipants = MetricPrefix + ".rain.participants"

	SessionsActive = MetricPrefix + ".sessions.active"
)

// Label keys
const (
	LabelGame    = "game"
	LabelOutcome = "outcome"
	LabelReason  = "reason"
)

// Bet outcomes
const (
	OutcomeWin  = "win"
	OutcomeLoss = "loss"
)
