package common

// Discord color constants
const (
	ColorPrimary = 0x5865F2 // Discord blurple
	ColorSuccess = 0x57F287 // Green
	ColorDanger  = 0xED4245 // Red
	ColorWarning = 0xFEE75C // Yellow
	ColorInfo    = 0x3498DB // Blue
	ColorGold    = 0xF1C40F
)

// Currency symbol shown in front of amounts
const Currency = "$"

// RainEmoji is the reaction users add to join a rain
const RainEmoji = "💸"

// UI constants
const (
	MaxButtonsPerRow = 5
	LeaderboardSize  = 10
)
