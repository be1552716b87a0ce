package rain

import (
	"fmt"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"gamblebot/models"
)

func TestParticipants(t *testing.T) {
	users := []*discordgo.User{
		{ID: "1"},
		{ID: "2", Bot: true},
		nil,
		{ID: "garbage"},
		{ID: "3"},
	}

	assert.Equal(t, []int64{1, 3}, Participants(users))
}

func TestBuildResultEmbed(t *testing.T) {
	result := &models.RainResult{
		HostID:       9,
		Amount:       decimal.NewFromInt(10),
		Participants: []int64{1, 2, 3},
		Share:        decimal.RequireFromString("3.3333"),
	}

	embed := BuildResultEmbed(result, func(id int64) string { return fmt.Sprintf("u%d", id) })

	assert.Contains(t, embed.Description, "**$10** split between 3 users, **$3.33** each")
	assert.Contains(t, embed.Description, "u1, u2, u3")
}

func TestBuildResultEmbed_NoParticipants(t *testing.T) {
	embed := BuildResultEmbed(&models.RainResult{Amount: decimal.NewFromInt(50)}, nil)

	assert.Contains(t, embed.Description, "Nobody caught any of the **$50**")
}
