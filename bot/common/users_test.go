package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNameCache(t *testing.T) {
	calls := map[string]int{}
	cache, err := newNameCache(func(guildID, userID string) string {
		calls[userID]++
		if userID == "3" {
			return "Unknown"
		}
		return "user-" + userID
	}, 2)
	require.NoError(t, err)

	assert.Equal(t, "user-1", cache.DisplayName("g", 1))
	assert.Equal(t, "user-1", cache.DisplayName("g", 1))
	assert.Equal(t, 1, calls["1"])

	// Unresolved names are retried
	cache.DisplayName("g", 3)
	cache.DisplayName("g", 3)
	assert.Equal(t, 2, calls["3"])

	// Oldest entry is evicted past capacity
	cache.DisplayName("g", 2)
	cache.DisplayName("g", 4)
	cache.DisplayName("g", 1)
	assert.Equal(t, 2, calls["1"])
}

func TestUserIDs(t *testing.T) {
	id, err := ParseUserID("123456789012345678")
	require.NoError(t, err)
	assert.Equal(t, int64(123456789012345678), id)
	assert.Equal(t, "<@123456789012345678>", GetUserMention(id))

	_, err = ParseUserID("not-a-snowflake")
	assert.Error(t, err)
}
