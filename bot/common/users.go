package common

import (
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"
	lru "github.com/hashicorp/golang-lru"
)

// GetDisplayName returns the server-specific display name for a user
// Falls back to username if nickname is not set or if there's an error
func GetDisplayName(s *discordgo.Session, guildID, userID string) string {
	if guildID != "" {
		member, err := s.GuildMember(guildID, userID)
		if err == nil && member != nil && member.User != nil {
			return member.DisplayName()
		}
	}

	user, err := s.User(userID)
	if err == nil && user != nil {
		if user.GlobalName != "" {
			return user.GlobalName
		}
		return user.Username
	}

	return "Unknown"
}

// NameCache memoizes display names for leaderboards and rain summaries,
// which would otherwise cost one API call per listed user
type NameCache struct {
	cache  *lru.Cache
	lookup func(guildID, userID string) string
}

// NewNameCache creates a cache of at most size names resolved through s
func NewNameCache(s *discordgo.Session, size int) (*NameCache, error) {
	return newNameCache(func(guildID, userID string) string {
		return GetDisplayName(s, guildID, userID)
	}, size)
}

func newNameCache(lookup func(guildID, userID string) string, size int) (*NameCache, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &NameCache{cache: cache, lookup: lookup}, nil
}

// DisplayName returns the cached name for userID in guildID, resolving it on a miss
func (c *NameCache) DisplayName(guildID string, userID int64) string {
	key := guildID + ":" + FormatUserID(userID)
	if name, ok := c.cache.Get(key); ok {
		return name.(string)
	}

	name := c.lookup(guildID, FormatUserID(userID))
	if name != "Unknown" {
		c.cache.Add(key, name)
	}
	return name
}

// ParseUserID converts a Discord user ID string to int64
func ParseUserID(userID string) (int64, error) {
	return ParseID(userID)
}

// ParseID converts any Discord snowflake to int64
func ParseID(id string) (int64, error) {
	return strconv.ParseInt(id, 10, 64)
}

// FormatUserID converts an int64 user ID to string
func FormatUserID(userID int64) string {
	return strconv.FormatInt(userID, 10)
}

// GetUserMention returns a Discord mention string for a user
func GetUserMention(userID int64) string {
	return "<@" + FormatUserID(userID) + ">"
}

// InteractionUser returns whoever triggered i, in a guild or a DM
func InteractionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

// InteractionUserID is the raw Discord ID of whoever triggered i
func InteractionUserID(i *discordgo.InteractionCreate) string {
	if user := InteractionUser(i); user != nil {
		return user.ID
	}
	return ""
}

// InteractionName identifies a command or component for logging
func InteractionName(i *discordgo.InteractionCreate) string {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		return i.ApplicationCommandData().Name
	case discordgo.InteractionMessageComponent:
		return i.MessageComponentData().CustomID
	default:
		return fmt.Sprint(i.Type)
	}
}
