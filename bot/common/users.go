package common

import (
	"fmt"
	"strconv"

	"lotobot/domain/entities"

	"github.com/bwmarrin/discordgo"
)

// InteractionUser returns the invoking user for both guild and DM interactions
func InteractionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

// InteractionUserID returns the invoking user's id, or "" when unknown
func InteractionUserID(i *discordgo.InteractionCreate) string {
	if u := InteractionUser(i); u != nil {
		return u.ID
	}
	return ""
}

// DisplayName picks the server nickname, then the global name, then the username
func DisplayName(member *discordgo.Member, user *discordgo.User) string {
	if member != nil && member.Nick != "" {
		return member.Nick
	}
	if user == nil {
		return "Unknown"
	}
	if user.GlobalName != "" {
		return user.GlobalName
	}
	return user.Username
}

// ParticipantFromInteraction builds the game participant for the invoking user
func ParticipantFromInteraction(i *discordgo.InteractionCreate) (entities.Participant, error) {
	user := InteractionUser(i)
	if user == nil {
		return entities.Participant{}, fmt.Errorf("interaction has no user")
	}
	id, err := ParseUserID(user.ID)
	if err != nil {
		return entities.Participant{}, fmt.Errorf("invalid user id %q: %w", user.ID, err)
	}
	return entities.Participant{PlayerID: id, Name: DisplayName(i.Member, user)}, nil
}

// ChatID returns the channel the interaction came from; every channel hosts its own game
func ChatID(i *discordgo.InteractionCreate) (int64, error) {
	id, err := strconv.ParseInt(i.ChannelID, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid channel id %q: %w", i.ChannelID, err)
	}
	return id, nil
}

// ParseUserID converts a Discord user ID string to int64
func ParseUserID(userID string) (int64, error) {
	return strconv.ParseInt(userID, 10, 64)
}

// FormatUserID converts an int64 user ID to string
func FormatUserID(userID int64) string {
	return strconv.FormatInt(userID, 10)
}

// GetUserMention returns a Discord mention string for a user
func GetUserMention(userID int64) string {
	return "<@" + FormatUserID(userID) + ">"
}
