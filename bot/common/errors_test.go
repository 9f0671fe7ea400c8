package common

import (
	"errors"
	"fmt"
	"testing"

	"lotobot/domain/entities"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromDomainError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		err       error
		kind      entities.ErrorKind
		message   string
		ephemeral bool
	}{
		{
			name:      "permission",
			err:       entities.NewGameError(entities.KindPermission, "only the host can draw"),
			kind:      entities.KindPermission,
			message:   "Not allowed: only the host can draw",
			ephemeral: true,
		},
		{
			name:      "wrapped rate limit",
			err:       fmt.Errorf("draw: %w", entities.NewGameError(entities.KindRateLimited, "try again in 2s")),
			kind:      entities.KindRateLimited,
			message:   "Slow down: try again in 2s",
			ephemeral: true,
		},
		{
			name:      "expired",
			err:       entities.NewGameError(entities.KindExpired, "the game expired"),
			kind:      entities.KindExpired,
			message:   "Game expired: the game expired",
			ephemeral: true,
		},
		{
			name:      "bare sentinel",
			err:       entities.ErrPoolExhausted,
			kind:      entities.KindPoolExhausted,
			message:   "All numbers drawn",
			ephemeral: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			botErr := FromDomainError(tt.err, "game_draw")
			assert.Equal(t, tt.kind, botErr.Kind)
			assert.Equal(t, tt.message, botErr.UserMessage)
			assert.Equal(t, tt.ephemeral, botErr.Ephemeral)
			assert.False(t, botErr.IsSystem())
			assert.ErrorIs(t, botErr, tt.err)
		})
	}
}

func TestFromDomainError_SystemError(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection reset")
	botErr := FromDomainError(fmt.Errorf("failed to begin transaction: %w", cause), "game_end")

	assert.True(t, botErr.IsSystem())
	assert.Equal(t, genericErrorMessage, botErr.UserMessage)
	assert.ErrorIs(t, botErr, cause)
	assert.Contains(t, botErr.Error(), "game_end failed")
}

func TestFromDomainError_PassesBotErrorThrough(t *testing.T) {
	t.Parallel()

	original := NewUserError("Pick a number", "missing option")
	assert.Same(t, original, FromDomainError(fmt.Errorf("wrapped: %w", original), "check"))
}

func TestKindPrefixesCoverEveryKind(t *testing.T) {
	t.Parallel()

	kinds := []entities.ErrorKind{
		entities.KindValidation, entities.KindConflict, entities.KindPrecondition,
		entities.KindPermission, entities.KindNotFound, entities.KindPoolExhausted,
		entities.KindExpired, entities.KindNotStarted, entities.KindAlreadyStarted,
		entities.KindTicketTaken, entities.KindInvalidCode, entities.KindGameStarted,
		entities.KindHostCannotLeave, entities.KindRateLimited,
	}
	for _, kind := range kinds {
		assert.Contains(t, kindPrefixes, kind)
	}
}

func TestParticipantFromInteraction(t *testing.T) {
	t.Parallel()

	guild := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		ChannelID: "123",
		Member: &discordgo.Member{
			Nick: "Lucky",
			User: &discordgo.User{ID: "42", Username: "lucky42", GlobalName: "Lucky Luke"},
		},
	}}
	p, err := ParticipantFromInteraction(guild)
	require.NoError(t, err)
	assert.Equal(t, entities.Participant{PlayerID: 42, Name: "Lucky"}, p)

	chatID, err := ChatID(guild)
	require.NoError(t, err)
	assert.Equal(t, int64(123), chatID)

	dm := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		User: &discordgo.User{ID: "7", Username: "seven"},
	}}
	p, err = ParticipantFromInteraction(dm)
	require.NoError(t, err)
	assert.Equal(t, entities.Participant{PlayerID: 7, Name: "seven"}, p)

	_, err = ChatID(dm)
	assert.Error(t, err)

	_, err = ParticipantFromInteraction(&discordgo.InteractionCreate{Interaction: &discordgo.Interaction{}})
	assert.Error(t, err)
}
