package common

import (
	"errors"
	"fmt"

	"lotobot/domain/entities"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

const genericErrorMessage = "Something went wrong. Please try again later."

// BotError represents a structured error with user-facing and internal messages
type BotError struct {
	UserMessage string             // Message shown to Discord user
	LogMessage  string             // Internal message for logging
	Ephemeral   bool               // Whether the error message should be ephemeral
	Kind        entities.ErrorKind // Domain error kind, empty for system errors
	Err         error              // Underlying error
	Context     interface{}        // Additional context for logging
}

// Error implements the error interface
func (e *BotError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.LogMessage, e.Err)
	}
	return e.LogMessage
}

// Unwrap returns the underlying error
func (e *BotError) Unwrap() error {
	return e.Err
}

// IsSystem reports whether the error is not a recoverable game error
func (e *BotError) IsSystem() bool {
	return e.Kind == ""
}

// NewUserError creates an error for user-caused issues (bad input, wrong state, etc)
func NewUserError(userMessage string, logMessage string) *BotError {
	return &BotError{
		UserMessage: userMessage,
		LogMessage:  logMessage,
		Ephemeral:   true,
	}
}

// NewSystemError creates an error for system issues (database, unexpected state, etc)
func NewSystemError(err error, logMessage string) *BotError {
	return &BotError{
		UserMessage: genericErrorMessage,
		LogMessage:  logMessage,
		Ephemeral:   true,
		Err:         err,
	}
}

// kindPrefixes gives every game error kind a stable message category
var kindPrefixes = map[entities.ErrorKind]string{
	entities.KindValidation:      "Invalid input",
	entities.KindConflict:        "Not possible right now",
	entities.KindPrecondition:    "Not ready",
	entities.KindPermission:      "Not allowed",
	entities.KindNotFound:        "Nothing here",
	entities.KindPoolExhausted:   "All numbers drawn",
	entities.KindExpired:         "Game expired",
	entities.KindNotStarted:      "Game not started",
	entities.KindAlreadyStarted:  "Game already started",
	entities.KindTicketTaken:     "Ticket taken",
	entities.KindInvalidCode:     "Unknown ticket",
	entities.KindGameStarted:     "Game in progress",
	entities.KindHostCannotLeave: "Host keeps their ticket",
	entities.KindRateLimited:     "Slow down",
}

// FromDomainError converts an error returned by the game controller into a BotError.
// Game errors keep their message; anything else becomes a system error.
func FromDomainError(err error, operation string) *BotError {
	var botErr *BotError
	if errors.As(err, &botErr) {
		return botErr
	}

	var gameErr *entities.GameError
	if !errors.As(err, &gameErr) {
		return NewSystemError(err, fmt.Sprintf("%s failed", operation))
	}

	prefix, ok := kindPrefixes[gameErr.Kind]
	if !ok {
		prefix = "Cannot do that"
	}
	message := prefix
	if gameErr.Message != "" {
		message = fmt.Sprintf("%s: %s", prefix, gameErr.Message)
	}

	return &BotError{
		UserMessage: message,
		LogMessage:  fmt.Sprintf("%s rejected", operation),
		Ephemeral:   true,
		Kind:        gameErr.Kind,
		Err:         err,
	}
}

// RespondWithError sends an error message as an interaction response
func RespondWithError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	respondError(s, i, message, true)
}

func respondError(s *discordgo.Session, i *discordgo.InteractionCreate, message string, ephemeral bool) {
	data := &discordgo.InteractionResponseData{
		Content: fmt.Sprintf("❌ %s", message),
	}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		log.Errorf("Error sending error response: %v", err)
	}
}

// FollowUpWithError sends an error message as a follow-up to a deferred interaction
func FollowUpWithError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	_, err := s.FollowupMessageCreate(i.Interaction, false, &discordgo.WebhookParams{
		Content: fmt.Sprintf("❌ %s", message),
		Flags:   discordgo.MessageFlagsEphemeral,
	})
	if err != nil {
		log.Errorf("Error sending follow-up error message: %v", err)
	}
}

// HandleError logs err and responds to the interaction with a user-safe message
func HandleError(s *discordgo.Session, i *discordgo.InteractionCreate, err error, deferred bool) {
	command := ""
	if i.Type == discordgo.InteractionApplicationCommand {
		command = i.ApplicationCommandData().Name
	}
	botErr := FromDomainError(err, command)

	fields := log.Fields{
		"user_id":      InteractionUserID(i),
		"channel_id":   i.ChannelID,
		"command":      command,
		"error":        botErr.Error(),
		"user_message": botErr.UserMessage,
	}
	if botErr.Context != nil {
		fields["context"] = botErr.Context
	}

	if botErr.IsSystem() {
		log.WithFields(fields).Error(botErr.LogMessage)
	} else {
		log.WithFields(fields).Debug(botErr.LogMessage)
	}

	if deferred {
		FollowUpWithError(s, i, botErr.UserMessage)
	} else {
		respondError(s, i, botErr.UserMessage, botErr.Ephemeral)
	}
}
