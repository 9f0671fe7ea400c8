package bot

import (
	"context"
	"fmt"

	"lotobot/bot/common"
	"lotobot/domain/events"
	"lotobot/domain/interfaces"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// channelPoster is the part of the Discord session the subscriptions post through
type channelPoster interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// RegisterBotSubscriptions registers the in-process handlers that announce events in chat
func RegisterBotSubscriptions(subscriber interfaces.EventSubscriber, poster channelPoster) {
	subscriber.RegisterLocalHandler(events.EventTypeGameDiscarded, func(ctx context.Context, event events.Event) error {
		return announceExpiredGame(event, poster)
	})

	log.Info("Bot event subscriptions registered successfully")
}

// announceExpiredGame tells the channel its idle game was dropped
func announceExpiredGame(event events.Event, poster channelPoster) error {
	discarded, ok := event.(events.GameDiscardedEvent)
	if !ok {
		return fmt.Errorf("received %T in game discarded handler", event)
	}
	if discarded.Reason != events.DiscardReasonExpired {
		return nil
	}

	channelID := common.FormatUserID(discarded.ChatID)
	if _, err := poster.ChannelMessageSend(channelID, "⌛ The game expired after too long without activity. Start a new one with `/game new`."); err != nil {
		return fmt.Errorf("failed to announce expired game in %s: %w", channelID, err)
	}

	log.WithFields(log.Fields{
		"chat_id":    discarded.ChatID,
		"session_id": discarded.SessionID,
	}).Info("Announced expired game")
	return nil
}
