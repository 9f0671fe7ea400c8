package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"lotobot/domain/events"
	"lotobot/infrastructure"

	log "github.com/sirupsen/logrus"
)

// TailEvents logs every game event published on NATS until ctx is done
func TailEvents(ctx context.Context) error {
	// Read directly so tailing works without the bot's required settings
	servers := os.Getenv("NATS_SERVERS")
	if servers == "" {
		return fmt.Errorf("NATS_SERVERS is not set")
	}

	client := infrastructure.NewNATSClient(servers)
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	err := client.Connect(connectCtx)
	cancel()
	if err != nil {
		return err
	}
	defer client.Close()

	subscriber := infrastructure.NewNATSEventSubscriber(client, infrastructure.NewEventSubjectMapper())
	logEvent := func(ctx context.Context, event events.Event) error {
		log.WithFields(log.Fields{
			"eventType": event.Type(),
			"event":     fmt.Sprintf("%+v", event),
		}).Info("Game event")
		return nil
	}
	for _, eventType := range []events.EventType{
		events.EventTypeRoundStarted,
		events.EventTypeRoundEnded,
		events.EventTypeGameCreated,
		events.EventTypeGameStarted,
		events.EventTypeNumberDrawn,
		events.EventTypeWinnerDeclared,
		events.EventTypeGameEnded,
		events.EventTypeGameDiscarded,
		events.EventTypeTicketChanged,
	} {
		subscriber.RegisterLocalHandler(eventType, logEvent)
	}

	if err := subscriber.Start(); err != nil {
		return err
	}

	log.Info("Tailing game events, press Ctrl+C to stop")
	<-ctx.Done()
	return nil
}
